package vision

import (
	"fmt"
	"net/http"
	"strings"
)

const DefaultMaxImageMB = 10

// DefaultAllowedTypes are the image content types the vision provider
// accepts.
var DefaultAllowedTypes = []string{"image/jpeg", "image/png", "image/webp"}

// UploadPolicy bounds accepted photo uploads. The zero value falls back to
// the defaults above.
type UploadPolicy struct {
	MaxImageMB   int
	AllowedTypes []string
}

func (p UploadPolicy) maxBytes() int {
	maxMB := p.MaxImageMB
	if maxMB <= 0 {
		maxMB = DefaultMaxImageMB
	}
	return maxMB << 20
}

func (p UploadPolicy) allowed() []string {
	if len(p.AllowedTypes) == 0 {
		return DefaultAllowedTypes
	}
	return p.AllowedTypes
}

// Validate rejects uploads that are empty, oversize, or not an allowed image
// type. The type check sniffs the payload rather than trusting the filename
// or the client-sent header.
func (p UploadPolicy) Validate(filename string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%s: empty file", filename)
	}

	maxMB := p.MaxImageMB
	if maxMB <= 0 {
		maxMB = DefaultMaxImageMB
	}
	if len(data) > p.maxBytes() {
		return fmt.Errorf("%s: exceeds the %dMB image size limit", filename, maxMB)
	}

	detected := http.DetectContentType(data)
	if i := strings.Index(detected, ";"); i >= 0 {
		detected = detected[:i]
	}
	detected = strings.TrimSpace(detected)

	for _, allowed := range p.allowed() {
		if strings.EqualFold(detected, allowed) {
			return nil
		}
	}
	return fmt.Errorf("%s: content type %s is not supported", filename, detected)
}
