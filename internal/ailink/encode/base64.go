package encode

import (
	"encoding/base64"
	"fmt"
	"strings"
)

func DecodeBase64String(value string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(value)
}

func EncodeBase64String(value []byte) string {
	return base64.StdEncoding.EncodeToString(value)
}

// DecodeDataURL splits a "data:<media-type>;base64,<payload>" URL into the
// media type and raw bytes. A bare base64 string is accepted with an empty
// media type.
func DecodeDataURL(value string) (string, []byte, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil, fmt.Errorf("empty data url")
	}

	if !strings.HasPrefix(value, "data:") {
		data, err := DecodeBase64String(value)
		return "", data, err
	}

	rest := strings.TrimPrefix(value, "data:")
	meta, payload, found := strings.Cut(rest, ",")
	if !found {
		return "", nil, fmt.Errorf("malformed data url")
	}

	mediaType := strings.TrimSuffix(meta, ";base64")
	if mediaType == meta {
		return "", nil, fmt.Errorf("data url is not base64 encoded")
	}

	data, err := DecodeBase64String(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data url payload: %w", err)
	}
	return strings.TrimSpace(mediaType), data, nil
}
