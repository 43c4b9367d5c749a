package photos

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

const (
	defaultThumbSize = 256
	thumbJPEGQuality = 80
)

// Thumbnail returns a downscaled JPEG of a stored photo, generating and
// caching it next to the original on first request.
func (s *Store) Thumbnail(sessionID, photoID string, maxSize int) (string, error) {
	if maxSize <= 0 {
		maxSize = defaultThumbSize
	}

	srcPath, _, err := s.PhotoPath(sessionID, photoID)
	if err != nil {
		return "", err
	}

	base := strings.TrimSuffix(srcPath, filepath.Ext(srcPath))
	thumbPath := fmt.Sprintf("%s.thumbnail.jpg", base)
	if _, err := os.Stat(thumbPath); err == nil {
		return thumbPath, nil
	}

	if err := writeThumbnail(srcPath, thumbPath, maxSize); err != nil {
		return "", err
	}
	return thumbPath, nil
}

func writeThumbnail(inPath, outPath string, maxSize int) error {
	inFile, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer inFile.Close() // nolint:errcheck

	srcImg, _, err := image.Decode(inFile)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	bounds := srcImg.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return errors.New("invalid image dimensions")
	}

	longest := width
	if height > longest {
		longest = height
	}
	scale := float64(maxSize) / float64(longest)
	if scale > 1 {
		scale = 1
	}
	newW := int(float64(width) * scale)
	newH := int(float64(height) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), srcImg, bounds, draw.Over, nil)

	outFile, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer outFile.Close() // nolint:errcheck

	return jpeg.Encode(outFile, dst, &jpeg.Options{Quality: thumbJPEGQuality})
}
