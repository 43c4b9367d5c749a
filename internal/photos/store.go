// Package photos stores decoded brochure session photos on disk, one
// directory per session, and serves downscaled thumbnails.
package photos

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/doorstephq/doorstep/internal/ailink/encode"
	"github.com/doorstephq/doorstep/internal/core"
)

// Store writes session photos under baseDir/<session_id>/<photo_id>.<ext>.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) (*Store, error) {
	baseDir = strings.TrimSpace(baseDir)
	if baseDir == "" {
		return nil, fmt.Errorf("photos base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create photos directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// PersistSessionPhotos decodes each photo's data URL to disk and rewrites
// DataURL to the serving path. Photos without inline data (already persisted)
// pass through unchanged.
func (s *Store) PersistSessionPhotos(sessionID string, items []core.BrochurePhoto) ([]core.BrochurePhoto, error) {
	if s == nil {
		return nil, fmt.Errorf("photo store not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	out := make([]core.BrochurePhoto, len(items))
	for i, photo := range items {
		out[i] = photo
		if !strings.HasPrefix(photo.DataURL, "data:image") {
			continue
		}

		mediaType, data, err := encode.DecodeDataURL(photo.DataURL)
		if err != nil {
			return nil, fmt.Errorf("decode photo %s: %w", photo.ID, err)
		}

		if err := s.write(sessionID, photo.ID, extForMediaType(mediaType), data); err != nil {
			return nil, err
		}
		out[i].DataURL = ServePath(sessionID, photo.ID)
	}
	return out, nil
}

// ServePath is the HTTP path a stored photo is served from.
func ServePath(sessionID, photoID string) string {
	return fmt.Sprintf("/api/brochure/session/%s/photo/%s", sessionID, photoID)
}

// PhotoURLs maps photo id to serving path for every stored photo of a session.
func (s *Store) PhotoURLs(sessionID string) (map[string]string, error) {
	dir := filepath.Join(s.baseDir, sessionID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read session photos: %w", err)
	}

	urls := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.Contains(name, ".thumbnail.") {
			continue
		}
		photoID := strings.TrimSuffix(name, filepath.Ext(name))
		urls[photoID] = ServePath(sessionID, photoID)
	}
	return urls, nil
}

// PhotoPath locates a stored photo and returns its path and content type.
func (s *Store) PhotoPath(sessionID, photoID string) (string, string, error) {
	if err := validateComponent(sessionID); err != nil {
		return "", "", err
	}
	if err := validateComponent(photoID); err != nil {
		return "", "", err
	}

	for _, ext := range []string{".jpg", ".jpeg", ".png", ".webp", ".gif"} {
		path := filepath.Join(s.baseDir, sessionID, photoID+ext)
		if _, err := os.Stat(path); err == nil {
			return path, contentTypeForExt(ext), nil
		}
	}
	return "", "", os.ErrNotExist
}

// DeleteSession removes every stored photo of a session.
func (s *Store) DeleteSession(sessionID string) error {
	if err := validateComponent(sessionID); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(s.baseDir, sessionID))
}

func (s *Store) write(sessionID, photoID, ext string, data []byte) error {
	if err := validateComponent(sessionID); err != nil {
		return err
	}
	if err := validateComponent(photoID); err != nil {
		return err
	}

	dir := filepath.Join(s.baseDir, sessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	path := filepath.Join(dir, photoID+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write photo %s: %w", photoID, err)
	}
	return nil
}

// validateComponent rejects ids that could escape the base directory.
func validateComponent(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("identifier is required")
	}
	if strings.ContainsAny(value, `/\`) || strings.Contains(value, "..") {
		return fmt.Errorf("invalid identifier %q", value)
	}
	return nil
}

func extForMediaType(mediaType string) string {
	switch strings.ToLower(strings.TrimSpace(mediaType)) {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}

func contentTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
