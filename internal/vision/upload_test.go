package vision

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jpegBytes(size int) []byte {
	data := bytes.Repeat([]byte{0x00}, size)
	copy(data, []byte{0xFF, 0xD8, 0xFF, 0xE0})
	return data
}

func TestUploadPolicyAcceptsAllowedImage(t *testing.T) {
	policy := UploadPolicy{MaxImageMB: 10, AllowedTypes: []string{"image/jpeg"}}

	assert.NoError(t, policy.Validate("kitchen.jpg", jpegBytes(1024)))
}

func TestUploadPolicyRejectsEmptyFile(t *testing.T) {
	policy := UploadPolicy{}

	err := policy.Validate("kitchen.jpg", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty file")
}

func TestUploadPolicyRejectsOversizeFile(t *testing.T) {
	policy := UploadPolicy{MaxImageMB: 1}

	err := policy.Validate("shoot.jpg", jpegBytes(1<<20+1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1MB image size limit")
}

func TestUploadPolicyRejectsDisallowedType(t *testing.T) {
	policy := UploadPolicy{MaxImageMB: 10}

	// Executable payload with an image filename: the sniffed type wins.
	data := append([]byte{0x4D, 0x5A, 0x90, 0x00, 0x03, 0x00}, bytes.Repeat([]byte{0x00}, 64)...)
	err := policy.Validate("photo.jpg", data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestUploadPolicyZeroValueUsesDefaults(t *testing.T) {
	policy := UploadPolicy{}

	assert.NoError(t, policy.Validate("lounge.png", []byte("\x89PNG\r\n\x1a\n")))

	err := policy.Validate("huge.jpg", jpegBytes(DefaultMaxImageMB<<20+1))
	require.Error(t, err)
}
