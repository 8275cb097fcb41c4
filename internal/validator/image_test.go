package validator_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagesvc/internal/config"
	"imagesvc/internal/domain"
	"imagesvc/internal/validator"
)

func testUploadConfig() config.UploadConfig {
	return config.UploadConfig{
		MaxFileSizeMB:      10,
		MaxFiles:           5,
		AllowedCategories:  []string{"profiles", "pets", "posts"},
		SniffContent:       true,
		CleanupConcurrency: 4,
	}
}

func newValidator(t *testing.T) *validator.ImageValidator {
	t.Helper()
	return validator.NewImageValidator(validator.NewPolicy(testUploadConfig()))
}

func TestImageValidator_ValidateFile_Accepted(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		filename  string
		mediaType string
	}{
		{"cat.jpg", "image/jpeg"},
		{"cat.JPEG", "image/jpg"},
		{"cat.PNG", "image/png"},
		{"cat.webp", "image/webp"},
		{"cat.gif", "image/gif"},
		{"cat.png", "IMAGE/PNG"},
		{"cat.png", "image/png; charset=binary"},
	}
	for _, tt := range tests {
		t.Run(tt.filename+"_"+tt.mediaType, func(t *testing.T) {
			assert.NoError(t, v.ValidateFile(tt.filename, tt.mediaType))
		})
	}
}

func TestImageValidator_ValidateFile_MediaTypeCheckedFirst(t *testing.T) {
	v := newValidator(t)

	err := v.ValidateFile("payload.exe", "application/octet-stream")

	assert.ErrorIs(t, err, domain.ErrUnsupportedMediaType)
}

func TestImageValidator_ValidateFile_RejectsExtension(t *testing.T) {
	v := newValidator(t)

	for _, name := range []string{"cat.bmp", "cat", "cat.png.exe", "cat.svg"} {
		err := v.ValidateFile(name, "image/png")
		assert.ErrorIsf(t, err, domain.ErrUnsupportedExtension, "filename %q", name)
	}
}

func TestImageValidator_ValidateFile_RejectsMediaType(t *testing.T) {
	v := newValidator(t)

	for _, mt := range []string{"image/svg+xml", "text/plain", "", "image/bmp"} {
		err := v.ValidateFile("cat.png", mt)
		assert.ErrorIsf(t, err, domain.ErrUnsupportedMediaType, "media type %q", mt)
	}
}

func TestImageValidator_ValidateCount(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.ValidateCount(1))
	assert.NoError(t, v.ValidateCount(5))
	assert.ErrorIs(t, v.ValidateCount(6), domain.ErrTooManyFiles)
}

func TestImageValidator_ValidateSize(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.ValidateSize(10*1024*1024))
	assert.ErrorIs(t, v.ValidateSize(10*1024*1024+1), domain.ErrFileTooLarge)
}

func TestImageValidator_ValidateCategory(t *testing.T) {
	v := newValidator(t)

	c, err := v.ValidateCategory("pets")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryPets, c)

	for _, raw := range []string{"", "misc", "../etc", "pets/../../x", "pets.old"} {
		_, err := v.ValidateCategory(raw)
		assert.ErrorIsf(t, err, domain.ErrInvalidCategory, "category %q", raw)
	}
}

func TestImageValidator_ValidateCategory_EmptyAllowListUsesPatternOnly(t *testing.T) {
	cfg := testUploadConfig()
	cfg.AllowedCategories = nil
	v := validator.NewImageValidator(validator.NewPolicy(cfg))

	_, err := v.ValidateCategory("misc")
	assert.NoError(t, err)

	_, err = v.ValidateCategory("../misc")
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
	assert.Nil(t, v.Policy().Categories())
}

func TestImageValidator_ValidateFilename(t *testing.T) {
	v := newValidator(t)

	valid := []string{
		"pets_1700000000000_6f1c2d3e-4a5b-4c6d-8e7f-901234567890.png",
		"a.jpg",
		"A-b_c.jpeg",
		"x.webp",
		"y.gif",
	}
	for _, name := range valid {
		assert.NoErrorf(t, v.ValidateFilename(name), "filename %q", name)
	}

	invalid := []string{
		"../../etc/passwd",
		"..%2F..%2Fetc%2Fpasswd",
		"a/b.png",
		"a.PNG",
		"a.png.exe",
		".png",
		"a b.png",
		"",
	}
	for _, name := range invalid {
		assert.ErrorIsf(t, v.ValidateFilename(name), domain.ErrInvalidFilename, "filename %q", name)
	}
}

func TestImageValidator_CheckContent(t *testing.T) {
	v := newValidator(t)

	png := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, bytes.Repeat([]byte{0x00}, 64)...)
	jpeg := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0x00}, 64)...)
	gif := []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00")

	assert.NoError(t, v.CheckContent(png))
	assert.NoError(t, v.CheckContent(jpeg))
	assert.NoError(t, v.CheckContent(gif))
	assert.ErrorIs(t, v.CheckContent([]byte("#!/bin/sh\nrm -rf /\n")), domain.ErrContentMismatch)
	assert.ErrorIs(t, v.CheckContent([]byte("%PDF-1.4 fake")), domain.ErrContentMismatch)
}

func TestImageValidator_CheckContent_Disabled(t *testing.T) {
	cfg := testUploadConfig()
	cfg.SniffContent = false
	v := validator.NewImageValidator(validator.NewPolicy(cfg))

	assert.NoError(t, v.CheckContent([]byte("plain text")))
}

func TestPolicy_Categories_Sorted(t *testing.T) {
	p := validator.NewPolicy(testUploadConfig())

	assert.Equal(t, []domain.Category{"pets", "posts", "profiles"}, p.Categories())
	assert.Equal(t, int64(10*1024*1024), p.MaxFileSize())
	assert.Equal(t, 5, p.MaxFiles())
	assert.True(t, p.SniffContent())
}

func TestMediaType(t *testing.T) {
	assert.Equal(t, "image/png", validator.MediaType("IMAGE/PNG; foo=bar"))
	assert.Equal(t, "image/jpeg", validator.MediaType(" image/jpeg "))
	assert.Equal(t, "image/webp", validator.MediaType("image/webp"))
}
