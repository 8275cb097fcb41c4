package validator

import (
	"mime"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"imagesvc/internal/domain"
)

// SniffLength is how many leading bytes CheckContent needs to identify a format.
const SniffLength = 3072

var (
	categoryPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	filenamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+\.(jpg|jpeg|png|webp|gif)$`)
)

// ImageValidator applies a Policy to incoming uploads and delete requests.
type ImageValidator struct {
	policy Policy
}

// NewImageValidator creates an ImageValidator for the given policy.
func NewImageValidator(policy Policy) *ImageValidator {
	return &ImageValidator{policy: policy}
}

// Policy returns the policy the validator enforces.
func (v *ImageValidator) Policy() Policy {
	return v.policy
}

// ValidateCategory checks a route category and returns it typed.
func (v *ImageValidator) ValidateCategory(raw string) (domain.Category, error) {
	if !categoryPattern.MatchString(raw) {
		return "", domain.ErrInvalidCategory
	}
	c := domain.Category(raw)
	if !v.policy.allowsCategory(c) {
		return "", domain.ErrInvalidCategory
	}
	return c, nil
}

// ValidateFile checks the declared media type, then the filename extension.
func (v *ImageValidator) ValidateFile(filename, mediaType string) error {
	if _, ok := domain.AllowedMediaTypes[MediaType(mediaType)]; !ok {
		return domain.ErrUnsupportedMediaType
	}
	if _, ok := domain.AllowedExtensions[Extension(filename)]; !ok {
		return domain.ErrUnsupportedExtension
	}
	return nil
}

// ValidateCount checks the running number of files seen in a request.
func (v *ImageValidator) ValidateCount(n int) error {
	if n > v.policy.maxFiles {
		return domain.ErrTooManyFiles
	}
	return nil
}

// ValidateSize checks a single file's size.
func (v *ImageValidator) ValidateSize(size int64) error {
	if size > v.policy.maxFileSize {
		return domain.ErrFileTooLarge
	}
	return nil
}

// ValidateFilename checks a stored filename supplied by a client. It rejects
// anything containing path separators or dot segments.
func (v *ImageValidator) ValidateFilename(name string) error {
	if !filenamePattern.MatchString(name) {
		return domain.ErrInvalidFilename
	}
	return nil
}

// CheckContent identifies the format from the leading bytes of a file.
// It is a no-op when the policy disables sniffing.
func (v *ImageValidator) CheckContent(head []byte) error {
	if !v.policy.sniffContent {
		return nil
	}
	detected := mimetype.Detect(head)
	for mediaType := range domain.AllowedMediaTypes {
		if detected.Is(mediaType) {
			return nil
		}
	}
	return domain.ErrContentMismatch
}

// Extension returns the lowercased extension of filename, including the dot.
func Extension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// MediaType returns the lowercased media type of a Content-Type header value,
// without parameters.
func MediaType(raw string) string {
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	return mediaType
}
