package domain

import "errors"

// Validation failures. These abort a request before (or instead of) a storage write
// and are reported to the client as 400.
var (
	ErrNoImage              = errors.New("no image in request")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	ErrContentMismatch      = errors.New("file content is not a supported image")
	ErrInvalidFilename      = errors.New("invalid filename")
	ErrInvalidCategory      = errors.New("invalid category")
)

// Multipart limit failures, raised while the request body is being parsed.
var (
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
	ErrTooManyFiles    = errors.New("too many files in request")
	ErrUnexpectedField = errors.New("unexpected multipart field")
	ErrMalformedUpload = errors.New("malformed multipart body")
)

var (
	ErrImageNotFound      = errors.New("image not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrStorageUnavailable = errors.New("image storage unavailable")
)

var validationErrors = []error{
	ErrNoImage,
	ErrUnsupportedMediaType,
	ErrUnsupportedExtension,
	ErrContentMismatch,
	ErrInvalidFilename,
	ErrInvalidCategory,
	ErrFileTooLarge,
	ErrTooManyFiles,
	ErrUnexpectedField,
	ErrMalformedUpload,
}

// IsValidation reports whether err is a client-side validation or limit failure.
func IsValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
