package port

import (
	"context"
	"io"

	"imagesvc/internal/domain"
)

// SaveInput encapsulates the parameters needed to store an image.
type SaveInput struct {
	Category domain.Category
	Filename string
	Body     io.Reader
}

// SaveOutput contains the result of a successful save.
type SaveOutput struct {
	Path string
	Size int64
}

// ImageStorage abstracts the category-scoped image store.
type ImageStorage interface {
	// Save writes Body to {base}/{category}/{filename}. On error nothing is left behind.
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)
	// Delete removes a stored file; a missing file yields domain.ErrImageNotFound.
	Delete(ctx context.Context, category domain.Category, filename string) error
	// EnsureCategory creates the category directory if it does not exist.
	EnsureCategory(ctx context.Context, category domain.Category) error
	// Ping reports whether the store is usable.
	Ping(ctx context.Context) error
}
