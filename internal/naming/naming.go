// Package naming derives storage filenames for uploaded images.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"imagesvc/internal/domain"
)

// Namer generates {category}_{unixMillis}_{uuid}{ext} filenames.
// Uniqueness relies on the random UUID; there is no existence check or retry.
type Namer struct {
	now   func() time.Time
	newID func() uuid.UUID
}

// Option configures a Namer.
type Option func(*Namer)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(n *Namer) { n.now = now }
}

// WithIDSource overrides the random identifier source.
func WithIDSource(newID func() uuid.UUID) Option {
	return func(n *Namer) { n.newID = newID }
}

// New creates a Namer backed by the wall clock and random v4 UUIDs.
func New(opts ...Option) *Namer {
	n := &Namer{now: time.Now, newID: uuid.New}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// StorageName returns the storage filename for an upload of originalName in category.
// The original extension is kept, lowercased.
func (n *Namer) StorageName(category domain.Category, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s_%d_%s%s", category, n.now().UnixMilli(), n.newID(), ext)
}
