package validator

import (
	"sort"

	"imagesvc/internal/config"
	"imagesvc/internal/domain"
)

// Policy is the immutable set of upload limits and allow-lists.
// Build it once at startup with NewPolicy and share it by value.
type Policy struct {
	maxFileSize  int64
	maxFiles     int
	categories   map[domain.Category]struct{}
	sniffContent bool
}

// NewPolicy builds a Policy from upload configuration.
func NewPolicy(cfg config.UploadConfig) Policy {
	categories := make(map[domain.Category]struct{}, len(cfg.AllowedCategories))
	for _, c := range cfg.AllowedCategories {
		categories[domain.Category(c)] = struct{}{}
	}
	return Policy{
		maxFileSize:  cfg.MaxFileSizeBytes(),
		maxFiles:     cfg.MaxFiles,
		categories:   categories,
		sniffContent: cfg.SniffContent,
	}
}

// MaxFileSize returns the per-file limit in bytes.
func (p Policy) MaxFileSize() int64 { return p.maxFileSize }

// MaxFiles returns the maximum number of files accepted in one request.
func (p Policy) MaxFiles() int { return p.maxFiles }

// SniffContent reports whether file content is checked against the allowed formats.
func (p Policy) SniffContent() bool { return p.sniffContent }

// Categories returns the allowed categories in sorted order, or nil when any
// well-formed category is accepted.
func (p Policy) Categories() []domain.Category {
	if len(p.categories) == 0 {
		return nil
	}
	out := make([]domain.Category, 0, len(p.categories))
	for c := range p.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (p Policy) allowsCategory(c domain.Category) bool {
	if len(p.categories) == 0 {
		return true
	}
	_, ok := p.categories[c]
	return ok
}
