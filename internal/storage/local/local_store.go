package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"imagesvc/internal/domain"
	"imagesvc/internal/port"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

type localStore struct {
	baseDir string
}

// NewLocalStore creates a filesystem-backed ImageStorage rooted at baseDir.
// baseDir must be absolute; it is not created here.
func NewLocalStore(baseDir string) (port.ImageStorage, error) {
	if !filepath.IsAbs(baseDir) {
		return nil, fmt.Errorf("local store: base dir %q is not absolute", baseDir)
	}
	return &localStore{baseDir: filepath.Clean(baseDir)}, nil
}

func (s *localStore) Save(ctx context.Context, input port.SaveInput) (*port.SaveOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := s.resolve(input.Category, input.Filename)
	if err != nil {
		return nil, err
	}
	if err := s.EnsureCategory(ctx, input.Category); err != nil {
		return nil, err
	}

	// Write to a hidden temp file next to the target and rename on success, so a
	// failed or truncated upload never appears under its final name.
	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("local save: creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	n, err := io.Copy(tmp, input.Body)
	if err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("local save: writing %s: %w", input.Filename, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("local save: closing %s: %w", input.Filename, err)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		return nil, fmt.Errorf("local save: chmod %s: %w", input.Filename, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return nil, fmt.Errorf("local save: renaming %s: %w", input.Filename, err)
	}
	committed = true

	return &port.SaveOutput{Path: target, Size: n}, nil
}

func (s *localStore) Delete(ctx context.Context, category domain.Category, filename string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := s.resolve(category, filename)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ErrImageNotFound
		}
		return fmt.Errorf("local delete: %w", err)
	}
	return nil
}

func (s *localStore) EnsureCategory(_ context.Context, category domain.Category) error {
	dir, err := s.categoryDir(category)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("%w: creating %s: %w", domain.ErrStorageUnavailable, dir, err)
	}
	return nil
}

func (s *localStore) Ping(_ context.Context) error {
	info, err := os.Stat(s.baseDir)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrStorageUnavailable, s.baseDir)
	}
	return nil
}

// categoryDir joins category onto the base dir and refuses anything that would
// land outside it.
func (s *localStore) categoryDir(category domain.Category) (string, error) {
	c := string(category)
	if c == "" || c == "." || c == ".." || strings.ContainsAny(c, `/\`) {
		return "", domain.ErrInvalidCategory
	}
	return filepath.Join(s.baseDir, c), nil
}

func (s *localStore) resolve(category domain.Category, filename string) (string, error) {
	dir, err := s.categoryDir(category)
	if err != nil {
		return "", err
	}
	if filename == "" || filename == "." || filename == ".." || strings.ContainsAny(filename, `/\`) {
		return "", domain.ErrInvalidFilename
	}
	return filepath.Join(dir, filename), nil
}
