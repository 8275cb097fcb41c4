package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"imagesvc/internal/domain"
	"imagesvc/internal/metrics"
	"imagesvc/internal/naming"
	"imagesvc/internal/port"
	"imagesvc/internal/validator"
)

// FilePart is one file part of a multipart upload, in wire order.
type FilePart struct {
	FieldName   string
	Filename    string
	ContentType string
	Body        io.Reader
}

// PartReader yields the file parts of a request body. NextPart returns io.EOF
// after the last part. A part's Body is only valid until the next call.
type PartReader interface {
	NextPart() (*FilePart, error)
}

// ImageUploadInput is the DTO for upload requests.
type ImageUploadInput struct {
	Category string
	Parts    PartReader
}

// ImageServiceConfig holds the settings the image service needs beyond its policy.
type ImageServiceConfig struct {
	BackendURL         string
	CleanupConcurrency int
}

// ImageService defines the image upload and delete contract.
type ImageService interface {
	// UploadSingle stores the one file sent in the "image" field.
	UploadSingle(ctx context.Context, input ImageUploadInput) (*domain.StoredImage, error)
	// UploadMultiple stores every file sent in the "images" field, all or nothing.
	UploadMultiple(ctx context.Context, input ImageUploadInput) ([]domain.StoredImage, error)
	Delete(ctx context.Context, category, filename string) error
	// Provision creates the directory of every allowed category, or of the
	// default categories when any well-formed category is allowed.
	Provision(ctx context.Context) error
}

type imageService struct {
	storage   port.ImageStorage
	validator *validator.ImageValidator
	namer     *naming.Namer
	observer  port.UploadObserver
	cfg       ImageServiceConfig
	log       zerolog.Logger
}

// NewImageService creates a new ImageService implementation.
func NewImageService(
	storage port.ImageStorage,
	v *validator.ImageValidator,
	namer *naming.Namer,
	observer port.UploadObserver,
	cfg ImageServiceConfig,
	log zerolog.Logger,
) ImageService {
	if observer == nil {
		observer = metrics.NopObserver{}
	}
	if cfg.CleanupConcurrency <= 0 {
		cfg.CleanupConcurrency = 1
	}
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	return &imageService{
		storage:   storage,
		validator: v,
		namer:     namer,
		observer:  observer,
		cfg:       cfg,
		log:       log,
	}
}

func (s *imageService) UploadSingle(ctx context.Context, input ImageUploadInput) (*domain.StoredImage, error) {
	images, err := s.upload(ctx, input, domain.FieldImage, 1)
	if err != nil {
		return nil, err
	}
	return &images[0], nil
}

func (s *imageService) UploadMultiple(ctx context.Context, input ImageUploadInput) ([]domain.StoredImage, error) {
	return s.upload(ctx, input, domain.FieldImages, s.validator.Policy().MaxFiles())
}

// upload consumes every part of the request. Each file is validated before it is
// written; if anything fails, all files written so far are removed before the
// error is returned.
func (s *imageService) upload(ctx context.Context, input ImageUploadInput, field string, maxPerField int) (_ []domain.StoredImage, err error) {
	start := time.Now()
	log := s.logger(ctx)

	category, err := s.validator.ValidateCategory(input.Category)
	if err != nil {
		s.observer.RecordRejection("invalid", failureReason(err))
		return nil, err
	}

	var written []domain.UploadedFile
	defer func() {
		if err == nil {
			return
		}
		s.observer.RecordRejection(category, failureReason(err))
		if domain.IsValidation(err) {
			log.Debug().Err(err).Str("category", string(category)).Msg("imageService.upload: rejected")
		} else {
			log.Error().Err(err).Str("category", string(category)).Msg("imageService.upload: failed")
		}
		s.rollback(ctx, category, written)
	}()

	count := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		part, err := input.Parts.NextPart()
		if err == io.EOF { //nolint:errorlint
			break
		}
		if err != nil {
			return nil, err
		}

		count++
		if err := s.validator.ValidateCount(count); err != nil {
			return nil, err
		}
		if part.FieldName != field || count > maxPerField {
			return nil, domain.ErrUnexpectedField
		}

		file, err := s.store(ctx, category, part)
		if err != nil {
			return nil, err
		}
		written = append(written, *file)
	}

	if len(written) == 0 {
		return nil, domain.ErrNoImage
	}

	images := make([]domain.StoredImage, 0, len(written))
	var total int64
	for _, f := range written {
		images = append(images, domain.StoredImage{
			URL:      s.publicURL(category, f.StorageName),
			Filename: f.StorageName,
			Size:     f.Size,
			MimeType: f.MediaType,
		})
		total += f.Size
	}

	s.observer.RecordUpload(category, len(written), total, time.Since(start))
	log.Info().
		Str("category", string(category)).
		Int("count", len(written)).
		Int64("bytes", total).
		Msg("imageService.upload: stored images")

	return images, nil
}

// store validates one part and streams it to storage under a generated name.
func (s *imageService) store(ctx context.Context, category domain.Category, part *FilePart) (*domain.UploadedFile, error) {
	if err := s.validator.ValidateFile(part.Filename, part.ContentType); err != nil {
		return nil, err
	}

	policy := s.validator.Policy()
	var body io.Reader = &sizeLimitReader{
		r:     part.Body,
		limit: policy.MaxFileSize(),
		check: s.validator.ValidateSize,
	}

	if policy.SniffContent() {
		head := make([]byte, validator.SniffLength)
		n, err := io.ReadFull(body, head)
		// Short files end in a bare io.EOF or io.ErrUnexpectedEOF.
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF { //nolint:errorlint
			return nil, fmt.Errorf("reading file header: %w", err)
		}
		head = head[:n]
		if err := s.validator.CheckContent(head); err != nil {
			return nil, err
		}
		body = io.MultiReader(bytes.NewReader(head), body)
	}

	name := s.namer.StorageName(category, part.Filename)
	out, err := s.storage.Save(ctx, port.SaveInput{
		Category: category,
		Filename: name,
		Body:     body,
	})
	if err != nil {
		return nil, fmt.Errorf("saving %s: %w", name, err)
	}

	return &domain.UploadedFile{
		OriginalName: part.Filename,
		MediaType:    validator.MediaType(part.ContentType),
		Size:         out.Size,
		StorageName:  name,
		Path:         out.Path,
		Category:     category,
	}, nil
}

// rollback deletes files written by a failed request. Deletions run in parallel
// up to the configured limit and are always joined; their errors are logged and
// counted, never returned.
func (s *imageService) rollback(ctx context.Context, category domain.Category, files []domain.UploadedFile) {
	if len(files) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	log := s.logger(ctx)

	var removed atomic.Int64
	var g errgroup.Group
	g.SetLimit(s.cfg.CleanupConcurrency)
	for _, f := range files {
		g.Go(func() error {
			err := s.storage.Delete(ctx, f.Category, f.StorageName)
			s.observer.RecordCleanup(category, err)
			if err != nil {
				log.Error().Err(err).
					Str("category", string(f.Category)).
					Str("path", f.Path).
					Msg("imageService.rollback: failed to delete uploaded file")
				return nil
			}
			removed.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	log.Warn().
		Str("category", string(category)).
		Int64("removed", removed.Load()).
		Int64("failed", int64(len(files))-removed.Load()).
		Msg("imageService.rollback: removed files of failed upload")
}

func (s *imageService) Delete(ctx context.Context, category, filename string) error {
	log := s.logger(ctx)

	if err := s.validator.ValidateFilename(filename); err != nil {
		return err
	}
	c, err := s.validator.ValidateCategory(category)
	if err != nil {
		return err
	}

	err = s.storage.Delete(ctx, c, filename)
	s.observer.RecordDelete(c, err)
	if err != nil {
		if errors.Is(err, domain.ErrImageNotFound) {
			return err
		}
		log.Error().Err(err).Str("category", category).Str("filename", filename).
			Msg("imageService.Delete: failed to delete image")
		return fmt.Errorf("deleting image: %w", err)
	}

	log.Info().Str("category", category).Str("filename", filename).Msg("imageService.Delete: deleted image")
	return nil
}

func (s *imageService) Provision(ctx context.Context) error {
	categories := s.validator.Policy().Categories()
	if len(categories) == 0 {
		categories = domain.DefaultCategories
	}
	for _, c := range categories {
		if err := s.storage.EnsureCategory(ctx, c); err != nil {
			return fmt.Errorf("provisioning category %s: %w", c, err)
		}
	}
	return nil
}

func (s *imageService) publicURL(category domain.Category, filename string) string {
	return fmt.Sprintf("%s/uploads/images/%s/%s", s.cfg.BackendURL, category, filename)
}

// logger prefers the request-scoped logger carried by ctx.
func (s *imageService) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.log
}

// sizeLimitReader reads at most one byte past limit and reports the running size
// to check, which rejects oversized files.
type sizeLimitReader struct {
	r     io.Reader
	limit int64
	read  int64
	check func(size int64) error
}

func (l *sizeLimitReader) Read(p []byte) (int, error) {
	if l.read > l.limit {
		return 0, l.check(l.read)
	}
	if room := l.limit - l.read + 1; int64(len(p)) > room {
		p = p[:room]
	}
	n, err := l.r.Read(p)
	l.read += int64(n)
	if cerr := l.check(l.read); cerr != nil {
		return n, cerr
	}
	return n, err
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoImage):
		return "no_image"
	case errors.Is(err, domain.ErrUnsupportedMediaType):
		return "unsupported_media_type"
	case errors.Is(err, domain.ErrUnsupportedExtension):
		return "unsupported_extension"
	case errors.Is(err, domain.ErrContentMismatch):
		return "content_mismatch"
	case errors.Is(err, domain.ErrFileTooLarge):
		return "file_too_large"
	case errors.Is(err, domain.ErrTooManyFiles):
		return "too_many_files"
	case errors.Is(err, domain.ErrUnexpectedField):
		return "unexpected_field"
	case errors.Is(err, domain.ErrMalformedUpload):
		return "malformed_upload"
	case errors.Is(err, domain.ErrInvalidCategory):
		return "invalid_category"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
