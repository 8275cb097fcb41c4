package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"imagesvc/internal/domain"
	"imagesvc/internal/service"
)

// ImageHandler handles image upload and delete endpoints.
type ImageHandler struct {
	imageService service.ImageService
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(imageService service.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// UploadSingle handles POST /api/images/upload/:category
// @Summary Upload an image
// @Description Upload one image (JPEG, PNG, WebP, GIF, max 10MB) into a category
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Param category path string true "Image category (profiles, pets, posts)"
// @Param image formData file true "Image to upload"
// @Success 200 {object} UploadResponse "Image uploaded"
// @Failure 400 {object} APIResponse "Missing file, unsupported type or too large"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 500 {object} APIResponse "Upload failed"
// @Security BearerAuth
// @Router /images/upload/{category} [post]
func (h *ImageHandler) UploadSingle(c *gin.Context) {
	parts, err := newMultipartParts(c.Request)
	if err != nil {
		HandleError(c, err)
		return
	}

	image, err := h.imageService.UploadSingle(c.Request.Context(), service.ImageUploadInput{
		Category: c.Param("category"),
		Parts:    parts,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		Success:  true,
		ImageURL: image.URL,
		Filename: image.Filename,
		Size:     image.Size,
		MimeType: image.MimeType,
	})
}

// UploadMultiple handles POST /api/images/upload-multiple/:category
// @Summary Upload several images
// @Description Upload up to 5 images into a category; either all are stored or none
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Param category path string true "Image category (profiles, pets, posts)"
// @Param images formData file true "Images to upload"
// @Success 200 {object} MultiUploadResponse "Images uploaded"
// @Failure 400 {object} APIResponse "Missing files, unsupported type, too large or too many files"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 500 {object} APIResponse "Upload failed"
// @Security BearerAuth
// @Router /images/upload-multiple/{category} [post]
func (h *ImageHandler) UploadMultiple(c *gin.Context) {
	parts, err := newMultipartParts(c.Request)
	if err != nil {
		HandleError(c, err)
		return
	}

	images, err := h.imageService.UploadMultiple(c.Request.Context(), service.ImageUploadInput{
		Category: c.Param("category"),
		Parts:    parts,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, MultiUploadResponse{
		Success: true,
		Images:  images,
		Count:   len(images),
	})
}

// Delete handles DELETE /api/images/:category/:filename
// @Summary Delete an image
// @Tags images
// @Produce json
// @Param category path string true "Image category"
// @Param filename path string true "Stored filename"
// @Success 200 {object} MessageResponse "Image deleted"
// @Failure 400 {object} APIResponse "Invalid filename or category"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Image not found"
// @Security BearerAuth
// @Router /images/{category}/{filename} [delete]
func (h *ImageHandler) Delete(c *gin.Context) {
	if err := h.imageService.Delete(c.Request.Context(), c.Param("category"), c.Param("filename")); err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "이미지가 삭제되었습니다."})
}

// multipartParts streams file parts straight from the request body, skipping
// plain form fields.
type multipartParts struct {
	reader *multipart.Reader
}

func newMultipartParts(r *http.Request) (*multipartParts, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		// Not a multipart body at all, so there is nothing to upload.
		return nil, domain.ErrNoImage
	}
	return &multipartParts{reader: reader}, nil
}

func (m *multipartParts) NextPart() (*service.FilePart, error) {
	for {
		part, err := m.reader.NextPart()
		// A bare io.EOF marks the closing boundary; a truncated body wraps it.
		if err == io.EOF { //nolint:errorlint
			return nil, io.EOF
		}
		if err != nil {
			return nil, bodyError(err)
		}
		if part.FileName() == "" {
			continue
		}
		return &service.FilePart{
			FieldName:   part.FormName(),
			Filename:    part.FileName(),
			ContentType: part.Header.Get("Content-Type"),
			Body:        partBody{part},
		}, nil
	}
}

// partBody reports a request body cut off by the body limit as an oversized file.
type partBody struct {
	r io.Reader
}

func (b partBody) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if err != nil && err != io.EOF { //nolint:errorlint
		return n, bodyError(err)
	}
	return n, err
}

func bodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: request body exceeds %d bytes", domain.ErrFileTooLarge, maxErr.Limit)
	}
	return fmt.Errorf("%w: %w", domain.ErrMalformedUpload, err)
}
