package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"imagesvc/internal/domain"
)

// APIResponse is the envelope for error responses and generic payloads.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// UploadResponse is returned by the single-image upload route.
type UploadResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimetype"`
}

// MultiUploadResponse is returned by the multi-image upload route.
type MultiUploadResponse struct {
	Success bool                 `json:"success"`
	Images  []domain.StoredImage `json:"images"`
	Count   int                  `json:"count"`
}

// MessageResponse is returned by routes with no payload.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes, error codes and
// user-facing messages.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNoImage):
		return http.StatusBadRequest, "NO_IMAGE", "업로드할 이미지가 없습니다."
	case errors.Is(err, domain.ErrUnsupportedMediaType):
		return http.StatusBadRequest, "UNSUPPORTED_MEDIA_TYPE", "지원하지 않는 파일 형식입니다. (JPEG, PNG, WebP, GIF만 허용)"
	case errors.Is(err, domain.ErrUnsupportedExtension):
		return http.StatusBadRequest, "UNSUPPORTED_EXTENSION", "지원하지 않는 파일 확장자입니다."
	case errors.Is(err, domain.ErrContentMismatch):
		return http.StatusBadRequest, "CONTENT_MISMATCH", "파일 내용이 지원하는 이미지 형식이 아닙니다."
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusBadRequest, "FILE_TOO_LARGE", "파일 크기가 허용된 최대 크기를 초과했습니다."
	case errors.Is(err, domain.ErrTooManyFiles):
		return http.StatusBadRequest, "TOO_MANY_FILES", "한 번에 업로드할 수 있는 파일 개수를 초과했습니다."
	case errors.Is(err, domain.ErrUnexpectedField):
		return http.StatusBadRequest, "UNEXPECTED_FIELD", "예상하지 못한 필드명입니다."
	case errors.Is(err, domain.ErrMalformedUpload):
		return http.StatusBadRequest, "MALFORMED_UPLOAD", "잘못된 업로드 요청입니다."
	case errors.Is(err, domain.ErrInvalidFilename):
		return http.StatusBadRequest, "INVALID_FILENAME", "잘못된 파일명입니다."
	case errors.Is(err, domain.ErrInvalidCategory):
		return http.StatusBadRequest, "INVALID_CATEGORY", "지원하지 않는 이미지 분류입니다."
	case errors.Is(err, domain.ErrImageNotFound):
		return http.StatusNotFound, "IMAGE_NOT_FOUND", "이미지를 찾을 수 없습니다."
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "인증이 필요합니다."
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "서버 오류가 발생했습니다."
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("internal error")
	}
	RespondError(c, status, code, msg)
}
