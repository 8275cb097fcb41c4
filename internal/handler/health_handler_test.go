package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"imagesvc/internal/domain"
	"imagesvc/internal/handler"
	"imagesvc/mocks"
)

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler(new(mocks.MockImageStorage))

	c, w := newContext(http.MethodGet, "/healthz", http.NoBody, "", nil)
	h.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	store := new(mocks.MockImageStorage)
	store.On("Ping", mock.Anything).Return(nil).Once()
	store.On("Ping", mock.Anything).Return(domain.ErrStorageUnavailable).Once()
	h := handler.NewHealthHandler(store)

	c, w := newContext(http.MethodGet, "/readyz", http.NoBody, "", gin.Params{})
	h.Readiness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newContext(http.MethodGet, "/readyz", http.NoBody, "", gin.Params{})
	h.Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	store.AssertExpectations(t)
}
