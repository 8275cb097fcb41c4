package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"imagesvc/internal/port"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	storage port.ImageStorage
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(storage port.ImageStorage) *HealthHandler {
	return &HealthHandler{storage: storage}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.storage.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "image storage not reachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
