package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"imagesvc/internal/config"
	"imagesvc/internal/handler"
	"imagesvc/internal/middleware"
	"imagesvc/internal/port"
)

// multipartOverhead covers boundaries and part headers on top of the file bytes.
const multipartOverhead = 1 << 20

// Setup configures the Gin engine with all routes and middleware. A nil
// metricsHandler leaves /metrics unmounted.
func Setup(
	cfg *config.Config,
	log zerolog.Logger,
	verifier port.TokenVerifier,
	imageH *handler.ImageHandler,
	healthH *handler.HealthHandler,
	metricsHandler http.Handler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID(log))
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// Stored images, for deployments without a fronting static server
	if cfg.Storage.ServeStatic {
		r.Static("/uploads/images", cfg.Storage.BaseDir)
	}

	// Protected routes - require valid access token
	images := r.Group("/api/images")
	images.Use(middleware.AuthMiddleware(verifier, cfg.JWT.CookieName))

	bodyLimit := int64(cfg.Upload.MaxFiles)*cfg.Upload.MaxFileSizeBytes() + multipartOverhead
	images.POST("/upload/:category", middleware.BodyLimit(bodyLimit), imageH.UploadSingle)
	images.POST("/upload-multiple/:category", middleware.BodyLimit(bodyLimit), imageH.UploadMultiple)
	images.DELETE("/:category/:filename", imageH.Delete)

	return r
}
