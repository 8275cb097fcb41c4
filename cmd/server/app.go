package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"imagesvc/internal/config"
	"imagesvc/internal/logger"
	"imagesvc/internal/metrics"
	"imagesvc/internal/naming"
	"imagesvc/internal/port"
	"imagesvc/internal/service"
	"imagesvc/internal/storage/local"
	"imagesvc/internal/validator"
)

// app holds the components shared by every command.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	storage  port.ImageStorage
	registry *prometheus.Registry
	images   service.ImageService
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize storage
	store, err := local.NewLocalStore(cfg.Storage.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize image storage: %w", err)
	}

	// Initialize metrics
	var observer port.UploadObserver = metrics.NopObserver{}
	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		prom, err := metrics.NewPrometheusObserver(cfg.Metrics.Namespace, registry)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		observer = prom
	}

	// Initialize services
	imageSvc := service.NewImageService(
		store,
		validator.NewImageValidator(validator.NewPolicy(cfg.Upload)),
		naming.New(),
		observer,
		service.ImageServiceConfig{
			BackendURL:         cfg.Storage.BackendURL,
			CleanupConcurrency: cfg.Upload.CleanupConcurrency,
		},
		log,
	)

	return &app{
		cfg:      cfg,
		log:      log,
		storage:  store,
		registry: registry,
		images:   imageSvc,
	}, nil
}
