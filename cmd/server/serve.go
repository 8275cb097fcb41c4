package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"imagesvc/internal/auth/jwtauth"
	"imagesvc/internal/handler"
	"imagesvc/internal/router"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	if a.cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if a.cfg.Storage.Provision {
		if err := a.images.Provision(ctx); err != nil {
			return fmt.Errorf("failed to provision image directories: %w", err)
		}
	}

	var metricsHandler http.Handler
	if a.registry != nil {
		metricsHandler = promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})
	}

	r := router.Setup(
		a.cfg,
		a.log,
		jwtauth.NewVerifier(a.cfg.JWT),
		handler.NewImageHandler(a.images),
		handler.NewHealthHandler(a.storage),
		metricsHandler,
	)

	srv := &http.Server{
		Addr:         a.cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info().Str("addr", srv.Addr).Str("base_dir", a.cfg.Storage.BaseDir).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		a.log.Info().Msg("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
