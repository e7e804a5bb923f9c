// Package app assembles the dashboard service: configuration, logging,
// metrics, the dataset pipeline, and the HTTP server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/cavalcanteprofissional/mittu-dashboard/internal/config"
	"github.com/cavalcanteprofissional/mittu-dashboard/internal/dataset"
	apierrors "github.com/cavalcanteprofissional/mittu-dashboard/internal/errors"
	"github.com/cavalcanteprofissional/mittu-dashboard/internal/infrastructure"
	custommw "github.com/cavalcanteprofissional/mittu-dashboard/internal/middleware"
	"github.com/cavalcanteprofissional/mittu-dashboard/internal/services"
	handlers "github.com/cavalcanteprofissional/mittu-dashboard/internal/transport/http"
)

const (
	// Version is the service version reported by the health endpoint.
	Version = "1.0.0"
	// AppName is the human-readable service name.
	AppName = "Mittu Project Dashboard"
)

// Application is the main application container.
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	Observability *infrastructure.Observability
	Cache         *dataset.MemoryCache
	Dashboard     *services.DashboardService
}

// NewApplication creates a new application instance with dependency
// injection: config, logger, metrics, loader, cache, service, handlers.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", Version),
		slog.String("data_file", cfg.Paths.DataFile))

	obs, err := infrastructure.InitializeObservability(Version, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}

	datasetMetrics, err := dataset.NewMetrics(obs.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to register dataset metrics: %w", err)
	}

	// A missing data file is not fatal at startup: the handlers report it
	// as source-unreadable and the file may appear later.
	if _, err := os.Stat(cfg.Paths.DataFile); err != nil {
		logger.Warn("data file not found",
			slog.String("path", cfg.Paths.DataFile),
			slog.String("action", "dashboard requests will report source unreadable"))
	}

	cache := dataset.NewMemoryCache()
	loader := dataset.NewCachingLoader(
		dataset.NewFileLoader(logger, datasetMetrics),
		cache, logger, datasetMetrics,
	)
	dashboard := services.NewDashboardService(loader, cfg.Paths.DataFile, logger)

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		Observability: obs,
		Cache:         cache,
		Dashboard:     dashboard,
	}

	router, err := app.setupRouter()
	if err != nil {
		return nil, fmt.Errorf("failed to set up router: %w", err)
	}
	app.Router = router

	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

// setupRouter builds the middleware chain and mounts the handlers.
func (app *Application) setupRouter() (*chi.Mux, error) {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.StructuredLogger(app.Logger))
	r.Use(custommw.Recoverer(app.Logger))

	requestMetrics, err := custommw.NewRequestMetrics(app.Observability.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to register request metrics: %w", err)
	}
	r.Use(requestMetrics.Handler)

	if app.Config.Security.RateLimit.Enabled {
		limiter := custommw.NewRateLimiter(
			app.Config.Security.RateLimit.RPS,
			app.Config.Security.RateLimit.Burst,
			app.Logger,
		)
		r.Use(limiter.Handler)
	}

	r.Use(custommw.Timeout(app.Config.Server.RequestTimeout))
	r.Use(custommw.Compress(5))

	errorHandler := apierrors.NewErrorHandler(app.Logger, app.Config.Logging.Development)

	dashboardHandler := handlers.NewDashboardHandler(app.Dashboard, app.Logger, errorHandler)
	healthHandler := handlers.NewHealthHandler(Version)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/dashboard", dashboardHandler.Routes())
		r.Mount("/health", healthHandler.Routes())
	})
	r.Handle("/metrics", app.Observability.PrometheusHTTP)

	return r, nil
}

// Run starts the HTTP server and blocks until shutdown completes. SIGINT
// and SIGTERM trigger a graceful shutdown bounded by the configured
// timeout.
func (app *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.Logger.Info("server listening", slog.String("addr", app.Server.Addr))
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		app.Logger.Info("shutting down",
			slog.Duration("timeout", app.Config.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := app.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		if err := app.Observability.Shutdown(shutdownCtx); err != nil {
			app.Logger.Warn("metrics shutdown failed", slog.String("error", err.Error()))
		}
		infrastructure.CloseLogFile()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	// Give in-flight log writes a moment before the process exits.
	time.Sleep(50 * time.Millisecond)
	return nil
}
