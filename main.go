package main

import (
	"context"
	"fmt"
	"os"

	"candidate_application/config"
	"candidate_application/handlers"
	"candidate_application/i18n"
	"candidate_application/logger"
	"candidate_application/metrics"
	"candidate_application/services"
	"candidate_application/settings"
	"candidate_application/utils"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	e, cleanup, err := newServer(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("Starting candidate application service")
	return e.Start(":" + cfg.Port)
}

// newServer wires the store, services and routes. cleanup releases the store
// and the NATS connection.
func newServer(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*echo.Echo, func(), error) {
	store, err := settings.Open(ctx, cfg.StoreDriver, cfg.StoreDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open settings store %q: %w", cfg.StoreDriver, err)
	}
	closers := []func(){func() { _ = store.Close() }}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	catalog, err := i18n.NewCatalog()
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("build translation catalog: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	opts := []services.Option{
		services.WithMetrics(metrics.New(registry)),
		services.WithLogger(logger.WithComponent(log, "application")),
	}
	if cfg.NATSUrl != "" {
		natsService, err := services.NewNATSService(cfg.NATSUrl, cfg.SubmittedSubject, cfg.CopySubject, log)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connect to NATS: %w", err)
		}
		closers = append(closers, natsService.Close)
		opts = append(opts, services.WithPublisher(natsService))
	}

	applicationService := services.NewApplicationService(store, cfg.SettingsNamespace, catalog, opts...)

	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewValidator()
	e.Use(middleware.RequestID())
	e.Use(logger.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Initialize handlers
	applicationHandler := handlers.NewApplicationHandler(applicationService, catalog, cfg)
	configHandler := handlers.NewConfigHandler(cfg.SettingsNamespace, catalog.Languages())

	// Routes
	e.GET("/config", configHandler.HandleConfig)
	e.GET("/application", applicationHandler.HandleGetApplicationForm)
	e.POST("/application", applicationHandler.HandleSubmitApplication)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return e, cleanup, nil
}
