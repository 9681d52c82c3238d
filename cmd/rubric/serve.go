package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Rubric/internal/api"
	"github.com/MikeSquared-Agency/Rubric/internal/broker"
	"github.com/MikeSquared-Agency/Rubric/internal/config"
	"github.com/MikeSquared-Agency/Rubric/internal/grader"
	"github.com/MikeSquared-Agency/Rubric/internal/hermes"
	"github.com/MikeSquared-Agency/Rubric/internal/metrics"
	"github.com/MikeSquared-Agency/Rubric/internal/store"
)

const apiRateLimit = 120

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the grading API, metrics server and NATS consumer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Store, error) {
	if cfg.Database.URL == "" {
		logger.Warn("no database configured, archiving reports in memory")
		return store.NewMemoryStore(), nil
	}
	db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("connected to database")
	return db, nil
}

func runServe(parent context.Context, cfg *config.Config) error {
	logger := newLogger(cfg.Logging, os.Stdout)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Report archive
	db, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open report archive: %w", err)
	}
	defer db.Close()

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	// Broker
	recorder := metrics.NewRecorder(prometheus.DefaultRegisterer)
	g := grader.NewGrader(graderOptions(cfg), logger)
	b := broker.New(g, db, hermesClient, recorder, cfg, logger)
	if err := b.Start(ctx); err != nil {
		logger.Warn("grade request consumer not started", "error", err)
	}
	defer b.Stop()
	logger.Info("broker started", "workers", cfg.Grading.Workers, "legacy_advisories", cfg.Grading.LegacyAdvisories)

	// API server
	router := api.NewRouter(b, db, api.RouterConfig{
		AdminToken:     cfg.Server.AdminToken,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		RateLimit:      apiRateLimit,
	}, logger)
	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           api.NewMetricsRouter(prometheus.DefaultGatherer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
	return nil
}
