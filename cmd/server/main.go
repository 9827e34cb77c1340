package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/eonet-tracker/internal/adapter/eonet"
	"github.com/couchcryptid/eonet-tracker/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/eonet-tracker/internal/adapter/kafka"
	"github.com/couchcryptid/eonet-tracker/internal/analytics"
	"github.com/couchcryptid/eonet-tracker/internal/cache"
	"github.com/couchcryptid/eonet-tracker/internal/config"
	"github.com/couchcryptid/eonet-tracker/internal/observability"
	"github.com/couchcryptid/eonet-tracker/internal/refresh"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	client := eonet.NewClient(cfg.EONETBaseURL, cfg.EONETTimeout, clock, metrics, logger)
	store := cache.New(client, cfg.FetchWindowDays, clock, metrics, logger)
	engine := analytics.New(store, clock, metrics, logger)

	// Feed fan-out is feature-flagged via KAFKA_EXPORT_ENABLED.
	var exporter refresh.Exporter
	var publisher *kafkaadapter.Publisher
	if cfg.KafkaExportEnabled {
		publisher = kafkaadapter.NewPublisher(cfg, clock, logger)
		exporter = publisher
		metrics.ExportEnabled.Set(1)
	} else {
		logger.Info("kafka export disabled")
	}

	scheduler := refresh.New(store, exporter, cfg.RefreshInterval, clock, metrics, logger)

	srv := httpadapter.NewServer(cfg.HTTPAddr, engine, store, scheduler, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start refresh scheduler.
	go func() {
		if err := scheduler.Run(ctx); err != nil {
			logger.Error("scheduler error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
