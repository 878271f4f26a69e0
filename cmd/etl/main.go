package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/grib-scan-etl/internal/adapter/fetch"
	"github.com/couchcryptid/grib-scan-etl/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/grib-scan-etl/internal/adapter/kafka"
	"github.com/couchcryptid/grib-scan-etl/internal/config"
	"github.com/couchcryptid/grib-scan-etl/internal/observability"
	"github.com/couchcryptid/grib-scan-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// URL fetching is feature-flagged via FETCH_ENABLED; with it off, only
	// requests carrying inline payloads are scanned.
	var fetcher pipeline.Fetcher
	if cfg.FetchEnabled {
		client := fetch.NewClient(cfg, metrics, logger)
		fetcher = fetch.NewCachedFetcher(client, cfg.FetchCacheSize, metrics)
		metrics.FetchEnabled.Set(1)
		logger.Info("url fetching enabled", "cache_size", cfg.FetchCacheSize, "timeout", cfg.FetchTimeout, "max_bytes", cfg.FetchMaxBytes)
	} else {
		logger.Info("url fetching disabled")
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(fetcher, logger, metrics)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start scan pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
