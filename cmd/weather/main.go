package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/weather-lookup-service/internal/adapter/cache"
	httpadapter "github.com/couchcryptid/weather-lookup-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/weather-lookup-service/internal/adapter/kafka"
	"github.com/couchcryptid/weather-lookup-service/internal/adapter/nominatim"
	"github.com/couchcryptid/weather-lookup-service/internal/adapter/openmeteo"
	"github.com/couchcryptid/weather-lookup-service/internal/config"
	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
	"github.com/couchcryptid/weather-lookup-service/internal/pipeline"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var (
		geocoder domain.Geocoder        = openmeteo.NewGeocodingClient(cfg.GeocodingBaseURL, cfg.UpstreamTimeout, metrics, logger)
		reverse  domain.ReverseGeocoder = nominatim.NewClient(cfg.NominatimBaseURL, cfg.NominatimUserAgent, cfg.UpstreamTimeout, metrics, logger)
	)
	if cfg.GeocodeCacheSize > 0 {
		geocoder = cache.NewCachedGeocoder(geocoder, cfg.GeocodeCacheSize, metrics)
		reverse = cache.NewCachedReverseGeocoder(reverse, cfg.GeocodeCacheSize, metrics)
		logger.Info("geocode cache enabled", "cache_size", cfg.GeocodeCacheSize)
	}
	forecasts := openmeteo.NewForecastClient(cfg.ForecastBaseURL, cfg.UpstreamTimeout, metrics, logger)

	// Lookup events are feature-flagged via LOOKUP_EVENTS_ENABLED.
	var (
		publisher pipeline.Publisher
		writer    *kafkaadapter.Writer
	)
	if cfg.LookupEventsEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("lookup events enabled", "topic", cfg.KafkaLookupTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("lookup events disabled")
	}

	p := pipeline.New(geocoder, reverse, forecasts, publisher, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, cfg.DefaultCity, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	p.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
