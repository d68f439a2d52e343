package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Upstream APIs.
	GeocodingBaseURL   string
	ForecastBaseURL    string
	NominatimBaseURL   string
	NominatimUserAgent string
	UpstreamTimeout    time.Duration

	// GeocodeCacheSize bounds each in-memory geocoding cache; 0 disables caching.
	GeocodeCacheSize int

	// DefaultCity is looked up when a request names neither a city nor coordinates.
	DefaultCity string

	// Lookup event publishing.
	LookupEventsEnabled bool
	KafkaBrokers        []string
	KafkaLookupTopic    string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	upstreamTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("UPSTREAM_TIMEOUT", "10s"))
	if err != nil || upstreamTimeout <= 0 {
		return nil, errors.New("invalid UPSTREAM_TIMEOUT")
	}

	cacheSize, err := parseGeocodeCacheSize()
	if err != nil {
		return nil, err
	}

	eventsEnabled := false
	if v := os.Getenv("LOOKUP_EVENTS_ENABLED"); v != "" {
		eventsEnabled, err = strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("invalid LOOKUP_EVENTS_ENABLED")
		}
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		GeocodingBaseURL:   sharedcfg.EnvOrDefault("GEOCODING_BASE_URL", "https://geocoding-api.open-meteo.com/v1"),
		ForecastBaseURL:    sharedcfg.EnvOrDefault("FORECAST_BASE_URL", "https://api.open-meteo.com/v1"),
		NominatimBaseURL:   sharedcfg.EnvOrDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent: sharedcfg.EnvOrDefault("NOMINATIM_USER_AGENT", "WeatherFlow-App/1.0"),
		UpstreamTimeout:    upstreamTimeout,

		GeocodeCacheSize: cacheSize,
		DefaultCity:      sharedcfg.EnvOrDefault("DEFAULT_CITY", "Amman, Jordan"),

		LookupEventsEnabled: eventsEnabled,
		KafkaBrokers:        sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaLookupTopic:    sharedcfg.EnvOrDefault("KAFKA_LOOKUP_TOPIC", "weather-lookups"),
	}

	if cfg.GeocodingBaseURL == "" || cfg.ForecastBaseURL == "" || cfg.NominatimBaseURL == "" {
		return nil, errors.New("GEOCODING_BASE_URL, FORECAST_BASE_URL and NOMINATIM_BASE_URL are required")
	}
	if cfg.NominatimUserAgent == "" {
		return nil, errors.New("NOMINATIM_USER_AGENT is required")
	}
	if cfg.LookupEventsEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("LOOKUP_EVENTS_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaLookupTopic == "" {
			return nil, errors.New("LOOKUP_EVENTS_ENABLED is true but KAFKA_LOOKUP_TOPIC is empty")
		}
	}

	return cfg, nil
}

func parseGeocodeCacheSize() (int, error) {
	s := os.Getenv("GEOCODE_CACHE_SIZE")
	if s == "" {
		return 1000, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("invalid GEOCODE_CACHE_SIZE")
	}
	return n, nil
}
