// Package openmeteo implements domain.Geocoder and domain.ForecastFetcher
// against the Open-Meteo geocoding and forecast APIs.
package openmeteo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/weather-lookup-service/internal/observability"
	"github.com/go-resty/resty/v2"
)

// Default public endpoints.
const (
	DefaultGeocodingBaseURL = "https://geocoding-api.open-meteo.com/v1"
	DefaultForecastBaseURL  = "https://api.open-meteo.com/v1"
)

// newRestClient builds the resty client shared by both Open-Meteo clients.
// Retries are left disabled: a failed stage surfaces to the caller as-is.
func newRestClient(baseURL string, timeout time.Duration, logger *slog.Logger) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetLogger(observability.PrintfLogger{Logger: logger}).
		SetHeader("Accept", "application/json")
}

// get performs a GET and returns the raw body of a 2xx response, recording
// request count and latency under the given upstream label.
func get(ctx context.Context, rc *resty.Client, metrics *observability.Metrics, upstream, path string, params map[string]string) ([]byte, error) {
	start := time.Now()
	resp, err := rc.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	metrics.UpstreamDuration.WithLabelValues(upstream).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(upstream, "error").Inc()
		return nil, fmt.Errorf("%s request: %w", upstream, err)
	}
	if !resp.IsSuccess() {
		metrics.UpstreamRequests.WithLabelValues(upstream, "error").Inc()
		return nil, fmt.Errorf("open-meteo %s: status %d", upstream, resp.StatusCode())
	}
	return resp.Body(), nil
}
