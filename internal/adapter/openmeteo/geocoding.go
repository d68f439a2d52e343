package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
	"github.com/go-resty/resty/v2"
)

// GeocodingClient implements domain.Geocoder using the Open-Meteo geocoding API.
type GeocodingClient struct {
	rc      *resty.Client
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewGeocodingClient creates a geocoding client rooted at baseURL.
func NewGeocodingClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *GeocodingClient {
	return &GeocodingClient{
		rc:      newRestClient(baseURL, timeout, logger),
		metrics: metrics,
		logger:  logger,
	}
}

// ForwardGeocode returns the first search match for query. A well-formed
// response with no results yields domain.ErrNotFound.
func (c *GeocodingClient) ForwardGeocode(ctx context.Context, query string) (domain.GeocodingResult, error) {
	body, err := get(ctx, c.rc, c.metrics, observability.UpstreamGeocoding, "/search", map[string]string{
		"name":     query,
		"count":    "1",
		"language": "en",
		"format":   "json",
	})
	if err != nil {
		return domain.GeocodingResult{}, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(observability.UpstreamGeocoding, "error").Inc()
		return domain.GeocodingResult{}, fmt.Errorf("decode geocoding response: %w", err)
	}

	if len(resp.Results) == 0 {
		c.metrics.UpstreamRequests.WithLabelValues(observability.UpstreamGeocoding, "empty").Inc()
		c.logger.Debug("geocoding returned no results", "query", query)
		return domain.GeocodingResult{}, domain.ErrNotFound
	}
	c.metrics.UpstreamRequests.WithLabelValues(observability.UpstreamGeocoding, "success").Inc()

	r := resp.Results[0]
	return domain.GeocodingResult{
		Coordinate: domain.Coordinate{Latitude: r.Latitude, Longitude: r.Longitude},
		Place:      domain.PlaceName{Label: r.Name, Country: r.Country},
	}, nil
}

// Open-Meteo geocoding response types.

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
}
