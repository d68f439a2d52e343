// Package nominatim implements domain.ReverseGeocoder using the
// OpenStreetMap Nominatim reverse geocoding API.
package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the public Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// CurrentLocation labels an address that carries none of the known place keys.
const CurrentLocation = "Current Location"

// ErrNoAddress is returned when the response has no address object.
var ErrNoAddress = errors.New("nominatim: response has no address")

// Client implements domain.ReverseGeocoder.
type Client struct {
	rc      *resty.Client
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewClient creates a reverse geocoding client. Nominatim's usage policy
// requires an identifying User-Agent on every request.
func NewClient(baseURL, userAgent string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetLogger(observability.PrintfLogger{Logger: logger}).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")
	return &Client{rc: rc, metrics: metrics, logger: logger}
}

// ReverseGeocode returns the most specific place name available for coord.
func (c *Client) ReverseGeocode(ctx context.Context, coord domain.Coordinate) (domain.PlaceName, error) {
	start := time.Now()
	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format":         "json",
			"lat":            strconv.FormatFloat(coord.Latitude, 'f', -1, 64),
			"lon":            strconv.FormatFloat(coord.Longitude, 'f', -1, 64),
			"zoom":           "10",
			"addressdetails": "1",
		}).
		Get("/reverse")
	c.metrics.UpstreamDuration.WithLabelValues(observability.UpstreamReverseGeocoding).Observe(time.Since(start).Seconds())

	if err != nil {
		c.recordOutcome("error")
		return domain.PlaceName{}, fmt.Errorf("reverse geocode request: %w", err)
	}
	if !resp.IsSuccess() {
		c.recordOutcome("error")
		return domain.PlaceName{}, fmt.Errorf("nominatim API error: status %d", resp.StatusCode())
	}

	var body reverseResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		c.recordOutcome("error")
		return domain.PlaceName{}, fmt.Errorf("decode response: %w", err)
	}
	if body.Address == nil {
		c.recordOutcome("empty")
		return domain.PlaceName{}, ErrNoAddress
	}
	c.recordOutcome("success")

	return body.Address.placeName(), nil
}

func (c *Client) recordOutcome(outcome string) {
	c.metrics.UpstreamRequests.WithLabelValues(observability.UpstreamReverseGeocoding, outcome).Inc()
}

// Nominatim API response types.

type reverseResponse struct {
	DisplayName string   `json:"display_name"`
	Address     *address `json:"address"`
}

type address struct {
	City          string `json:"city"`
	Town          string `json:"town"`
	Village       string `json:"village"`
	Municipality  string `json:"municipality"`
	County        string `json:"county"`
	StateDistrict string `json:"state_district"`
	State         string `json:"state"`
	Country       string `json:"country"`
}

// placeName picks the first non-empty of city, town, village, municipality,
// county, state_district, state.
func (a *address) placeName() domain.PlaceName {
	label := CurrentLocation
	for _, candidate := range []string{a.City, a.Town, a.Village, a.Municipality, a.County, a.StateDistrict, a.State} {
		if candidate != "" {
			label = candidate
			break
		}
	}
	return domain.PlaceName{Label: label, Country: a.Country}
}
