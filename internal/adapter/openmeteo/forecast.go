package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
	"github.com/go-resty/resty/v2"
)

// Variables requested from the forecast endpoint.
const (
	currentFields = "temperature_2m,relative_humidity_2m,apparent_temperature,is_day,precipitation," +
		"weather_code,cloud_cover,pressure_msl,surface_pressure,wind_speed_10m,wind_direction_10m,wind_gusts_10m"
	hourlyFields = "temperature_2m,relative_humidity_2m,apparent_temperature,precipitation_probability," +
		"precipitation,weather_code,pressure_msl,cloud_cover,visibility,wind_speed_10m,wind_direction_10m," +
		"wind_gusts_10m,uv_index"
	dailyFields = "weather_code,temperature_2m_max,temperature_2m_min,apparent_temperature_max," +
		"apparent_temperature_min,sunrise,sunset,uv_index_max,precipitation_sum,rain_sum,showers_sum," +
		"snowfall_sum,precipitation_hours,precipitation_probability_max,wind_speed_10m_max," +
		"wind_gusts_10m_max,wind_direction_10m_dominant"

	forecastDays = "7"
	sunLayout    = "2006-01-02T15:04"
)

// ForecastClient implements domain.ForecastFetcher using the Open-Meteo forecast API.
type ForecastClient struct {
	rc      *resty.Client
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewForecastClient creates a forecast client rooted at baseURL.
func NewForecastClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *ForecastClient {
	return &ForecastClient{
		rc:      newRestClient(baseURL, timeout, logger),
		metrics: metrics,
		logger:  logger,
	}
}

// Fetch retrieves current conditions, hourly and 7-day daily series for coord.
// The payload shape is not validated: missing or short arrays read as zero values.
func (c *ForecastClient) Fetch(ctx context.Context, coord domain.Coordinate) (domain.Forecast, error) {
	body, err := get(ctx, c.rc, c.metrics, observability.UpstreamForecast, "/forecast", map[string]string{
		"latitude":      formatCoord(coord.Latitude),
		"longitude":     formatCoord(coord.Longitude),
		"current":       currentFields,
		"hourly":        hourlyFields,
		"daily":         dailyFields,
		"timezone":      "auto",
		"forecast_days": forecastDays,
	})
	if err != nil {
		return domain.Forecast{}, err
	}

	var resp forecastResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(observability.UpstreamForecast, "error").Inc()
		return domain.Forecast{}, fmt.Errorf("decode forecast response: %w", err)
	}
	c.metrics.UpstreamRequests.WithLabelValues(observability.UpstreamForecast, "success").Inc()

	f := resp.toDomain(coord)
	c.logger.Debug("forecast fetched",
		"lat", coord.Latitude,
		"lon", coord.Longitude,
		"timezone", f.Timezone,
		"days", len(f.Daily),
	)
	return f, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Open-Meteo forecast response types.

type forecastResponse struct {
	Timezone             string       `json:"timezone"`
	TimezoneAbbreviation string       `json:"timezone_abbreviation"`
	UTCOffsetSeconds     int          `json:"utc_offset_seconds"`
	Current              currentBlock `json:"current"`
	Hourly               hourlyBlock  `json:"hourly"`
	Daily                dailyBlock   `json:"daily"`
}

type currentBlock struct {
	Time                string  `json:"time"`
	Temperature         float64 `json:"temperature_2m"`
	RelativeHumidity    float64 `json:"relative_humidity_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	IsDay               int     `json:"is_day"`
	Precipitation       float64 `json:"precipitation"`
	WeatherCode         int     `json:"weather_code"`
	CloudCover          float64 `json:"cloud_cover"`
	PressureMSL         float64 `json:"pressure_msl"`
	WindSpeed           float64 `json:"wind_speed_10m"`
	WindDirection       float64 `json:"wind_direction_10m"`
	WindGusts           float64 `json:"wind_gusts_10m"`
}

type hourlyBlock struct {
	Time       []string   `json:"time"`
	Visibility []*float64 `json:"visibility"`
	UVIndex    []*float64 `json:"uv_index"`
}

type dailyBlock struct {
	Time        []string   `json:"time"`
	WeatherCode []int      `json:"weather_code"`
	TempMax     []float64  `json:"temperature_2m_max"`
	TempMin     []float64  `json:"temperature_2m_min"`
	Sunrise     []string   `json:"sunrise"`
	Sunset      []string   `json:"sunset"`
	UVIndexMax  []*float64 `json:"uv_index_max"`
}

func (r forecastResponse) toDomain(coord domain.Coordinate) domain.Forecast {
	f := domain.Forecast{
		Coordinate:           coord,
		Timezone:             r.Timezone,
		TimezoneAbbreviation: r.TimezoneAbbreviation,
		UTCOffsetSeconds:     r.UTCOffsetSeconds,
		Current: domain.CurrentConditions{
			Time:                 r.Current.Time,
			TemperatureC:         r.Current.Temperature,
			ApparentTemperatureC: r.Current.ApparentTemperature,
			RelativeHumidityPct:  r.Current.RelativeHumidity,
			WindSpeedKmh:         r.Current.WindSpeed,
			WindGustsKmh:         r.Current.WindGusts,
			WindDirectionDeg:     r.Current.WindDirection,
			PressureHpa:          r.Current.PressureMSL,
			PrecipitationMm:      r.Current.Precipitation,
			CloudCoverPct:        r.Current.CloudCover,
			WeatherCode:          r.Current.WeatherCode,
			IsDay:                r.Current.IsDay == 1,
		},
		Hourly: domain.HourlySeries{
			Time:       r.Hourly.Time,
			Visibility: r.Hourly.Visibility,
			UVIndex:    r.Hourly.UVIndex,
		},
	}

	zone := f.Zone()
	d := r.Daily
	f.Daily = make([]domain.DailyPoint, len(d.Time))
	for i, date := range d.Time {
		f.Daily[i] = domain.DailyPoint{
			Date:        date,
			WeatherCode: at(d.WeatherCode, i),
			TempMaxC:    at(d.TempMax, i),
			TempMinC:    at(d.TempMin, i),
			Sunrise:     parseLocal(at(d.Sunrise, i), zone),
			Sunset:      parseLocal(at(d.Sunset, i), zone),
			UVIndexMax:  at(d.UVIndexMax, i),
		}
	}
	return f
}

// at returns s[i], or the zero value when s is too short.
func at[T any](s []T, i int) T {
	var zero T
	if i < 0 || i >= len(s) {
		return zero
	}
	return s[i]
}

func parseLocal(s string, zone *time.Location) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(sunLayout, s, zone)
	if err != nil {
		return time.Time{}
	}
	return t
}
