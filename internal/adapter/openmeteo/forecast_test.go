package openmeteo

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ammanForecast = `{
  "latitude": 31.95,
  "longitude": 35.91,
  "timezone": "Asia/Amman",
  "timezone_abbreviation": "GMT+3",
  "utc_offset_seconds": 10800,
  "current": {
    "time": "2026-10-19T12:30",
    "temperature_2m": 24.6,
    "relative_humidity_2m": 38,
    "apparent_temperature": 23.9,
    "is_day": 1,
    "precipitation": 0.0,
    "weather_code": 2,
    "cloud_cover": 40,
    "pressure_msl": 1014.2,
    "wind_speed_10m": 12.3,
    "wind_direction_10m": 270,
    "wind_gusts_10m": 25.1
  },
  "hourly": {
    "time": ["2026-10-19T00:00", "2026-10-19T01:00"],
    "visibility": [24140.0, null],
    "uv_index": [0.0, null]
  },
  "daily": {
    "time": ["2026-10-19", "2026-10-20", "2026-10-21"],
    "weather_code": [2, 61, 0],
    "temperature_2m_max": [27.1, 22.4, 25.0],
    "temperature_2m_min": [15.2, 14.0],
    "sunrise": ["2026-10-19T06:12", "2026-10-20T06:13", "2026-10-21T06:13"],
    "sunset": ["2026-10-19T17:35", "2026-10-20T17:34", "2026-10-21T17:33"],
    "uv_index_max": [6.5, null, 5.9]
  }
}`

func testForecaster(t *testing.T, h http.HandlerFunc) *ForecastClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewForecastClient(srv.URL, 5*time.Second, observability.NewMetricsForTesting(), discardLogger())
}

func TestForecastClient_Fetch_QueryParams(t *testing.T) {
	c := testForecaster(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "31.95", q.Get("latitude"))
		assert.Equal(t, "35.91", q.Get("longitude"))
		assert.Equal(t, "auto", q.Get("timezone"))
		assert.Equal(t, "7", q.Get("forecast_days"))
		assert.Equal(t, currentFields, q.Get("current"))
		assert.Contains(t, q.Get("hourly"), "visibility")
		assert.Contains(t, q.Get("hourly"), "uv_index")
		assert.Contains(t, q.Get("daily"), "sunrise")
		assert.Contains(t, q.Get("daily"), "uv_index_max")

		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(ammanForecast))
	})

	_, err := c.Fetch(t.Context(), domain.Coordinate{Latitude: 31.95, Longitude: 35.91})
	require.NoError(t, err)
}

func TestForecastClient_Fetch_Decode(t *testing.T) {
	c := testForecaster(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(ammanForecast))
	})

	coord := domain.Coordinate{Latitude: 31.95, Longitude: 35.91}
	f, err := c.Fetch(t.Context(), coord)
	require.NoError(t, err)

	assert.Equal(t, coord, f.Coordinate)
	assert.Equal(t, "Asia/Amman", f.Timezone)
	assert.Equal(t, 10800, f.UTCOffsetSeconds)

	assert.InDelta(t, 24.6, f.Current.TemperatureC, 1e-9)
	assert.InDelta(t, 23.9, f.Current.ApparentTemperatureC, 1e-9)
	assert.InDelta(t, 38, f.Current.RelativeHumidityPct, 1e-9)
	assert.InDelta(t, 12.3, f.Current.WindSpeedKmh, 1e-9)
	assert.InDelta(t, 1014.2, f.Current.PressureHpa, 1e-9)
	assert.Equal(t, 2, f.Current.WeatherCode)
	assert.True(t, f.Current.IsDay)

	require.Len(t, f.Hourly.Visibility, 2)
	require.NotNil(t, f.Hourly.Visibility[0])
	assert.InDelta(t, 24140.0, *f.Hourly.Visibility[0], 1e-9)
	assert.Nil(t, f.Hourly.Visibility[1])
	assert.Nil(t, f.Hourly.UVIndex[1])

	require.Len(t, f.Daily, 3)
	today := f.Daily[0]
	assert.Equal(t, "2026-10-19", today.Date)
	assert.InDelta(t, 27.1, today.TempMaxC, 1e-9)
	require.NotNil(t, today.UVIndexMax)
	assert.InDelta(t, 6.5, *today.UVIndexMax, 1e-9)

	wantSunrise := time.Date(2026, 10, 19, 3, 12, 0, 0, time.UTC)
	assert.True(t, today.Sunrise.Equal(wantSunrise), "sunrise %v", today.Sunrise)
	_, offset := today.Sunrise.Zone()
	assert.Equal(t, 10800, offset)

	assert.Nil(t, f.Daily[1].UVIndexMax)
	assert.Equal(t, 61, f.Daily[1].WeatherCode)
}

func TestForecastClient_Fetch_RaggedArraysTolerated(t *testing.T) {
	c := testForecaster(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(ammanForecast))
	})

	f, err := c.Fetch(t.Context(), domain.Coordinate{Latitude: 31.95, Longitude: 35.91})
	require.NoError(t, err)

	// temperature_2m_min has only two entries.
	assert.Zero(t, f.Daily[2].TempMinC)
	assert.Equal(t, 0, f.Daily[2].WeatherCode)
}

func TestForecastClient_Fetch_EmptyPayload(t *testing.T) {
	c := testForecaster(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{}`))
	})

	f, err := c.Fetch(t.Context(), domain.Coordinate{})
	require.NoError(t, err)
	assert.Empty(t, f.Daily)
}

func TestForecastClient_Fetch_ServerErrors(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError, http.StatusServiceUnavailable} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			c := testForecaster(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
			})

			_, err := c.Fetch(t.Context(), domain.Coordinate{Latitude: 31.95, Longitude: 35.91})
			require.Error(t, err)
		})
	}
}

func TestParseLocal(t *testing.T) {
	zone := time.FixedZone("GMT+3", 3*3600)

	got := parseLocal("2026-10-19T06:12", zone)
	assert.Equal(t, 6, got.Hour())
	assert.Equal(t, 12, got.Minute())
	assert.Equal(t, zone, got.Location())

	assert.True(t, parseLocal("", zone).IsZero())
	assert.True(t, parseLocal("not a time", zone).IsZero())
}
