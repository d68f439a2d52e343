package domain

import "time"

// Coordinate is a WGS-84 latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PlaceName is a human-readable location label. Country is empty when unknown.
type PlaceName struct {
	Label   string `json:"label"`
	Country string `json:"country"`
}

// GeocodingResult is the best match for a free-text place search.
type GeocodingResult struct {
	Coordinate Coordinate
	Place      PlaceName
}

// CurrentConditions holds the observation block of a forecast response.
type CurrentConditions struct {
	Time                 string  `json:"time,omitempty"`
	TemperatureC         float64 `json:"temperature_c"`
	ApparentTemperatureC float64 `json:"apparent_temperature_c"`
	RelativeHumidityPct  float64 `json:"relative_humidity_pct"`
	WindSpeedKmh         float64 `json:"wind_speed_kmh"`
	WindGustsKmh         float64 `json:"wind_gusts_kmh"`
	WindDirectionDeg     float64 `json:"wind_direction_deg"`
	PressureHpa          float64 `json:"pressure_hpa"`
	PrecipitationMm      float64 `json:"precipitation_mm"`
	CloudCoverPct        float64 `json:"cloud_cover_pct"`
	WeatherCode          int     `json:"weather_code"`
	IsDay                bool    `json:"is_day"`
}

// DailyPoint is one calendar day of the daily series.
type DailyPoint struct {
	Date        string    `json:"date"` // YYYY-MM-DD, location-local
	WeatherCode int       `json:"weather_code"`
	TempMaxC    float64   `json:"temp_max_c"`
	TempMinC    float64   `json:"temp_min_c"`
	Sunrise     time.Time `json:"sunrise"`
	Sunset      time.Time `json:"sunset"`
	UVIndexMax  *float64  `json:"uv_index_max,omitempty"`
}

// HourlySeries holds the parallel hourly arrays the view builder reads.
// Nil elements are JSON nulls from upstream.
type HourlySeries struct {
	Time       []string
	Visibility []*float64
	UVIndex    []*float64
}

// Forecast is the Forecast Fetcher output for one coordinate.
type Forecast struct {
	Coordinate           Coordinate
	Timezone             string
	TimezoneAbbreviation string
	UTCOffsetSeconds     int
	Current              CurrentConditions
	Hourly               HourlySeries
	Daily                []DailyPoint // index 0 is today
}

// Zone returns the location's fixed-offset zone.
func (f Forecast) Zone() *time.Location {
	name := f.TimezoneAbbreviation
	if name == "" {
		name = f.Timezone
	}
	return time.FixedZone(name, f.UTCOffsetSeconds)
}

// SunTimes is today's sunrise and sunset.
type SunTimes struct {
	Sunrise time.Time `json:"sunrise"`
	Sunset  time.Time `json:"sunset"`
}

// CurrentView is CurrentConditions with display lookups applied.
type CurrentView struct {
	CurrentConditions
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ForecastDay is a DailyPoint with display lookups applied.
type ForecastDay struct {
	DailyPoint
	Weekday     string `json:"weekday"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// WeatherView is the display-ready result of a lookup.
type WeatherView struct {
	Place        PlaceName     `json:"place"`
	Coordinate   Coordinate    `json:"coordinate"`
	Timezone     string        `json:"timezone,omitempty"`
	LocalTime    time.Time     `json:"local_time"`
	Current      CurrentView   `json:"current"`
	TodaySun     *SunTimes     `json:"today_sun,omitempty"`
	UVNow        float64       `json:"uv_now"`
	UV           UVReading     `json:"uv"`
	VisibilityKm *float64      `json:"visibility_km,omitempty"`
	Forecast     []ForecastDay `json:"forecast"`
}
