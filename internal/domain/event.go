package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Lookup methods.
const (
	MethodName        = "name"
	MethodCoordinates = "coordinates"
)

// LookupEvent records one successful lookup for downstream consumers.
type LookupEvent struct {
	ID           string     `json:"id"`
	Method       string     `json:"method"`
	Query        string     `json:"query,omitempty"`
	Place        PlaceName  `json:"place"`
	Coordinate   Coordinate `json:"coordinate"`
	Timezone     string     `json:"timezone,omitempty"`
	TemperatureC float64    `json:"temperature_c"`
	WeatherCode  int        `json:"weather_code"`
	Description  string     `json:"description"`
	UVIndex      float64    `json:"uv_index"`
	UVLevel      string     `json:"uv_level"`
	ResolvedAt   time.Time  `json:"resolved_at"`
}

// NewLookupEvent summarizes a view. query is empty for coordinate lookups.
func NewLookupEvent(method, query string, view WeatherView) LookupEvent {
	resolvedAt := clock.Now().UTC()
	return LookupEvent{
		ID:           generateID(method, query, view.Coordinate, resolvedAt),
		Method:       method,
		Query:        query,
		Place:        view.Place,
		Coordinate:   view.Coordinate,
		Timezone:     view.Timezone,
		TemperatureC: view.Current.TemperatureC,
		WeatherCode:  view.Current.WeatherCode,
		Description:  view.Current.Description,
		UVIndex:      view.UVNow,
		UVLevel:      view.UV.Level,
		ResolvedAt:   resolvedAt,
	}
}

// generateID derives a SHA-256 hex ID from the lookup's method, query,
// coordinate and resolution time.
func generateID(method, query string, coord Coordinate, at time.Time) string {
	key := fmt.Sprintf("%s|%s|%.4f|%.4f|%s", method, query, coord.Latitude, coord.Longitude, at.Format(time.RFC3339Nano))
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
