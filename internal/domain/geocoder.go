package domain

import "context"

// Geocoder resolves free-text place names to coordinates.
type Geocoder interface {
	// ForwardGeocode returns the best match for query, or ErrNotFound.
	ForwardGeocode(ctx context.Context, query string) (GeocodingResult, error)
}

// ReverseGeocoder resolves coordinates to a place name.
type ReverseGeocoder interface {
	// ReverseGeocode returns the place at coord. Callers should fall back to
	// CoordinateLabel on error; see ResolvePlace.
	ReverseGeocode(ctx context.Context, coord Coordinate) (PlaceName, error)
}

// ForecastFetcher retrieves current, hourly, and daily weather for a coordinate.
type ForecastFetcher interface {
	Fetch(ctx context.Context, coord Coordinate) (Forecast, error)
}
