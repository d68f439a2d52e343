package domain

import (
	"context"
	"fmt"
	"log/slog"
)

// CoordinateLabel synthesizes a place label from coordinates, e.g.
// "Location (31.95°, 35.91°)".
func CoordinateLabel(coord Coordinate) PlaceName {
	return PlaceName{
		Label: fmt.Sprintf("Location (%.2f°, %.2f°)", coord.Latitude, coord.Longitude),
	}
}

// ResolvePlace reverse geocodes coord. It never fails: if reverse is nil or
// returns an error, the coordinate label is used instead (graceful degradation).
// The second return value reports whether the fallback was taken.
func ResolvePlace(ctx context.Context, reverse ReverseGeocoder, coord Coordinate, logger *slog.Logger) (PlaceName, bool) {
	if reverse == nil {
		return CoordinateLabel(coord), true
	}

	place, err := reverse.ReverseGeocode(ctx, coord)
	if err != nil && ctx.Err() != nil {
		logger.Debug("reverse geocoding cancelled", "error", err)
		return CoordinateLabel(coord), true
	}
	if err != nil {
		logger.Warn("reverse geocoding failed, using coordinate label",
			"lat", coord.Latitude,
			"lon", coord.Longitude,
			"error", err,
		)
		return CoordinateLabel(coord), true
	}
	if place.Label == "" {
		return CoordinateLabel(coord), true
	}
	return place, false
}
