package domain

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- mock reverse geocoder ---

type mockReverseGeocoder struct {
	place PlaceName
	err   error
	calls int
}

func (m *mockReverseGeocoder) ReverseGeocode(_ context.Context, _ Coordinate) (PlaceName, error) {
	m.calls++
	return m.place, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var testCoord = Coordinate{Latitude: 31.95, Longitude: 35.91}

// --- tests ---

func TestCoordinateLabel(t *testing.T) {
	assert.Equal(t, PlaceName{Label: "Location (31.95°, 35.91°)"}, CoordinateLabel(testCoord))
	assert.Equal(t, "Location (-33.87°, 151.21°)",
		CoordinateLabel(Coordinate{Latitude: -33.8688, Longitude: 151.2093}).Label)
	assert.Equal(t, "Location (0.00°, 0.00°)", CoordinateLabel(Coordinate{}).Label)
}

func TestResolvePlace_Success(t *testing.T) {
	geo := &mockReverseGeocoder{place: PlaceName{Label: "Amman", Country: "Jordan"}}

	place, degraded := ResolvePlace(context.Background(), geo, testCoord, discardLogger())

	assert.False(t, degraded)
	assert.Equal(t, "Amman", place.Label)
	assert.Equal(t, "Jordan", place.Country)
	assert.Equal(t, 1, geo.calls)
}

func TestResolvePlace_Error_GracefulDegradation(t *testing.T) {
	geo := &mockReverseGeocoder{err: errors.New("status 503")}

	place, degraded := ResolvePlace(context.Background(), geo, testCoord, discardLogger())

	assert.True(t, degraded)
	assert.Equal(t, "Location (31.95°, 35.91°)", place.Label)
	assert.Empty(t, place.Country)
}

func TestResolvePlace_EmptyLabel(t *testing.T) {
	geo := &mockReverseGeocoder{place: PlaceName{Country: "Jordan"}}

	place, degraded := ResolvePlace(context.Background(), geo, testCoord, discardLogger())

	assert.True(t, degraded)
	assert.Equal(t, CoordinateLabel(testCoord), place)
}

func TestResolvePlace_NilGeocoder(t *testing.T) {
	place, degraded := ResolvePlace(context.Background(), nil, testCoord, discardLogger())

	assert.True(t, degraded)
	assert.Equal(t, CoordinateLabel(testCoord), place)
}

func TestResolvePlace_CancelledContextLogsNoWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	geo := &mockReverseGeocoder{err: context.Canceled}

	place, degraded := ResolvePlace(ctx, geo, testCoord, logger)

	assert.True(t, degraded)
	assert.Equal(t, CoordinateLabel(testCoord), place)
	assert.Empty(t, buf.String())
}

func TestResolvePlace_ErrorLogsWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	geo := &mockReverseGeocoder{err: errors.New("status 503")}

	_, degraded := ResolvePlace(context.Background(), geo, testCoord, logger)

	assert.True(t, degraded)
	assert.Contains(t, buf.String(), "reverse geocoding failed")
}
