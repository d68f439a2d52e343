package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
	"golang.org/x/sync/errgroup"
)

// Publisher receives a summary of every successful lookup.
type Publisher interface {
	Publish(ctx context.Context, event domain.LookupEvent) error
}

// Pipeline orchestrates geocoding, forecast fetching and view building. Each
// call is self-contained; the Pipeline holds no per-lookup state.
type Pipeline struct {
	geocoder  domain.Geocoder
	reverse   domain.ReverseGeocoder
	forecasts domain.ForecastFetcher
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	closed    atomic.Bool
}

// New creates a Pipeline. reverse and publisher may be nil: without a reverse
// geocoder every coordinate lookup is labelled with its coordinates, and
// without a publisher no lookup events are emitted.
func New(g domain.Geocoder, r domain.ReverseGeocoder, f domain.ForecastFetcher, pub Publisher, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		geocoder:  g,
		reverse:   r,
		forecasts: f,
		publisher: pub,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness reports whether the pipeline accepts lookups. It fails once
// Close has been called so load balancers drain traffic during shutdown.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if p.closed.Load() {
		return errors.New("pipeline is shutting down")
	}
	return nil
}

// Close marks the pipeline as draining.
func (p *Pipeline) Close() {
	p.closed.Store(true)
}

// ResolveByName geocodes query and returns the weather there. Errors are
// *domain.LookupError values whose message is safe to show as-is.
func (p *Pipeline) ResolveByName(ctx context.Context, query string) (domain.WeatherView, error) {
	start := time.Now()
	query = strings.TrimSpace(query)

	view, err := p.resolveByName(ctx, query)
	p.finish(ctx, domain.MethodName, query, start, view, err)
	return view, err
}

// ResolveByCoordinates returns the weather at coord. Reverse geocoding runs
// alongside the forecast fetch; its failure only changes the place label.
func (p *Pipeline) ResolveByCoordinates(ctx context.Context, coord domain.Coordinate) (domain.WeatherView, error) {
	start := time.Now()

	view, err := p.resolveByCoordinates(ctx, coord)
	p.finish(ctx, domain.MethodCoordinates, "", start, view, err)
	return view, err
}

func (p *Pipeline) resolveByName(ctx context.Context, query string) (domain.WeatherView, error) {
	if query == "" {
		return domain.WeatherView{}, domain.ValidationError(domain.MsgEmptyQuery)
	}

	result, err := p.geocoder.ForwardGeocode(ctx, query)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.WeatherView{}, domain.NotFoundError(err)
		}
		p.logger.Error("geocoding failed", "query", query, "error", err)
		return domain.WeatherView{}, domain.NetworkError(domain.MsgGeocodeFailed, err)
	}

	// The geocoder already named the place, so reverse geocoding is skipped.
	forecast, err := p.fetchForecast(ctx, result.Coordinate)
	if err != nil {
		return domain.WeatherView{}, err
	}
	return domain.BuildView(forecast, result.Place), nil
}

func (p *Pipeline) resolveByCoordinates(ctx context.Context, coord domain.Coordinate) (domain.WeatherView, error) {
	if err := ValidateCoordinate(coord); err != nil {
		return domain.WeatherView{}, err
	}

	var (
		forecast domain.Forecast
		place    domain.PlaceName
		degraded bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		forecast, err = p.fetchForecast(gctx, coord)
		return err
	})
	g.Go(func() error {
		place, degraded = domain.ResolvePlace(gctx, p.reverse, coord, p.logger)
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.WeatherView{}, err
	}
	if degraded {
		p.metrics.ReverseGeocodeFallbacks.Inc()
	}

	return domain.BuildView(forecast, place), nil
}

func (p *Pipeline) fetchForecast(ctx context.Context, coord domain.Coordinate) (domain.Forecast, error) {
	forecast, err := p.forecasts.Fetch(ctx, coord)
	if err != nil {
		p.logger.Error("forecast fetch failed",
			"lat", coord.Latitude,
			"lon", coord.Longitude,
			"error", err,
		)
		return domain.Forecast{}, domain.NetworkError(domain.MsgForecastFailed, err)
	}
	return forecast, nil
}

// finish records metrics for a terminal outcome and publishes the lookup event
// on success.
func (p *Pipeline) finish(ctx context.Context, method, query string, start time.Time, view domain.WeatherView, err error) {
	p.metrics.LookupDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	if err != nil {
		p.metrics.Lookups.WithLabelValues(method, domain.KindOf(err).String()).Inc()
		return
	}
	p.metrics.Lookups.WithLabelValues(method, "success").Inc()
	p.logger.Info("lookup complete",
		"method", method,
		"place", view.Place.Label,
		"country", view.Place.Country,
		"duration", time.Since(start),
	)

	if p.publisher == nil {
		return
	}
	event := domain.NewLookupEvent(method, query, view)
	if err := p.publisher.Publish(ctx, event); err != nil {
		p.metrics.EventPublishError.Inc()
		p.logger.Warn("publish lookup event failed", "id", event.ID, "error", err)
		return
	}
	p.metrics.EventsPublished.Inc()
}

// ValidateCoordinate rejects latitudes outside [-90, 90], longitudes outside
// [-180, 180], and non-finite values.
func ValidateCoordinate(coord domain.Coordinate) error {
	if !finite(coord.Latitude) || coord.Latitude < -90 || coord.Latitude > 90 {
		return domain.ValidationError(domain.MsgInvalidLatitude)
	}
	if !finite(coord.Longitude) || coord.Longitude < -180 || coord.Longitude > 180 {
		return domain.ValidationError(domain.MsgInvalidLongitude)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
