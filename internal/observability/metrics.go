package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "weather_lookup"

// Upstream labels for UpstreamRequests and UpstreamDuration.
const (
	UpstreamGeocoding        = "geocoding"
	UpstreamForecast         = "forecast"
	UpstreamReverseGeocoding = "reverse_geocoding"
)

// Metrics holds the Prometheus counters and histograms for the lookup service.
type Metrics struct {
	Lookups        *prometheus.CounterVec   // labels: method={name,coordinates}, outcome={success,validation,not_found,network}
	LookupDuration *prometheus.HistogramVec // labels: method

	// Upstream API metrics.
	UpstreamRequests *prometheus.CounterVec   // labels: upstream, outcome={success,error,empty}
	UpstreamDuration *prometheus.HistogramVec // labels: upstream

	// Geocoding metrics.
	GeocodeCache            *prometheus.CounterVec // labels: method={forward,reverse}, result={hit,miss}
	ReverseGeocodeFallbacks prometheus.Counter

	// Lookup event publishing.
	EventsPublished   prometheus.Counter
	EventPublishError prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.Lookups,
		m.LookupDuration,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.GeocodeCache,
		m.ReverseGeocodeFallbacks,
		m.EventsPublished,
		m.EventPublishError,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Weather lookups by method and outcome.",
		}, []string{"method", "outcome"}),
		LookupDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lookup_duration_seconds",
			Help:      "End-to-end duration of a weather lookup.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream API requests by upstream and outcome.",
		}, []string{"upstream", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_duration_seconds",
			Help:      "Upstream API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"upstream"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by method and result.",
		}, []string{"method", "result"}),
		ReverseGeocodeFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reverse_geocode_fallbacks_total",
			Help:      "Coordinate lookups labelled with coordinates because reverse geocoding failed.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_events_published_total",
			Help:      "Lookup events written to Kafka.",
		}),
		EventPublishError: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_event_errors_total",
			Help:      "Lookup events that failed to publish.",
		}),
	}
}
