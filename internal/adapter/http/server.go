package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WeatherResolver runs weather lookups. It is satisfied by *pipeline.Pipeline.
type WeatherResolver interface {
	ResolveByName(ctx context.Context, query string) (domain.WeatherView, error)
	ResolveByCoordinates(ctx context.Context, coord domain.Coordinate) (domain.WeatherView, error)
}

// Server exposes the weather API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer  *http.Server
	resolver    WeatherResolver
	defaultCity string
	logger      *slog.Logger
}

// NewServer creates an HTTP server with /api/weather, /healthz, /readyz, and
// /metrics routes. Requests naming neither a city nor coordinates look up
// defaultCity.
func NewServer(addr string, resolver WeatherResolver, defaultCity string, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		resolver:    resolver,
		defaultCity: defaultCity,
		logger:      logger,
	}

	mux.HandleFunc("GET /api/weather", s.handleWeather)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		view domain.WeatherView
		err  error
	)
	switch {
	case q.Has("lat") || q.Has("lon"):
		coord, perr := parseCoordinate(q.Get("lat"), q.Get("lon"))
		if perr != nil {
			writeError(w, perr)
			return
		}
		view, err = s.resolver.ResolveByCoordinates(r.Context(), coord)
	case q.Has("city"):
		view, err = s.resolver.ResolveByName(r.Context(), q.Get("city"))
	default:
		view, err = s.resolver.ResolveByName(r.Context(), s.defaultCity)
	}

	if err != nil {
		writeError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, view)
}

// parseCoordinate parses lat and lon query values. Range checks are left to
// the pipeline.
func parseCoordinate(lat, lon string) (domain.Coordinate, error) {
	latitude, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return domain.Coordinate{}, domain.ValidationError(domain.MsgInvalidLatitude)
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return domain.Coordinate{}, domain.ValidationError(domain.MsgInvalidLongitude)
	}
	return domain.Coordinate{Latitude: latitude, Longitude: longitude}, nil
}

func writeError(w http.ResponseWriter, err error) {
	var le *domain.LookupError
	if !errors.As(err, &le) {
		sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	sharedobs.WriteJSON(w, statusFor(le.Kind), map[string]string{"error": le.Message})
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
