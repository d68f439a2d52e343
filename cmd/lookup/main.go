// Command lookup runs weather lookups from the terminal.
//
// Usage:
//
//	lookup -city "Amman, Jordan"
//	lookup -lat 31.95 -lon 35.91 -json
//	lookup -i    # one city or "lat,lon" per line; a new line supersedes the lookup in flight
//
// With no arguments it looks up DEFAULT_CITY. Upstream endpoints and logging
// are configured through the same environment variables as the service.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/couchcryptid/weather-lookup-service/internal/adapter/cache"
	"github.com/couchcryptid/weather-lookup-service/internal/adapter/nominatim"
	"github.com/couchcryptid/weather-lookup-service/internal/adapter/openmeteo"
	"github.com/couchcryptid/weather-lookup-service/internal/config"
	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
	"github.com/couchcryptid/weather-lookup-service/internal/pipeline"
	"github.com/joho/godotenv"
)

type options struct {
	city        string
	lat, lon    string
	asJSON      bool
	interactive bool
}

func main() {
	var opts options
	flag.StringVar(&opts.city, "city", "", "city to look up")
	flag.StringVar(&opts.lat, "lat", "", "latitude (requires -lon)")
	flag.StringVar(&opts.lon, "lon", "", "longitude (requires -lat)")
	flag.BoolVar(&opts.asJSON, "json", false, "print the weather view as JSON")
	flag.BoolVar(&opts.interactive, "i", false, "read lookups from stdin, one per line")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: failed to load .env:", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	logger := observability.NewStderrLogger(cfg)
	p := newPipeline(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.interactive {
		interactive(ctx, pipeline.NewSession(p), os.Stdin, os.Stdout, opts.asJSON)
		return
	}

	view, err := once(ctx, p, opts, cfg.DefaultCity)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := output(os.Stdout, view, opts.asJSON); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newPipeline(cfg *config.Config, logger *slog.Logger) *pipeline.Pipeline {
	metrics := observability.NewMetrics()

	var (
		geocoder domain.Geocoder        = openmeteo.NewGeocodingClient(cfg.GeocodingBaseURL, cfg.UpstreamTimeout, metrics, logger)
		reverse  domain.ReverseGeocoder = nominatim.NewClient(cfg.NominatimBaseURL, cfg.NominatimUserAgent, cfg.UpstreamTimeout, metrics, logger)
	)
	if cfg.GeocodeCacheSize > 0 {
		geocoder = cache.NewCachedGeocoder(geocoder, cfg.GeocodeCacheSize, metrics)
		reverse = cache.NewCachedReverseGeocoder(reverse, cfg.GeocodeCacheSize, metrics)
	}
	forecasts := openmeteo.NewForecastClient(cfg.ForecastBaseURL, cfg.UpstreamTimeout, metrics, logger)

	return pipeline.New(geocoder, reverse, forecasts, nil, logger, metrics)
}

// resolver is the lookup surface shared by *pipeline.Pipeline and *pipeline.Session.
type resolver interface {
	ResolveByName(ctx context.Context, query string) (domain.WeatherView, error)
	ResolveByCoordinates(ctx context.Context, coord domain.Coordinate) (domain.WeatherView, error)
}

// once runs the single lookup selected by opts.
func once(ctx context.Context, r resolver, opts options, defaultCity string) (domain.WeatherView, error) {
	switch {
	case opts.lat != "" || opts.lon != "":
		coord, err := parseCoordinate(opts.lat, opts.lon)
		if err != nil {
			return domain.WeatherView{}, err
		}
		return r.ResolveByCoordinates(ctx, coord)
	case opts.city != "":
		return r.ResolveByName(ctx, opts.city)
	default:
		return r.ResolveByName(ctx, defaultCity)
	}
}

// interactive starts a lookup for every input line. Each new line supersedes
// the lookup still in flight, whose result is dropped. Generations are
// reserved here, in input order, before the lookup goroutine starts.
func interactive(ctx context.Context, s *pipeline.Session, in io.Reader, out io.Writer, asJSON bool) {
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	report := func(view domain.WeatherView, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			fmt.Fprintln(out, "error:", err)
			return
		}
		if err := output(out, view, asJSON); err != nil {
			fmt.Fprintln(out, "error:", err)
		}
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lk := s.Start(ctx)
		wg.Add(1)
		go func() {
			defer wg.Done()
			view, err := lookupLine(lk, line)
			if errors.Is(err, pipeline.ErrSuperseded) {
				return
			}
			report(view, err)
		}()
	}
	wg.Wait()
}

// lineResolver is a lookup already bound to its context, such as *pipeline.Lookup.
type lineResolver interface {
	ResolveByName(query string) (domain.WeatherView, error)
	ResolveByCoordinates(coord domain.Coordinate) (domain.WeatherView, error)
}

// lookupLine treats "lat,lon" as coordinates and anything else as a city.
func lookupLine(r lineResolver, line string) (domain.WeatherView, error) {
	if lat, lon, ok := strings.Cut(line, ","); ok {
		if coord, err := parseCoordinate(lat, lon); err == nil {
			return r.ResolveByCoordinates(coord)
		}
	}
	return r.ResolveByName(line)
}

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

func output(w io.Writer, view domain.WeatherView, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}
	render(w, view)
	return nil
}
