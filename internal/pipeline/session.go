package pipeline

import (
	"context"
	"errors"
	"sync"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
)

// ErrSuperseded is returned for a lookup whose result arrived after a newer
// lookup was started on the same Session.
var ErrSuperseded = errors.New("lookup superseded by a newer request")

// Session serializes lookups for a single consumer such as an interactive
// terminal. Starting a lookup cancels the one in flight, and a result is only
// delivered if no newer lookup has started since, so a slow earlier response
// can never replace a newer one.
type Session struct {
	pipeline *Pipeline

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// NewSession creates a Session over p.
func NewSession(p *Pipeline) *Session {
	return &Session{pipeline: p}
}

// ResolveByName is Pipeline.ResolveByName with supersession.
func (s *Session) ResolveByName(ctx context.Context, query string) (domain.WeatherView, error) {
	return s.Start(ctx).ResolveByName(query)
}

// ResolveByCoordinates is Pipeline.ResolveByCoordinates with supersession.
func (s *Session) ResolveByCoordinates(ctx context.Context, coord domain.Coordinate) (domain.WeatherView, error) {
	return s.Start(ctx).ResolveByCoordinates(coord)
}

// Start reserves the next generation and cancels the lookup in flight. The
// returned Lookup may run later, on another goroutine, and still keeps the
// order in which Start was called.
func (s *Session) Start(ctx context.Context) *Lookup {
	ctx, token := s.begin(ctx)
	return &Lookup{session: s, ctx: ctx, token: token}
}

// Lookup is one reserved generation of a Session. Each Lookup runs once.
type Lookup struct {
	session *Session
	ctx     context.Context
	token   uint64
}

// ResolveByName runs a name lookup under the reserved generation. It returns
// ErrSuperseded if a newer Lookup was started before it finished.
func (l *Lookup) ResolveByName(query string) (domain.WeatherView, error) {
	view, err := l.session.pipeline.ResolveByName(l.ctx, query)
	return l.finish(view, err)
}

// ResolveByCoordinates runs a coordinate lookup under the reserved generation.
// It returns ErrSuperseded if a newer Lookup was started before it finished.
func (l *Lookup) ResolveByCoordinates(coord domain.Coordinate) (domain.WeatherView, error) {
	view, err := l.session.pipeline.ResolveByCoordinates(l.ctx, coord)
	return l.finish(view, err)
}

func (l *Lookup) finish(view domain.WeatherView, err error) (domain.WeatherView, error) {
	if !l.session.end(l.token) {
		return domain.WeatherView{}, ErrSuperseded
	}
	return view, err
}

// begin takes the next generation token and cancels the previous lookup.
func (s *Session) begin(parent context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	s.cancel = cancel
	return ctx, s.gen
}

// end reports whether token is still the latest generation and, if so,
// releases its context.
func (s *Session) end(token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.gen {
		return false
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return true
}
