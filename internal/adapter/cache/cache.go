// Package cache provides in-memory LRU decorators for the geocoding
// collaborators. Only successful lookups are stored; weather data is never cached.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
)

// Cache method labels.
const (
	methodForward = "forward"
	methodReverse = "reverse"
)

// CachedGeocoder wraps a Geocoder with an in-memory LRU cache.
type CachedGeocoder struct {
	inner   domain.Geocoder
	cache   *lruCache[domain.GeocodingResult]
	metrics *observability.Metrics
}

// NewCachedGeocoder creates a cache decorator around a geocoder.
func NewCachedGeocoder(inner domain.Geocoder, maxEntries int, metrics *observability.Metrics) *CachedGeocoder {
	return &CachedGeocoder{
		inner:   inner,
		cache:   newLRUCache[domain.GeocodingResult](maxEntries),
		metrics: metrics,
	}
}

func (c *CachedGeocoder) ForwardGeocode(ctx context.Context, query string) (domain.GeocodingResult, error) {
	key := "fwd:" + strings.ToLower(strings.TrimSpace(query))
	if result, ok := c.cache.get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues(methodForward, "hit").Inc()
		return result, nil
	}
	c.metrics.GeocodeCache.WithLabelValues(methodForward, "miss").Inc()

	result, err := c.inner.ForwardGeocode(ctx, query)
	if err != nil {
		// Not-found and transport failures are never cached so they can be retried.
		return result, err
	}
	c.cache.put(key, result)
	return result, nil
}

// CachedReverseGeocoder wraps a ReverseGeocoder with an in-memory LRU cache.
type CachedReverseGeocoder struct {
	inner   domain.ReverseGeocoder
	cache   *lruCache[domain.PlaceName]
	metrics *observability.Metrics
}

// NewCachedReverseGeocoder creates a cache decorator around a reverse geocoder.
func NewCachedReverseGeocoder(inner domain.ReverseGeocoder, maxEntries int, metrics *observability.Metrics) *CachedReverseGeocoder {
	return &CachedReverseGeocoder{
		inner:   inner,
		cache:   newLRUCache[domain.PlaceName](maxEntries),
		metrics: metrics,
	}
}

func (c *CachedReverseGeocoder) ReverseGeocode(ctx context.Context, coord domain.Coordinate) (domain.PlaceName, error) {
	key := fmt.Sprintf("rev:%.6f,%.6f", coord.Latitude, coord.Longitude)
	if place, ok := c.cache.get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues(methodReverse, "hit").Inc()
		return place, nil
	}
	c.metrics.GeocodeCache.WithLabelValues(methodReverse, "miss").Inc()

	place, err := c.inner.ReverseGeocode(ctx, coord)
	if err != nil {
		return place, err
	}
	if place.Label != "" {
		c.cache.put(key, place)
	}
	return place, nil
}

// lruCache is a simple thread-safe LRU cache.
type lruCache[V any] struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry[V]
	head       *entry[V] // most recently used
	tail       *entry[V] // least recently used
}

type entry[V any] struct {
	key   string
	value V
	prev  *entry[V]
	next  *entry[V]
}

func newLRUCache[V any](maxEntries int) *lruCache[V] {
	return &lruCache[V]{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry[V]),
	}
}

func (c *lruCache[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache[V]) put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache[V]) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache[V]) moveToFront(e *entry[V]) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache[V]) addToFront(e *entry[V]) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache[V]) remove(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache[V]) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
