package nominatim

import (
	"context"
	"errors"
	"testing"

	"github.com/fabianqube/Telegram-Weather-Bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock for cache tests ---

type countingGeocoder struct {
	calls  int
	result domain.GeocodingResult
	err    error
}

func (g *countingGeocoder) Geocode(_ context.Context, _ string) (domain.GeocodingResult, error) {
	g.calls++
	return g.result, g.err
}

// --- CachedGeocoder tests ---

func TestCachedGeocoder_CacheHit(t *testing.T) {
	inner := &countingGeocoder{
		result: domain.GeocodingResult{Coord: domain.Coordinate{Lat: 40.71, Lon: -74.01}, Found: true},
	}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	r1, err := cached.Geocode(context.Background(), "New York")
	require.NoError(t, err)
	assert.True(t, r1.Found)

	r2, err := cached.Geocode(context.Background(), "New York")
	require.NoError(t, err)
	assert.Equal(t, r1, r2)

	assert.Equal(t, 1, inner.calls, "should only call inner once")
}

func TestCachedGeocoder_NotFoundIsNotCached(t *testing.T) {
	inner := &countingGeocoder{result: domain.GeocodingResult{}}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, err := cached.Geocode(context.Background(), "Atlantis")
	require.NoError(t, err)
	_, err = cached.Geocode(context.Background(), "Atlantis")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls, "misses must reach the provider every time")
}

func TestCachedGeocoder_ErrorPassesThrough(t *testing.T) {
	inner := &countingGeocoder{err: errors.New("boom")}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, err := cached.Geocode(context.Background(), "London")
	require.Error(t, err)
}

func TestCachedGeocoder_DifferentKeysMiss(t *testing.T) {
	inner := &countingGeocoder{result: domain.GeocodingResult{Found: true}}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, _ = cached.Geocode(context.Background(), "Austin")
	_, _ = cached.Geocode(context.Background(), "Dallas")

	assert.Equal(t, 2, inner.calls)
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", domain.GeocodingResult{DisplayName: "A"})
	c.put("b", domain.GeocodingResult{DisplayName: "B"})

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A", result.DisplayName)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", domain.GeocodingResult{DisplayName: "A"})
	c.put("b", domain.GeocodingResult{DisplayName: "B"})
	c.put("c", domain.GeocodingResult{DisplayName: "C"}) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	_, ok = c.get("b")
	assert.True(t, ok)
	_, ok = c.get("c")
	assert.True(t, ok)
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", domain.GeocodingResult{DisplayName: "A"})
	c.put("b", domain.GeocodingResult{DisplayName: "B"})

	c.get("a")

	// Inserting "c" should now evict "b", not "a".
	c.put("c", domain.GeocodingResult{DisplayName: "C"})

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")
	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", domain.GeocodingResult{DisplayName: "A1"})
	c.put("a", domain.GeocodingResult{DisplayName: "A2"})

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A2", result.DisplayName)
}
