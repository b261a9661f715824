package distance

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"floormatch/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeRoutingAPI struct {
	mu    sync.Mutex
	calls int
	leg   RouteLeg
	err   error
	panic bool
}

func (f *fakeRoutingAPI) Route(ctx context.Context, origin, destination models.Coordinates) (RouteLeg, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.panic {
		panic("boom")
	}
	return f.leg, f.err
}

func (f *fakeRoutingAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]models.DistanceResult
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string]models.DistanceResult)}
}

func (m *memoryStore) Get(_ context.Context, key string) (models.DistanceResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.entries[key]
	return r, ok
}

func (m *memoryStore) Set(_ context.Context, key string, r models.DistanceResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = r
}

func TestResolverCachesAPIResultsBothWays(t *testing.T) {
	api := &fakeRoutingAPI{leg: RouteLeg{DistanceMeters: 16093.44, DurationSeconds: 1200}}
	r := NewResolver(NewCache(10, time.Hour, nil), api, zap.NewNop())

	first := r.Resolve(context.Background(), chicago, evanston)
	assert.Equal(t, models.DistanceSourceAPI, first.Source)
	assert.InDelta(t, 10.0, first.DistanceMiles, 1e-9)
	assert.InDelta(t, 20.0, first.DurationMinutes, 1e-9)

	second := r.Resolve(context.Background(), evanston, chicago)
	assert.Equal(t, models.DistanceSourceCache, second.Source)
	assert.Equal(t, first.DistanceMiles, second.DistanceMiles)
	assert.Equal(t, 1, api.callCount())
}

func TestResolverFallbackIsNotCached(t *testing.T) {
	api := &fakeRoutingAPI{err: errors.New("dial tcp: connection refused")}
	cache := NewCache(10, time.Hour, nil)
	r := NewResolver(cache, api, zap.NewNop())

	res := r.Resolve(context.Background(), chicago, evanston)
	assert.Equal(t, models.DistanceSourceFallback, res.Source)
	assert.InDelta(t, HaversineMiles(chicago, evanston), res.DistanceMiles, 1e-9)
	assert.Contains(t, res.Message, "connection refused")
	assert.Equal(t, 0, cache.Len())

	r.Resolve(context.Background(), chicago, evanston)
	assert.Equal(t, 2, api.callCount())
}

func TestResolverUnreachableHostFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	client := NewRoutingClient(ClientConfig{BaseURL: url, AttemptTimeout: time.Second}, zap.NewNop())
	cache := NewCache(10, time.Hour, nil)
	r := NewResolver(cache, client, zap.New(core))

	res := r.Resolve(context.Background(), chicago, evanston)
	assert.Equal(t, models.DistanceSourceFallback, res.Source)
	assert.Less(t, math.Abs(res.DistanceMiles-HaversineMiles(chicago, evanston)), 1e-9)
	assert.Equal(t, 0, cache.Len())
	assert.Equal(t, 1, logs.FilterMessage("routing api unavailable, using great-circle fallback").Len())
}

func TestResolverRecoversFromPanics(t *testing.T) {
	api := &fakeRoutingAPI{panic: true}
	r := NewResolver(nil, api, zap.NewNop())

	res := r.Resolve(context.Background(), chicago, evanston)
	assert.Equal(t, models.DistanceSourceFallback, res.Source)
	assert.Contains(t, res.Message, "boom")
}

func TestResolverWithoutAPIFallsBack(t *testing.T) {
	r := NewResolver(nil, nil, nil)
	res := r.Resolve(context.Background(), chicago, evanston)
	assert.Equal(t, models.DistanceSourceFallback, res.Source)
}

func TestResolverReadsSharedStore(t *testing.T) {
	store := newMemoryStore()
	api := &fakeRoutingAPI{leg: RouteLeg{DistanceMeters: 8046.72, DurationSeconds: 600}}

	warm := NewResolver(NewCache(10, time.Hour, store), api, zap.NewNop())
	warm.Resolve(context.Background(), chicago, evanston)
	require.Len(t, store.entries, 1)

	// A second instance with a cold local tier hits the shared store.
	cold := NewResolver(NewCache(10, time.Hour, store), api, zap.NewNop())
	res := cold.Resolve(context.Background(), evanston, chicago)
	assert.Equal(t, models.DistanceSourceCache, res.Source)
	assert.InDelta(t, 5.0, res.DistanceMiles, 1e-9)
	assert.Equal(t, 1, api.callCount())
}

func TestCacheEvictsBeyondCapacity(t *testing.T) {
	cache := NewCache(2, time.Hour, nil)
	ctx := context.Background()
	cache.Set(ctx, "a", models.DistanceResult{DistanceMiles: 1})
	cache.Set(ctx, "b", models.DistanceResult{DistanceMiles: 2})
	cache.Get(ctx, "a")
	cache.Set(ctx, "c", models.DistanceResult{DistanceMiles: 3})

	assert.Equal(t, 2, cache.Len())
	_, ok := cache.Get(ctx, "b")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = cache.Get(ctx, "a")
	assert.True(t, ok)
}

func TestCacheEntriesExpire(t *testing.T) {
	cache := NewCache(10, 20*time.Millisecond, nil)
	ctx := context.Background()
	cache.Set(ctx, "a", models.DistanceResult{DistanceMiles: 1})
	time.Sleep(60 * time.Millisecond)
	_, ok := cache.Get(ctx, "a")
	assert.False(t, ok)
}

func TestResolverConcurrentUse(t *testing.T) {
	api := &fakeRoutingAPI{leg: RouteLeg{DistanceMeters: 1609.344, DurationSeconds: 60}}
	r := NewResolver(NewCache(100, time.Hour, nil), api, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			dest := models.Coordinates{Latitude: 42 + float64(i%5)/100, Longitude: -87.7}
			res := r.Resolve(context.Background(), chicago, dest)
			assert.InDelta(t, 1.0, res.DistanceMiles, 1e-9)
		}(i)
	}
	wg.Wait()
	assert.GreaterOrEqual(t, api.callCount(), 5)
}
