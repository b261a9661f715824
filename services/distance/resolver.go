// Package distance resolves road distance between two coordinates through a
// shared cache, the routing API, and a great-circle fallback.
package distance

import (
	"context"
	"fmt"

	"floormatch/models"

	"go.uber.org/zap"
)

// Resolver never fails: every call ends with a result tagged api, cache or fallback.
type Resolver struct {
	cache  *Cache
	api    RoutingAPI
	logger *zap.Logger
}

// NewResolver wires the resolver. A nil api makes every miss fall back.
func NewResolver(cache *Cache, api RoutingAPI, logger *zap.Logger) *Resolver {
	if cache == nil {
		cache = NewCache(DefaultCacheCapacity, 0, nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{cache: cache, api: api, logger: logger}
}

// Resolve returns the distance between origin and destination. Only API results
// are cached, so a fallback answer is retried against the API on the next call.
func (r *Resolver) Resolve(ctx context.Context, origin, destination models.Coordinates) (result models.DistanceResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("distance resolution panicked, using fallback", zap.Any("panic", rec))
			result = FallbackResult(origin, destination, fmt.Sprintf("unexpected failure: %v", rec))
		}
	}()

	key := CacheKey(origin, destination)
	if cached, ok := r.cache.Get(ctx, key); ok {
		cached.Source = models.DistanceSourceCache
		return cached
	}

	if r.api == nil {
		return FallbackResult(origin, destination, "routing api not configured")
	}

	leg, err := r.api.Route(ctx, origin, destination)
	if err != nil {
		r.logger.Warn("routing api unavailable, using great-circle fallback",
			zap.String("key", key),
			zap.Error(err),
		)
		return FallbackResult(origin, destination, err.Error())
	}

	result = models.DistanceResult{
		DistanceMiles:   leg.DistanceMeters / metersPerMile,
		DurationMinutes: leg.DurationSeconds / 60,
		Source:          models.DistanceSourceAPI,
	}
	r.cache.Set(ctx, key, result)
	return result
}
