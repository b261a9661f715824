package distance

import (
	"context"
	"time"

	"floormatch/models"
	"floormatch/utils"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultCacheCapacity bounds the in-process tier when no capacity is configured.
const DefaultCacheCapacity = 10000

// Store is a shared cache tier that outlives this process (e.g. Redis).
type Store interface {
	Get(ctx context.Context, key string) (models.DistanceResult, bool)
	Set(ctx context.Context, key string, result models.DistanceResult)
}

// Cache holds routing API results. Reads try the in-process LRU first and then
// the optional shared store; writes go to both. Safe for concurrent use.
type Cache struct {
	local  *expirable.LRU[string, models.DistanceResult]
	remote Store
}

// NewCache creates the process-wide distance cache. It is meant to be built once
// in main and shared by every request.
func NewCache(capacity int, ttl time.Duration, remote Store) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	if ttl <= 0 {
		ttl = utils.DistanceCacheTTL
	}
	return &Cache{
		local:  expirable.NewLRU[string, models.DistanceResult](capacity, nil, ttl),
		remote: remote,
	}
}

func (c *Cache) Get(ctx context.Context, key string) (models.DistanceResult, bool) {
	if res, ok := c.local.Get(key); ok {
		return res, true
	}
	if c.remote == nil {
		return models.DistanceResult{}, false
	}
	return c.remote.Get(ctx, key)
}

func (c *Cache) Set(ctx context.Context, key string, result models.DistanceResult) {
	c.local.Add(key, result)
	if c.remote != nil {
		c.remote.Set(ctx, key, result)
	}
}

// Len returns the number of live in-process entries.
func (c *Cache) Len() int {
	return c.local.Len()
}
