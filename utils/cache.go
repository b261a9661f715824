// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"floormatch/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the shared distance cache client.
var CacheClient *redis.Client

// InitRedis initializes the Redis client backing the shared distance cache.
// An unreachable server is logged; lookups then miss until it comes back.
func InitRedis() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
		// The cache sits on the ranking hot path; fail fast and miss.
		DialTimeout:  500 * time.Millisecond,
		ReadTimeout:  300 * time.Millisecond,
		WriteTimeout: 300 * time.Millisecond,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Printf("Redis (Cache) unreachable, continuing with in-process cache only: %v", err)
	}
}

// GetCacheClient returns the distance cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitRedis()
	}
	return CacheClient
}
