package distance

import (
	"context"
	"testing"
	"time"

	"floormatch/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func TestRedisStoreTreatsOutageAsMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	store := NewRedisStore(client, time.Hour, zap.NewNop())
	ctx := context.Background()

	store.Set(ctx, "k", models.DistanceResult{DistanceMiles: 3, Source: models.DistanceSourceAPI})
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("expected a miss while redis is unreachable")
	}

	cache := NewCache(10, time.Hour, store)
	cache.Set(ctx, "k", models.DistanceResult{DistanceMiles: 3})
	if res, ok := cache.Get(ctx, "k"); !ok || res.DistanceMiles != 3 {
		t.Fatalf("expected local tier to serve the entry, got %+v %v", res, ok)
	}
}
