package distance

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"floormatch/models"
	"floormatch/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore shares routing results between service instances.
// Redis errors are logged and treated as misses.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = utils.DistanceCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

func redisKey(key string) string {
	return utils.DistanceCachePrefix + key
}

func (s *RedisStore) Get(ctx context.Context, key string) (models.DistanceResult, bool) {
	val, err := s.client.Get(ctx, redisKey(key)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Debug("distance cache: redis get failed", zap.String("key", key), zap.Error(err))
		}
		return models.DistanceResult{}, false
	}
	var res models.DistanceResult
	if err := json.Unmarshal([]byte(val), &res); err != nil {
		s.logger.Warn("distance cache: corrupt entry", zap.String("key", key), zap.Error(err))
		return models.DistanceResult{}, false
	}
	return res, true
}

func (s *RedisStore) Set(ctx context.Context, key string, result models.DistanceResult) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, redisKey(key), data, s.ttl).Err(); err != nil {
		s.logger.Debug("distance cache: redis set failed", zap.String("key", key), zap.Error(err))
	}
}
