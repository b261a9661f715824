package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"floormatch/config"
	"floormatch/models"
	"floormatch/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// DistanceResolver is the part of the distance resolver the worker needs.
type DistanceResolver interface {
	Resolve(ctx context.Context, origin, destination models.Coordinates) models.DistanceResult
}

// QueueRedisOpt returns the asynq connection for the task queue database.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// redisMonitorInterval is how often the queue database is pinged.
var redisMonitorInterval = 10 * time.Second

// InitDistanceRefreshWorker runs the refresh worker in the background and
// returns the server so the caller can shut it down. The Redis monitor stops
// when ctx is cancelled.
func InitDistanceRefreshWorker(ctx context.Context, resolver DistanceResolver, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeDistanceRefresh, handleDistanceRefreshTask(resolver, logger))

	go monitorRedisConnection(ctx, logger)

	go func() {
		logger.Info("starting distance refresh worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("distance refresh worker failed to start",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err),
			)
			if attempts == maxAttempts {
				logger.Error("distance refresh worker giving up")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

func handleDistanceRefreshTask(resolver DistanceResolver, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.DistanceRefreshPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Warn("invalid distance refresh payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		result := resolver.Resolve(ctx, p.Origin, p.Destination)
		if !result.Authoritative() {
			// Returning an error lets asynq retry with its own backoff.
			return fmt.Errorf("routing api still unavailable: %s", result.Message)
		}
		logger.Debug("distance refreshed",
			zap.Float64("miles", result.DistanceMiles),
			zap.String("source", string(result.Source)),
		)
		return nil
	}
}

// monitorRedisConnection pings the queue database periodically to surface
// connection loss in the logs, until ctx is cancelled.
func monitorRedisConnection(ctx context.Context, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(redisMonitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("task queue redis connection lost", zap.Error(err))
			}
		}
	}
}
