package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"floormatch/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeDistanceRefresh = "distance:refresh"

// refreshDelay gives a rate-limited routing API time to recover before the
// first retry.
const refreshDelay = 30 * time.Second

func NewDistanceRefreshTask(payload models.DistanceRefreshPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeDistanceRefresh, b)
	opts := []asynq.Option{
		asynq.ProcessIn(refreshDelay),
		asynq.MaxRetry(5),
		asynq.Timeout(time.Minute),
		// one pending refresh per pair
		asynq.Unique(time.Hour),
	}
	return task, opts, nil
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// DistanceRefresher schedules background refreshes of fallback distances.
type DistanceRefresher struct {
	client Enqueuer
	logger *zap.Logger
}

func NewDistanceRefresher(client Enqueuer, logger *zap.Logger) *DistanceRefresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DistanceRefresher{client: client, logger: logger}
}

// ScheduleRefresh enqueues a refresh for the pair. A duplicate of a pending
// task is not an error.
func (r *DistanceRefresher) ScheduleRefresh(ctx context.Context, origin, destination models.Coordinates) error {
	task, opts, err := NewDistanceRefreshTask(models.DistanceRefreshPayload{Origin: origin, Destination: destination})
	if err != nil {
		return fmt.Errorf("failed to build refresh task: %w", err)
	}
	info, err := r.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to enqueue refresh task: %w", err)
	}
	r.logger.Debug("distance refresh scheduled", zap.String("taskID", info.ID))
	return nil
}
