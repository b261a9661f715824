package scheduleRepo

import (
	"context"
	"time"

	"floormatch/models"
)

// ScheduleRepository reads contractor working hours and committed jobs.
type ScheduleRepository interface {
	GetWorkingHours(ctx context.Context, contractorID string, day time.Weekday) ([]models.TimeSlot, error)
	GetCommittedJobs(ctx context.Context, contractorID, date string) ([]models.Job, error)
}
