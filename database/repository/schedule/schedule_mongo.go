package scheduleRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"floormatch/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const queryTimeout = 5 * time.Second

type mongoScheduleRepo struct {
	hours *mongo.Collection
	jobs  *mongo.Collection
}

// NewMongoScheduleRepo constructs a ScheduleRepository over the
// "working_hours" and "jobs" collections.
func NewMongoScheduleRepo(db *mongo.Database, logger *zap.Logger) ScheduleRepository {
	repo := &mongoScheduleRepo{
		hours: db.Collection("working_hours"),
		jobs:  db.Collection("jobs"),
	}
	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("failed to create schedule indexes", zap.Error(err))
	}
	return repo
}

func (repo *mongoScheduleRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := repo.hours.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "contractorId", Value: 1}, {Key: "dayOfWeek", Value: 1}},
	}); err != nil {
		return fmt.Errorf("failed to index working hours: %w", err)
	}
	if _, err := repo.jobs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "contractorId", Value: 1}, {Key: "date", Value: 1}, {Key: "status", Value: 1}},
	}); err != nil {
		return fmt.Errorf("failed to index jobs: %w", err)
	}
	return nil
}

// GetWorkingHours returns the contractor's slots for the weekday. A missing
// document is a non-working day.
func (repo *mongoScheduleRepo) GetWorkingHours(ctx context.Context, contractorID string, day time.Weekday) ([]models.TimeSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var wh models.WorkingHours
	err := repo.hours.FindOne(ctx, bson.M{"contractorId": contractorID, "dayOfWeek": day}).Decode(&wh)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []models.TimeSlot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch working hours: %w", err)
	}
	if wh.Slots == nil {
		return []models.TimeSlot{}, nil
	}
	return wh.Slots, nil
}

// GetCommittedJobs returns the contractor's assigned and in-progress jobs on date.
func (repo *mongoScheduleRepo) GetCommittedJobs(ctx context.Context, contractorID, date string) ([]models.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := repo.jobs.Find(ctx, committedJobsFilter(contractorID, date))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jobs: %w", err)
	}
	defer cursor.Close(ctx)

	jobs := []models.Job{}
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("error decoding jobs: %w", err)
	}
	return jobs, nil
}

func committedJobsFilter(contractorID, date string) bson.M {
	return bson.M{
		"contractorId": contractorID,
		"date":         date,
		"status":       bson.M{"$in": models.CommittedStatuses},
	}
}
