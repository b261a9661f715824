// Package availability turns a contractor's working hours and committed jobs
// into the free slots that can hold a new job.
package availability

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"floormatch/models"
	"floormatch/utils"
)

// ErrInvalidInput is returned when a required collection is missing.
var ErrInvalidInput = errors.New("invalid availability input")

// ScheduleSource is the read side of the schedule store.
type ScheduleSource interface {
	GetWorkingHours(ctx context.Context, contractorID string, day time.Weekday) ([]models.TimeSlot, error)
	GetCommittedJobs(ctx context.Context, contractorID, date string) ([]models.Job, error)
}

// Calculate returns the free sub-intervals of workingHours that are not taken by
// committed jobs and last at least requiredDurationHours. Output follows the order
// of workingHours and is start-ordered within each interval.
func Calculate(workingHours []models.TimeSlot, committedJobs []models.Job, requiredDurationHours float64) ([]models.TimeSlot, error) {
	if workingHours == nil {
		return nil, fmt.Errorf("%w: working hours are nil", ErrInvalidInput)
	}
	if committedJobs == nil {
		return nil, fmt.Errorf("%w: committed jobs are nil", ErrInvalidInput)
	}
	if math.IsNaN(requiredDurationHours) || requiredDurationHours < 0 {
		return nil, fmt.Errorf("%w: required duration %.2f", ErrInvalidInput, requiredDurationHours)
	}

	free := []models.TimeSlot{}
	if len(workingHours) == 0 {
		return free, nil
	}

	busy := mergeIntervals(busyIntervals(committedJobs))
	for _, working := range workingHours {
		if !working.Valid() {
			continue
		}
		for _, gap := range subtractIntervals(working, busy) {
			if gap.MeetsMinimum(requiredDurationHours) {
				free = append(free, gap)
			}
		}
	}
	return free, nil
}

// ForDate loads the contractor's schedule for date and runs Calculate over it.
func ForDate(ctx context.Context, src ScheduleSource, contractorID string, date time.Time, requiredDurationHours float64) ([]models.TimeSlot, error) {
	hours, err := src.GetWorkingHours(ctx, contractorID, date.Weekday())
	if err != nil {
		return nil, fmt.Errorf("failed to load working hours for %s: %w", contractorID, err)
	}
	jobs, err := src.GetCommittedJobs(ctx, contractorID, date.Format(utils.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to load committed jobs for %s: %w", contractorID, err)
	}
	return Calculate(hours, jobs, requiredDurationHours)
}

// busyIntervals projects assigned and in-progress jobs onto the day.
func busyIntervals(jobs []models.Job) []models.TimeSlot {
	busy := make([]models.TimeSlot, 0, len(jobs))
	for _, job := range jobs {
		if !job.Status.IsCommitted() {
			continue
		}
		slot := job.BusySlot()
		// A zero-length job blocks nothing.
		if !slot.Valid() {
			continue
		}
		busy = append(busy, slot)
	}
	return busy
}

// mergeIntervals sorts by start and folds together intervals that overlap or touch.
// Double bookings in the source data collapse into one busy block.
func mergeIntervals(intervals []models.TimeSlot) []models.TimeSlot {
	if len(intervals) == 0 {
		return intervals
	}
	sorted := make([]models.TimeSlot, len(intervals))
	copy(sorted, intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	merged := []models.TimeSlot{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// subtractIntervals removes every busy interval from working. busy must be sorted and merged.
func subtractIntervals(working models.TimeSlot, busy []models.TimeSlot) []models.TimeSlot {
	remaining := []models.TimeSlot{working}
	for _, block := range busy {
		var next []models.TimeSlot
		for _, gap := range remaining {
			if !gap.Overlaps(block) {
				next = append(next, gap)
				continue
			}
			if gap.Start < block.Start {
				next = append(next, models.TimeSlot{Start: gap.Start, End: block.Start})
			}
			if gap.End > block.End {
				next = append(next, models.TimeSlot{Start: block.End, End: gap.End})
			}
		}
		remaining = next
	}
	return remaining
}
