package models

import (
	"math"
	"time"
)

// JobStatus tracks a job through the assignment lifecycle.
type JobStatus string

const (
	JobStatusUnassigned JobStatus = "unassigned"
	JobStatusAssigned   JobStatus = "assigned"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// CommittedStatuses are the statuses that block a contractor's time.
var CommittedStatuses = []JobStatus{JobStatusAssigned, JobStatusInProgress}

// IsCommitted reports whether a job in this status occupies the contractor.
func (s JobStatus) IsCommitted() bool {
	return s == JobStatusAssigned || s == JobStatusInProgress
}

// Job is a flooring job as stored by the job service.
type Job struct {
	ID            string    `bson:"id" json:"id"`
	ContractorID  string    `bson:"contractorId" json:"contractorId,omitempty"`
	JobType       string    `bson:"jobType" json:"jobType"`             // e.g., "hardwood", "tile", "carpet"
	Date          string    `bson:"date" json:"date"`                   // "YYYY-MM-DD"
	Start         int       `bson:"start" json:"start"`                 // minutes from midnight
	DurationHours float64   `bson:"durationHours" json:"durationHours"` // e.g., 3.5
	Status        JobStatus `bson:"status" json:"status"`               // see JobStatus
	Address       string    `bson:"address,omitempty" json:"address,omitempty"`
	LocationGeo   GeoPoint  `bson:"locationGeo" json:"locationGeo"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt,omitzero"`
}

// BusySlot projects the job onto the day as [start, start+duration).
func (j Job) BusySlot() TimeSlot {
	return TimeSlot{
		Start: j.Start,
		End:   j.Start + int(math.Round(j.DurationHours*60)),
	}
}
