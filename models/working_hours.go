package models

import "time"

// WorkingHours is a contractor's recurring schedule for one weekday.
// An empty Slots list means the contractor does not work that day.
type WorkingHours struct {
	ContractorID string       `bson:"contractorId" json:"contractorId"`
	DayOfWeek    time.Weekday `bson:"dayOfWeek" json:"dayOfWeek"` // 0 = Sunday
	Slots        []TimeSlot   `bson:"slots" json:"slots"`
}
