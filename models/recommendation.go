package models

import "time"

// JobLocation is where the flooring job takes place.
type JobLocation struct {
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
	Address   string  `json:"address,omitempty"`
}

// Coordinates returns the location as a plain pair.
func (l JobLocation) Coordinates() Coordinates {
	return Coordinates{Latitude: l.Latitude, Longitude: l.Longitude}
}

// WeightsInput carries optional caller-supplied scoring weights.
type WeightsInput struct {
	Availability float64 `json:"availability"`
	Rating       float64 `json:"rating"`
	Distance     float64 `json:"distance"`
}

// RecommendationRequest asks for a ranked shortlist of contractors for a job.
type RecommendationRequest struct {
	JobType       string        `json:"jobType" binding:"required"`
	TargetDate    string        `json:"targetDate" binding:"required"` // "YYYY-MM-DD"
	TargetTime    string        `json:"targetTime" binding:"required"` // "HH:MM" local
	Location      *JobLocation  `json:"location" binding:"required"`
	DurationHours float64       `json:"durationHours" binding:"required,gt=0,lte=24"`
	Count         int           `json:"count" binding:"omitempty,min=1,max=50"`
	Weights       *WeightsInput `json:"weights,omitempty"`
}

// SlotView is a free slot as shown to the caller.
type SlotView struct {
	Start string  `json:"start"` // "HH:MM"
	End   string  `json:"end"`   // "HH:MM"
	Hours float64 `json:"hours"`
}

// NewSlotView renders a slot for API responses.
func NewSlotView(s TimeSlot) SlotView {
	return SlotView{Start: FormatClock(s.Start), End: FormatClock(s.End), Hours: s.Duration()}
}

// RecommendationItem is one contractor in the ranked shortlist.
type RecommendationItem struct {
	Rank           int               `json:"rank"`
	Contractor     ContractorSummary `json:"contractor"`
	DistanceMiles  float64           `json:"distanceMiles"`
	DistanceSource DistanceSource    `json:"distanceSource"`
	BestSlot       *SlotView         `json:"bestSlot,omitempty"`
	Scores         ScoreBreakdown    `json:"scores"`
}

// RecommendationResponse is the ranked shortlist for one request.
type RecommendationResponse struct {
	RequestID      string               `json:"requestId"`
	GeneratedAt    time.Time            `json:"generatedAt"`
	CandidateCount int                  `json:"candidateCount"`
	Results        []RecommendationItem `json:"results"`
}

// AvailabilityResponse lists a contractor's free slots on a date.
type AvailabilityResponse struct {
	ContractorID  string     `json:"contractorId"`
	Date          string     `json:"date"`
	DurationHours float64    `json:"durationHours"`
	Slots         []SlotView `json:"slots"`
}
