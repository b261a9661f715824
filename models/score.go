package models

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidWeights is returned when scoring weights are out of range or do not sum to 1.
var ErrInvalidWeights = errors.New("invalid scoring weights")

const weightSumTolerance = 0.001

// ScoringWeights controls how availability, rating and distance mix into the overall score.
// Build with NewScoringWeights or DefaultScoringWeights; the zero value means "use defaults".
type ScoringWeights struct {
	availability float64
	rating       float64
	distance     float64
}

// DefaultScoringWeights returns 0.4 availability, 0.3 rating, 0.3 distance.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{availability: 0.4, rating: 0.3, distance: 0.3}
}

// NewScoringWeights validates each weight is within [0,1] and that they sum to 1 within 0.001.
func NewScoringWeights(availability, rating, distance float64) (ScoringWeights, error) {
	for name, w := range map[string]float64{"availability": availability, "rating": rating, "distance": distance} {
		if math.IsNaN(w) || w < 0 || w > 1 {
			return ScoringWeights{}, fmt.Errorf("%w: %s weight %.4f outside [0,1]", ErrInvalidWeights, name, w)
		}
	}
	sum := availability + rating + distance
	if math.Abs(sum-1.0) > weightSumTolerance {
		return ScoringWeights{}, fmt.Errorf("%w: weights sum to %.4f, expected 1.0", ErrInvalidWeights, sum)
	}
	return ScoringWeights{availability: availability, rating: rating, distance: distance}, nil
}

func (w ScoringWeights) Availability() float64 { return w.availability }
func (w ScoringWeights) Rating() float64       { return w.rating }
func (w ScoringWeights) Distance() float64     { return w.distance }

// IsZero reports whether the weights were never set.
func (w ScoringWeights) IsZero() bool {
	return w == ScoringWeights{}
}

// Combine applies the weights to the three component scores.
func (w ScoringWeights) Combine(availability, rating, distance float64) float64 {
	return w.availability*availability + w.rating*rating + w.distance*distance
}

// ContractorScore is the per-request fitness of one contractor for one job.
type ContractorScore struct {
	ContractorID      string         `json:"contractorId"`
	OverallScore      float64        `json:"overallScore"`
	AvailabilityScore float64        `json:"availabilityScore"`
	RatingScore       float64        `json:"ratingScore"`
	DistanceScore     float64        `json:"distanceScore"`
	BestSlot          *TimeSlot      `json:"bestSlot,omitempty"`
	DistanceMiles     float64        `json:"distanceMiles"`
	DistanceSource    DistanceSource `json:"distanceSource"`
	Contractor        Contractor     `json:"-"`
}

// ScoreBreakdown is the score part of a recommendation item.
type ScoreBreakdown struct {
	Overall      float64 `json:"overall"`
	Availability float64 `json:"availability"`
	Rating       float64 `json:"rating"`
	Distance     float64 `json:"distance"`
}

// Breakdown extracts the four scores.
func (s ContractorScore) Breakdown() ScoreBreakdown {
	return ScoreBreakdown{
		Overall:      s.OverallScore,
		Availability: s.AvailabilityScore,
		Rating:       s.RatingScore,
		Distance:     s.DistanceScore,
	}
}
