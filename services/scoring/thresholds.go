package scoring

import (
	"math"

	"floormatch/models"
)

// Business thresholds for the component scores.
const (
	nearRadiusMiles    = 10.0
	decayRadiusMiles   = 30.0
	serviceRadiusMiles = 50.0
	decayFloorScore    = 0.3
	outerRingScore     = 0.2

	proximityWindowMinutes = 120
	exactSlotScore         = 1.0
	nearSlotScore          = 0.7
	sameDaySlotScore       = 0.4

	maxRating = 5.0
)

// DistanceScore maps road miles to [0,1]. Zero means out of range.
func DistanceScore(miles float64) float64 {
	switch {
	case math.IsNaN(miles):
		return 0
	case miles < nearRadiusMiles:
		return 1.0
	case miles <= decayRadiusMiles:
		return 1.0 - (miles-nearRadiusMiles)/(decayRadiusMiles-nearRadiusMiles)*(1.0-decayFloorScore)
	case miles <= serviceRadiusMiles:
		return outerRingScore
	default:
		return 0
	}
}

// RatingScore maps a 0-5 star rating to [0,1].
func RatingScore(rating float64) float64 {
	if math.IsNaN(rating) || rating <= 0 {
		return 0
	}
	if rating >= maxRating {
		return 1
	}
	return rating / maxRating
}

// AvailabilityScore rates free slots against the requested start time and
// returns the slot that earned the score. Zero means no free slot that day.
func AvailabilityScore(free []models.TimeSlot, targetTime int) (float64, *models.TimeSlot) {
	if len(free) == 0 {
		return 0, nil
	}
	for i := range free {
		if free[i].Contains(targetTime) {
			slot := free[i]
			return exactSlotScore, &slot
		}
	}

	closest := free[0]
	bestGap := absInt(closest.Start - targetTime)
	for _, s := range free[1:] {
		if gap := absInt(s.Start - targetTime); gap < bestGap {
			closest, bestGap = s, gap
		}
	}
	if bestGap <= proximityWindowMinutes {
		return nearSlotScore, &closest
	}
	return sameDaySlotScore, &closest
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
