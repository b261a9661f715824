package distance

import (
	"math"

	"floormatch/models"
)

const (
	earthRadiusMiles = 3958.8
	metersPerMile    = 1609.344
	// fallbackSpeedMPH is the flat driving speed assumed when no route is available.
	fallbackSpeedMPH = 40.0
)

// HaversineMiles returns the great-circle distance between two points in miles.
func HaversineMiles(origin, destination models.Coordinates) float64 {
	dLat := (destination.Latitude - origin.Latitude) * (math.Pi / 180)
	dLon := (destination.Longitude - origin.Longitude) * (math.Pi / 180)
	lat1Rad := origin.Latitude * (math.Pi / 180)
	lat2Rad := destination.Latitude * (math.Pi / 180)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

// FallbackResult estimates distance and drive time without the routing API.
func FallbackResult(origin, destination models.Coordinates, reason string) models.DistanceResult {
	miles := HaversineMiles(origin, destination)
	return models.DistanceResult{
		DistanceMiles:   miles,
		DurationMinutes: (miles / fallbackSpeedMPH) * 60,
		Source:          models.DistanceSourceFallback,
		Message:         reason,
	}
}
