package distance

import (
	"fmt"
	"math"

	"floormatch/models"
)

const keyPrecision = 1e6

// CacheKey identifies an unordered coordinate pair. Both points are rounded to
// six decimal places and ordered by latitude, then longitude, so A->B and B->A
// share a key.
func CacheKey(origin, destination models.Coordinates) string {
	a := roundCoordinates(origin)
	b := roundCoordinates(destination)
	if a.Latitude > b.Latitude || (a.Latitude == b.Latitude && a.Longitude > b.Longitude) {
		a, b = b, a
	}
	return fmt.Sprintf("%.6f,%.6f|%.6f,%.6f", a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

func roundCoordinates(c models.Coordinates) models.Coordinates {
	return models.Coordinates{Latitude: round6(c.Latitude), Longitude: round6(c.Longitude)}
}

func round6(v float64) float64 {
	r := math.Round(v*keyPrecision) / keyPrecision
	if r == 0 {
		// fold -0 into 0 so both print the same
		return 0
	}
	return r
}
