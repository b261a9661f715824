package models

// DistanceSource tags where a distance figure came from.
type DistanceSource string

const (
	DistanceSourceAPI      DistanceSource = "api"
	DistanceSourceCache    DistanceSource = "cache"
	DistanceSourceFallback DistanceSource = "fallback"
)

// DistanceResult is the road distance and drive time between two points.
type DistanceResult struct {
	DistanceMiles   float64        `json:"distanceMiles"`
	DurationMinutes float64        `json:"durationMinutes"`
	Source          DistanceSource `json:"source"`
	Message         string         `json:"message,omitempty"`
}

// Authoritative reports whether the figure came from the routing API, directly or via cache.
func (r DistanceResult) Authoritative() bool {
	return r.Source == DistanceSourceAPI || r.Source == DistanceSourceCache
}

// DistanceRefreshPayload asks the background worker to retry a pair that was
// answered with a fallback distance.
type DistanceRefreshPayload struct {
	Origin      Coordinates `json:"origin"`
	Destination Coordinates `json:"destination"`
}
