package models

import (
	"fmt"
	"time"
)

// GeoPoint represents a GeoJSON Point.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`               // Always "Point"
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
}

// Coordinates is a plain latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that the pair lies on the globe.
func (c Coordinates) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %.6f out of range", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %.6f out of range", c.Longitude)
	}
	return nil
}

// GeoPoint converts the pair to GeoJSON order.
func (c Coordinates) GeoPoint() GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{c.Longitude, c.Latitude}}
}

// ToCoordinates reads a GeoJSON point. ok is false when the point is malformed.
func (g GeoPoint) ToCoordinates() (Coordinates, bool) {
	if len(g.Coordinates) < 2 {
		return Coordinates{}, false
	}
	return Coordinates{Latitude: g.Coordinates[1], Longitude: g.Coordinates[0]}, true
}

// Contractor statuses.
const (
	ContractorStatusActive   = "active"
	ContractorStatusInactive = "inactive"
)

// Contractor is a flooring installer that can be recommended for a job.
type Contractor struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email,omitempty"`
	PhoneNumber  string    `bson:"phoneNumber" json:"phoneNumber,omitempty"`
	Status       string    `bson:"status" json:"status,omitempty"`
	Rating       float64   `bson:"rating" json:"rating"` // 0-5
	ServiceTypes []string  `bson:"serviceTypes" json:"serviceTypes,omitempty"`
	Address      string    `bson:"address" json:"address,omitempty"`
	LocationGeo  GeoPoint  `bson:"locationGeo" json:"locationGeo"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// ContractorSummary is the public view returned with recommendations.
type ContractorSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	PhoneNumber string  `json:"phoneNumber,omitempty"`
	Rating      float64 `json:"rating"`
	Address     string  `json:"address,omitempty"`
}

// Summary strips a contractor down to its public fields.
func (c Contractor) Summary() ContractorSummary {
	return ContractorSummary{
		ID:          c.ID,
		Name:        c.Name,
		PhoneNumber: c.PhoneNumber,
		Rating:      c.Rating,
		Address:     c.Address,
	}
}
