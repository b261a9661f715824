package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Recommendation endpoints
	RecommendHandler gin.HandlerFunc

	// Contractor endpoints
	ContractorAvailabilityHandler gin.HandlerFunc

	// Distance endpoints
	DistanceHandler gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}
