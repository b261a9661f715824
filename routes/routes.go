package routes

import (
	"time"

	"floormatch/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRecommendationRoutes registers the ranking endpoint.
func RegisterRecommendationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/recommendations", hb.RecommendHandler)
	}
}

// RegisterContractorRoutes registers contractor lookups.
func RegisterContractorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/contractors")
	{
		api.GET("/:id/availability", hb.ContractorAvailabilityHandler)
	}
}

// RegisterDistanceRoutes registers the distance lookup used by operators.
func RegisterDistanceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/distance", hb.DistanceHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterRecommendationRoutes(r, hb)
	RegisterContractorRoutes(r, hb)
	RegisterDistanceRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
