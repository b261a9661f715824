package handlers

import (
	"context"
	"net/http"
	"strconv"

	"floormatch/models"
	"floormatch/utils"

	"github.com/gin-gonic/gin"
)

// DistanceResolver is implemented by *distance.Resolver.
type DistanceResolver interface {
	Resolve(ctx context.Context, origin, destination models.Coordinates) models.DistanceResult
}

// DistanceHandler exposes the resolver for operators.
type DistanceHandler struct {
	Resolver DistanceResolver
}

func NewDistanceHandler(r DistanceResolver) *DistanceHandler {
	return &DistanceHandler{Resolver: r}
}

// GetDistance handles GET /api/distance?originLat=&originLng=&destLat=&destLng=.
func (h *DistanceHandler) GetDistance(c *gin.Context) {
	originLat := c.Query("originLat")
	originLng := c.Query("originLng")
	destLat := c.Query("destLat")
	destLng := c.Query("destLng")

	if originLat == "" || originLng == "" || destLat == "" || destLng == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing required query parameters", "originLat, originLng, destLat, destLng")
		return
	}

	origin, err := parseCoordinates(originLat, originLng)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid origin", err.Error())
		return
	}
	dest, err := parseCoordinates(destLat, destLng)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid destination", err.Error())
		return
	}

	c.JSON(http.StatusOK, h.Resolver.Resolve(c.Request.Context(), origin, dest))
}

func parseCoordinates(rawLat, rawLng string) (models.Coordinates, error) {
	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return models.Coordinates{}, err
	}
	lng, err := strconv.ParseFloat(rawLng, 64)
	if err != nil {
		return models.Coordinates{}, err
	}
	c := models.Coordinates{Latitude: lat, Longitude: lng}
	return c, c.Validate()
}
