package handlers

import (
	"errors"
	"net/http"

	"floormatch/models"
	"floormatch/services/recommendation"
	"floormatch/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecommendationHandler serves ranked contractor shortlists.
type RecommendationHandler struct {
	Service recommendation.RecommendationService
}

func NewRecommendationHandler(svc recommendation.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{Service: svc}
}

// Recommend handles POST /api/recommendations.
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	logger := getLogger(c)

	var req models.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	resp, err := h.Service.Recommend(c.Request.Context(), req)
	if err != nil {
		var recErr *recommendation.RecommendationError
		if errors.As(err, &recErr) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid recommendation request", recErr.Message)
			return
		}
		logger.Error("Failed to generate recommendation", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to generate recommendation", "Please try again later")
		return
	}

	c.JSON(http.StatusOK, resp)
}
