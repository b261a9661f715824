package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	contractorRepo "floormatch/database/repository/contractor"
	"floormatch/models"
	"floormatch/services/availability"
	"floormatch/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultAvailabilityHours = 1.0

// AvailabilityHandler reports a contractor's free slots on a date.
type AvailabilityHandler struct {
	Contractors contractorRepo.ContractorRepository
	Schedules   availability.ScheduleSource
}

func NewAvailabilityHandler(contractors contractorRepo.ContractorRepository, schedules availability.ScheduleSource) *AvailabilityHandler {
	return &AvailabilityHandler{Contractors: contractors, Schedules: schedules}
}

// GetAvailability handles GET /api/contractors/:id/availability?date=YYYY-MM-DD&duration=H.
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	logger := getLogger(c)
	contractorID := c.Param("id")

	rawDate := c.Query("date")
	date, err := time.Parse(utils.DateLayout, rawDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid date", "date must be YYYY-MM-DD")
		return
	}

	hours := defaultAvailabilityHours
	if raw := c.Query("duration"); raw != "" {
		hours, err = strconv.ParseFloat(raw, 64)
		if err != nil || hours <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid duration", "duration must be a positive number of hours")
			return
		}
	}

	ctx := c.Request.Context()
	if _, err := h.Contractors.GetByID(ctx, contractorID); err != nil {
		if errors.Is(err, contractorRepo.ErrContractorNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Contractor not found", contractorID)
			return
		}
		logger.Error("Failed to load contractor", zap.String("contractorID", contractorID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load contractor", "Please try again later")
		return
	}

	free, err := availability.ForDate(ctx, h.Schedules, contractorID, date, hours)
	if err != nil {
		logger.Error("Failed to compute availability", zap.String("contractorID", contractorID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to compute availability", "Please try again later")
		return
	}

	slots := make([]models.SlotView, 0, len(free))
	for _, s := range free {
		slots = append(slots, models.NewSlotView(s))
	}
	c.JSON(http.StatusOK, models.AvailabilityResponse{
		ContractorID:  contractorID,
		Date:          rawDate,
		DurationHours: hours,
		Slots:         slots,
	})
}
