package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-server/internal/middleware"
	"hospital-server/internal/service"
	"hospital-server/internal/utils"
)

// AvailabilityHandler handles doctor availability requests.
type AvailabilityHandler struct {
	DB      *gorm.DB
	Service *service.AvailabilityService
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(db *gorm.DB) *AvailabilityHandler {
	return &AvailabilityHandler{DB: db, Service: service.NewAvailabilityService(db)}
}

// SetAvailabilityRequest represents the request body for publishing windows.
// An empty set is legal and clears the week.
type SetAvailabilityRequest struct {
	Windows []service.WindowInput `json:"windows"`
}

// SetAvailability replaces the calling doctor's windows inside the rolling
// 7-day horizon with the submitted set. Malformed windows are skipped.
func (h *AvailabilityHandler) SetAvailability(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req SetAvailabilityRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctor, err := doctorForUser(h.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	stored, err := h.Service.SetAvailability(doctor.ID, req.Windows)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Availability updated successfully", gin.H{"stored": stored})
}

// GetDoctorAvailability returns a doctor's open windows in a date range.
// Defaults to the rolling 7-day horizon when no range is given.
func (h *AvailabilityHandler) GetDoctorAvailability(c *gin.Context) {
	doctorID := c.Param("id")

	from := c.Query("from")
	to := c.Query("to")
	horizonFrom, horizonTo := h.Service.Horizon()
	if from == "" {
		from = horizonFrom
	}
	if to == "" {
		to = horizonTo
	}

	windows, err := h.Service.GetAvailability(doctorID, from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Availability fetched successfully", windows)
}
