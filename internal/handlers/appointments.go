package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-server/internal/middleware"
	"hospital-server/internal/models"
	"hospital-server/internal/service"
	"hospital-server/internal/utils"
)

// AppointmentHandler handles booking, listing and lifecycle requests.
// All slot and status rules live in internal/service; this layer only
// resolves the actor's profile and maps errors.
type AppointmentHandler struct {
	DB        *gorm.DB
	Booking   *service.BookingService
	Lifecycle *service.LifecycleService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{
		DB:        db,
		Booking:   service.NewBookingService(db),
		Lifecycle: service.NewLifecycleService(db),
	}
}

// BookAppointmentRequest represents the request body for booking a slot.
type BookAppointmentRequest struct {
	DoctorID        string `json:"doctorId" binding:"required,uuid"`
	AppointmentDate string `json:"appointmentDate" binding:"required"` // YYYY-MM-DD
	AppointmentTime string `json:"appointmentTime" binding:"required"` // HH:MM
	Reason          string `json:"reason"`
}

// BookAppointment books a slot for the calling patient.
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req BookAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient, err := patientForUser(h.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	appointment, err := h.Booking.Book(patient.ID, req.DoctorID, req.AppointmentDate, req.AppointmentTime, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Appointment booked successfully", appointment)
}

// GetAppointments lists appointments for the calling user. Patients see
// their own, doctors see their own, admins see everything. An optional
// ?status= query narrows the result.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	role, _ := middleware.GetUserRoleFromContext(c)

	filter := service.ListFilter{Status: models.AppointmentStatus(c.Query("status"))}

	switch role {
	case models.RolePatient:
		patient, err := patientForUser(h.DB, userID)
		if err != nil {
			utils.NotFound(c, "Patient profile not found")
			return
		}
		filter.PatientID = patient.ID
	case models.RoleDoctor:
		doctor, err := doctorForUser(h.DB, userID)
		if err != nil {
			utils.NotFound(c, "Doctor profile not found")
			return
		}
		filter.DoctorID = doctor.ID
	case models.RoleAdmin:
		// no narrowing
	default:
		utils.Forbidden(c, "User role not permitted to view appointments")
		return
	}

	appointments, err := h.Booking.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// CompleteAppointment marks one of the calling doctor's appointments as
// completed and records the treatment.
func (h *AppointmentHandler) CompleteAppointment(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var input service.TreatmentInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	doctor, err := doctorForUser(h.DB, userID)
	if err != nil {
		utils.NotFound(c, "Doctor profile not found")
		return
	}

	appointment, err := h.Lifecycle.Complete(c.Param("id"), doctor.ID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Appointment completed successfully", appointment)
}

// CancelAppointment cancels an appointment on behalf of the calling patient
// or doctor. Patients can only cancel while Booked; a doctor cancel always
// applies.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	role, _ := middleware.GetUserRoleFromContext(c)

	var actorID string
	switch role {
	case models.RolePatient:
		patient, err := patientForUser(h.DB, userID)
		if err != nil {
			utils.NotFound(c, "Patient profile not found")
			return
		}
		actorID = patient.ID
	case models.RoleDoctor:
		doctor, err := doctorForUser(h.DB, userID)
		if err != nil {
			utils.NotFound(c, "Doctor profile not found")
			return
		}
		actorID = doctor.ID
	default:
		utils.Forbidden(c, "Only patients and doctors can cancel appointments")
		return
	}

	appointment, err := h.Lifecycle.Cancel(c.Param("id"), actorID, role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Appointment cancelled", appointment)
}

// GetTreatmentHistory lists the calling patient's completed appointments
// with their treatments.
func (h *AppointmentHandler) GetTreatmentHistory(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	patient, err := patientForUser(h.DB, userID)
	if err != nil {
		utils.NotFound(c, "Patient profile not found")
		return
	}

	appointments, err := h.Booking.List(service.ListFilter{
		PatientID: patient.ID,
		Status:    models.StatusCompleted,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Treatment history fetched successfully", appointments)
}

// GetPatientHistory lists a patient's completed appointments with the
// calling doctor, treatments included.
func (h *AppointmentHandler) GetPatientHistory(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	doctor, err := doctorForUser(h.DB, userID)
	if err != nil {
		utils.NotFound(c, "Doctor profile not found")
		return
	}

	appointments, err := h.Booking.List(service.ListFilter{
		PatientID: c.Param("id"),
		DoctorID:  doctor.ID,
		Status:    models.StatusCompleted,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Patient history fetched successfully", appointments)
}
