package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-server/internal/models"
	"hospital-server/internal/utils"
)

// PatientHandler handles patient management requests (admin).
type PatientHandler struct {
	DB *gorm.DB
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{DB: db}
}

// GetPatients lists active patients (admin).
func (h *PatientHandler) GetPatients(c *gin.Context) {
	var patients []models.Patient
	err := h.DB.Preload("User").
		Joins("JOIN users ON users.id = patients.user_id").
		Where("users.is_active = ?", true).
		Find(&patients).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}
	utils.Success(c, "Patients fetched successfully", patients)
}

// UpdatePatientRequest represents the request body for updating a patient (admin).
type UpdatePatientRequest struct {
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	PhoneNumber      string `json:"phoneNumber"`
	DateOfBirth      string `json:"dateOfBirth"`
	Gender           string `json:"gender"`
	BloodGroup       string `json:"bloodGroup"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergencyContact"`
}

// UpdatePatient updates a patient account and profile (admin).
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	patientID := c.Param("id")

	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var patient models.Patient
	if err := h.DB.Preload("User").First(&patient, "id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.FullName != "" {
		patient.User.FullName = req.FullName
	}
	if req.Email != "" {
		patient.User.Email = req.Email
	}
	if req.PhoneNumber != "" {
		patient.User.PhoneNumber = req.PhoneNumber
	}
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			utils.BadRequest(c, "Invalid date of birth, expected YYYY-MM-DD")
			return
		}
		patient.DateOfBirth = &parsed
	}
	if req.Gender != "" {
		patient.Gender = req.Gender
	}
	if req.BloodGroup != "" {
		patient.BloodGroup = req.BloodGroup
	}
	if req.Address != "" {
		patient.Address = req.Address
	}
	if req.EmergencyContact != "" {
		patient.EmergencyContact = req.EmergencyContact
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&patient.User).Error; err != nil {
			return err
		}
		return tx.Save(&patient).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to update patient: "+err.Error())
		return
	}

	utils.Success(c, "Patient updated successfully", patient)
}

// DeactivatePatient soft-deletes a patient by deactivating the backing user
// account (admin).
func (h *PatientHandler) DeactivatePatient(c *gin.Context) {
	patientID := c.Param("id")

	var patient models.Patient
	if err := h.DB.Preload("User").First(&patient, "id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	patient.User.IsActive = false
	if err := h.DB.Save(&patient.User).Error; err != nil {
		utils.InternalServerError(c, "Failed to deactivate patient: "+err.Error())
		return
	}

	utils.Success(c, "Patient deactivated successfully", nil)
}
