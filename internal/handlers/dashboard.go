package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-server/internal/middleware"
	"hospital-server/internal/models"
	"hospital-server/internal/service"
	"hospital-server/internal/utils"
)

// DashboardHandler serves the admin and doctor dashboard summaries.
type DashboardHandler struct {
	DB *gorm.DB
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

// AdminDashboard returns system-wide counts and the most recent appointments.
func (h *DashboardHandler) AdminDashboard(c *gin.Context) {
	var totalDoctors, totalPatients, totalAppointments, bookedAppointments int64

	if err := h.DB.Model(&models.Doctor{}).
		Joins("JOIN users ON users.id = doctors.user_id").
		Where("users.is_active = ?", true).
		Count(&totalDoctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to count doctors: "+err.Error())
		return
	}
	if err := h.DB.Model(&models.Patient{}).
		Joins("JOIN users ON users.id = patients.user_id").
		Where("users.is_active = ?", true).
		Count(&totalPatients).Error; err != nil {
		utils.InternalServerError(c, "Failed to count patients: "+err.Error())
		return
	}
	if err := h.DB.Model(&models.Appointment{}).Count(&totalAppointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to count appointments: "+err.Error())
		return
	}
	if err := h.DB.Model(&models.Appointment{}).
		Where("status = ?", models.StatusBooked).
		Count(&bookedAppointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to count booked appointments: "+err.Error())
		return
	}

	var recent []models.Appointment
	if err := h.DB.Order("created_at desc").Limit(5).Find(&recent).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch recent appointments: "+err.Error())
		return
	}

	utils.Success(c, "Dashboard fetched successfully", gin.H{
		"totalDoctors":       totalDoctors,
		"totalPatients":      totalPatients,
		"totalAppointments":  totalAppointments,
		"bookedAppointments": bookedAppointments,
		"recentAppointments": recent,
	})
}

// DoctorDashboard returns the calling doctor's appointments for today and
// the next seven days, plus a distinct patient count.
func (h *DashboardHandler) DoctorDashboard(c *gin.Context) {
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

	today := time.Now().Format(service.DateLayout)
	weekEnd := time.Now().AddDate(0, 0, service.HorizonDays-1).Format(service.DateLayout)

	var upcoming []models.Appointment
	if err := h.DB.Where(
		"doctor_id = ? AND appointment_date >= ? AND appointment_date <= ? AND status = ?",
		doctor.ID, today, weekEnd, models.StatusBooked,
	).Order("appointment_date asc, appointment_time asc").Find(&upcoming).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch upcoming appointments: "+err.Error())
		return
	}

	var todays []models.Appointment
	if err := h.DB.Where("doctor_id = ? AND appointment_date = ?", doctor.ID, today).
		Order("appointment_time asc").Find(&todays).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch today's appointments: "+err.Error())
		return
	}

	var totalPatients int64
	if err := h.DB.Model(&models.Appointment{}).
		Where("doctor_id = ?", doctor.ID).
		Distinct("patient_id").
		Count(&totalPatients).Error; err != nil {
		utils.InternalServerError(c, "Failed to count patients: "+err.Error())
		return
	}

	utils.Success(c, "Dashboard fetched successfully", gin.H{
		"upcomingAppointments": upcoming,
		"todayAppointments":    todays,
		"totalPatients":        totalPatients,
	})
}
