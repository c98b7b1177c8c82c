package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-server/internal/models"
	"hospital-server/internal/utils"
)

// DoctorHandler handles doctor management (admin) and doctor discovery
// (patients browsing who they can book with).
type DoctorHandler struct {
	DB *gorm.DB
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB) *DoctorHandler {
	return &DoctorHandler{DB: db}
}

// CreateDoctorRequest represents the request body for creating a doctor account.
type CreateDoctorRequest struct {
	Username        string  `json:"username" binding:"required,min=3"`
	Email           string  `json:"email" binding:"required,email"`
	Password        string  `json:"password" binding:"required,min=8"`
	FullName        string  `json:"fullName" binding:"required"`
	PhoneNumber     string  `json:"phoneNumber"`
	DepartmentID    string  `json:"departmentId" binding:"required,uuid"`
	Specialization  string  `json:"specialization"`
	Qualification   string  `json:"qualification"`
	ExperienceYears int     `json:"experienceYears"`
	ConsultationFee float64 `json:"consultationFee"`
}

// CreateDoctor creates a doctor account plus profile (admin).
func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var req CreateDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var department models.Department
	if err := h.DB.First(&department, "id = ?", req.DepartmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Department not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	user := models.User{
		Username:    req.Username,
		Email:       req.Email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Role:        models.RoleDoctor,
		IsActive:    true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	var doctor models.Doctor
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		doctor = models.Doctor{
			UserID:          user.ID,
			DepartmentID:    req.DepartmentID,
			Specialization:  req.Specialization,
			Qualification:   req.Qualification,
			ExperienceYears: req.ExperienceYears,
			ConsultationFee: req.ConsultationFee,
		}
		return tx.Create(&doctor).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.BadRequest(c, "Username or email already exists")
			return
		}
		utils.InternalServerError(c, "Failed to create doctor: "+err.Error())
		return
	}

	doctor.User = user
	doctor.Department = department
	utils.Created(c, "Doctor created successfully", doctor)
}

// GetDoctors lists active doctors, optionally filtered by department or
// specialization. Used by patients to find someone to book with.
func (h *DoctorHandler) GetDoctors(c *gin.Context) {
	query := h.DB.Preload("User").Preload("Department").
		Joins("JOIN users ON users.id = doctors.user_id").
		Where("users.is_active = ?", true)

	if departmentID := c.Query("department"); departmentID != "" {
		query = query.Where("doctors.department_id = ?", departmentID)
	}
	if specialization := c.Query("specialization"); specialization != "" {
		query = query.Where("doctors.specialization LIKE ?", "%"+specialization+"%")
	}

	var doctors []models.Doctor
	if err := query.Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	utils.Success(c, "Doctors fetched successfully", doctors)
}

// UpdateDoctorRequest represents the request body for updating a doctor (admin).
type UpdateDoctorRequest struct {
	FullName        string   `json:"fullName"`
	Email           string   `json:"email"`
	PhoneNumber     string   `json:"phoneNumber"`
	Password        string   `json:"password"`
	DepartmentID    string   `json:"departmentId"`
	Specialization  string   `json:"specialization"`
	Qualification   string   `json:"qualification"`
	ExperienceYears *int     `json:"experienceYears"`
	ConsultationFee *float64 `json:"consultationFee"`
}

// UpdateDoctor updates a doctor account and profile (admin).
func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	doctorID := c.Param("id")

	var req UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var doctor models.Doctor
	if err := h.DB.Preload("User").First(&doctor, "id = ?", doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.FullName != "" {
		doctor.User.FullName = req.FullName
	}
	if req.Email != "" {
		doctor.User.Email = req.Email
	}
	if req.PhoneNumber != "" {
		doctor.User.PhoneNumber = req.PhoneNumber
	}
	if req.Password != "" {
		if err := doctor.User.SetPassword(req.Password); err != nil {
			utils.InternalServerError(c, "Failed to hash password: "+err.Error())
			return
		}
	}
	if req.DepartmentID != "" {
		doctor.DepartmentID = req.DepartmentID
	}
	if req.Specialization != "" {
		doctor.Specialization = req.Specialization
	}
	if req.Qualification != "" {
		doctor.Qualification = req.Qualification
	}
	if req.ExperienceYears != nil {
		doctor.ExperienceYears = *req.ExperienceYears
	}
	if req.ConsultationFee != nil {
		doctor.ConsultationFee = *req.ConsultationFee
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&doctor.User).Error; err != nil {
			return err
		}
		return tx.Save(&doctor).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to update doctor: "+err.Error())
		return
	}

	utils.Success(c, "Doctor updated successfully", doctor)
}

// DeactivateDoctor soft-deletes a doctor by deactivating the backing user
// account (admin). Appointments and history stay in place.
func (h *DoctorHandler) DeactivateDoctor(c *gin.Context) {
	doctorID := c.Param("id")

	var doctor models.Doctor
	if err := h.DB.Preload("User").First(&doctor, "id = ?", doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	doctor.User.IsActive = false
	if err := h.DB.Save(&doctor.User).Error; err != nil {
		utils.InternalServerError(c, "Failed to deactivate doctor: "+err.Error())
		return
	}

	utils.Success(c, "Doctor deactivated successfully", nil)
}
