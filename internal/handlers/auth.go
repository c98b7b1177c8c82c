package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-server/internal/config"
	"hospital-server/internal/middleware"
	"hospital-server/internal/models"
	"hospital-server/internal/utils"
)

// AuthHandler handles registration, login and profile requests.
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg}
}

// RegisterRequest represents the request body for patient self-registration.
type RegisterRequest struct {
	Username         string `json:"username" binding:"required,min=3"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=8"`
	FullName         string `json:"fullName" binding:"required"`
	PhoneNumber      string `json:"phoneNumber"`
	DateOfBirth      string `json:"dateOfBirth"` // YYYY-MM-DD
	Gender           string `json:"gender"`
	BloodGroup       string `json:"bloodGroup"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergencyContact"`
}

// Register handles patient self-registration. Doctors are created by admins.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existing models.User
	if err := h.DB.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error; err == nil {
		utils.BadRequest(c, "Username or email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			utils.BadRequest(c, "Invalid date of birth, expected YYYY-MM-DD")
			return
		}
		dob = &parsed
	}

	user := models.User{
		Username:    req.Username,
		Email:       req.Email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Role:        models.RolePatient,
		IsActive:    true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		patient := models.Patient{
			UserID:           user.ID,
			DateOfBirth:      dob,
			Gender:           req.Gender,
			BloodGroup:       req.BloodGroup,
			Address:          req.Address,
			EmergencyContact: req.EmergencyContact,
		}
		return tx.Create(&patient).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to register: "+err.Error())
		return
	}

	utils.Created(c, "Registration successful", user.Sanitize())
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a user and returns a JWT access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		utils.Unauthorized(c, "Invalid credentials")
		return
	}
	if !user.CheckPassword(req.Password) || !user.IsActive {
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(&user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}

	utils.Success(c, "Login successful", gin.H{
		"accessToken": token,
		"user":        user.Sanitize(),
	})
}

// GetProfile returns the authenticated user together with the doctor or
// patient profile attached to the account.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	payload := gin.H{"user": user.Sanitize()}
	switch user.Role {
	case models.RoleDoctor:
		if doctor, err := doctorForUser(h.DB, user.ID); err == nil {
			payload["doctor"] = doctor
		}
	case models.RolePatient:
		if patient, err := patientForUser(h.DB, user.ID); err == nil {
			payload["patient"] = patient
		}
	}

	utils.Success(c, "Profile fetched successfully", payload)
}

// UpdateProfileRequest represents the request body for updating one's profile.
type UpdateProfileRequest struct {
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	PhoneNumber      string `json:"phoneNumber"`
	Password         string `json:"password"`
	DateOfBirth      string `json:"dateOfBirth"`
	Gender           string `json:"gender"`
	BloodGroup       string `json:"bloodGroup"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergencyContact"`
}

// UpdateProfile updates the authenticated user's own account, and the
// patient profile fields when the caller is a patient.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			utils.InternalServerError(c, "Failed to hash password: "+err.Error())
			return
		}
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		if user.Role != models.RolePatient {
			return nil
		}
		patient, err := patientForUser(tx, user.ID)
		if err != nil {
			return err
		}
		if req.DateOfBirth != "" {
			parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
			if err != nil {
				return err
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
		return tx.Save(patient).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to update profile: "+err.Error())
		return
	}

	utils.Success(c, "Profile updated successfully", user.Sanitize())
}
