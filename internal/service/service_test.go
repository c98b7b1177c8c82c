package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hospital-server/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	return db
}

func createDepartment(t *testing.T, db *gorm.DB, name string) models.Department {
	t.Helper()
	department := models.Department{Name: name, Description: "Heart"}
	require.NoError(t, db.Create(&department).Error)
	return department
}

func createDoctor(t *testing.T, db *gorm.DB, username string) models.Doctor {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@hospital.test",
		FullName: "Dr " + username,
		Role:     models.RoleDoctor,
		IsActive: true,
	}
	require.NoError(t, user.SetPassword("secret-pass"))
	require.NoError(t, db.Create(&user).Error)

	doctor := models.Doctor{
		UserID:         user.ID,
		DepartmentID:   createDepartment(t, db, "Cardiology-"+username).ID,
		Specialization: "Cardiology",
	}
	require.NoError(t, db.Create(&doctor).Error)
	doctor.User = user
	return doctor
}

func createPatient(t *testing.T, db *gorm.DB, username string) models.Patient {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@patients.test",
		FullName: username,
		Role:     models.RolePatient,
		IsActive: true,
	}
	require.NoError(t, user.SetPassword("secret-pass"))
	require.NoError(t, db.Create(&user).Error)

	patient := models.Patient{UserID: user.ID}
	require.NoError(t, db.Create(&patient).Error)
	patient.User = user
	return patient
}

func deactivateUser(t *testing.T, db *gorm.DB, userID string) {
	t.Helper()
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", userID).Update("is_active", false).Error)
}

// fixedNow pins the availability horizon for deterministic tests.
func fixedNow() time.Time {
	return time.Date(2024, 1, 10, 8, 0, 0, 0, time.Local)
}
