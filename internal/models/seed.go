package models

import (
	"errors"

	"gorm.io/gorm"
)

// Seed creates the default admin account and the standard departments if the
// database is empty. Safe to run on every startup.
func Seed(db *gorm.DB) error {
	var admin User
	err := db.Where("username = ?", "admin").First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		admin = User{
			Username:    "admin",
			Email:       "admin@hospital.com",
			FullName:    "Admin",
			PhoneNumber: "1234567890",
			Role:        RoleAdmin,
			IsActive:    true,
		}
		if err := admin.SetPassword("admin123"); err != nil {
			return err
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	var count int64
	if err := db.Model(&Department{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		departments := []Department{
			{Name: "Cardiology", Description: "Heart"},
			{Name: "Neurology", Description: "Brain"},
			{Name: "Orthopedics", Description: "Bones"},
			{Name: "Pediatrics", Description: "Children"},
			{Name: "Dermatology", Description: "Skin"},
			{Name: "General Medicine", Description: "General"},
		}
		if err := db.Create(&departments).Error; err != nil {
			return err
		}
	}

	return nil
}
