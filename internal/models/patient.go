package models

import "time"

// Patient is the medical profile attached to a user with RolePatient.
type Patient struct {
	BaseModel
	UserID           string     `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	DateOfBirth      *time.Time `json:"dateOfBirth,omitempty"`
	Gender           string     `gorm:"size:40" json:"gender,omitempty"`
	BloodGroup       string     `gorm:"size:6" json:"bloodGroup,omitempty"`
	Address          string     `gorm:"type:text" json:"address,omitempty"`
	EmergencyContact string     `gorm:"size:20" json:"emergencyContact,omitempty"`

	// Relations
	User         User          `gorm:"foreignKey:UserID" json:"user"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
}
