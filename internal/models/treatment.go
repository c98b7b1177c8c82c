package models

// Treatment holds the clinical outcome of a completed appointment.
// Exactly one row per appointment; completing the same appointment again
// overwrites the existing row.
type Treatment struct {
	BaseModel
	AppointmentID string `gorm:"size:36;uniqueIndex;not null" json:"appointmentId"`
	Diagnosis     string `gorm:"type:text;not null" json:"diagnosis"`
	Prescription  string `gorm:"type:text" json:"prescription"`
	Notes         string `gorm:"type:text" json:"notes"`
	FollowUpDate  string `gorm:"size:10" json:"followUpDate,omitempty"`

	// Relations
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
}
