package models

// Doctor is the professional profile attached to a user with RoleDoctor.
type Doctor struct {
	BaseModel
	UserID          string  `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	DepartmentID    string  `gorm:"size:36;index;not null" json:"departmentId"`
	Specialization  string  `gorm:"size:80" json:"specialization"`
	Qualification   string  `gorm:"size:100" json:"qualification"`
	ExperienceYears int     `json:"experienceYears"`
	ConsultationFee float64 `gorm:"default:0" json:"consultationFee"`

	// Relations
	User           User           `gorm:"foreignKey:UserID" json:"user"`
	Department     Department     `gorm:"foreignKey:DepartmentID" json:"department"`
	Availabilities []Availability `gorm:"foreignKey:DoctorID" json:"-"`
	Appointments   []Appointment  `gorm:"foreignKey:DoctorID" json:"-"`
}
