package models

// Availability is a doctor-declared open window on a given date.
// Dates and times are stored as naive local strings ("2006-01-02" / "15:04")
// so that ordering and range filters work lexicographically; no time-zone
// normalization is performed anywhere.
type Availability struct {
	BaseModel
	DoctorID  string `gorm:"size:36;index;not null" json:"doctorId"`
	Date      string `gorm:"size:10;index;not null" json:"date"`
	StartTime string `gorm:"size:5;not null" json:"startTime"`
	EndTime   string `gorm:"size:5;not null" json:"endTime"`
	// No column default here: gorm drops zero-value fields that carry a
	// default tag on insert, which would turn a closed window into an open
	// one. Writers set the flag explicitly.
	IsAvailable bool `json:"isAvailable"`

	// Relations
	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}
