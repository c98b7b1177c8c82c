package models

// Department groups doctors by medical discipline.
type Department struct {
	BaseModel
	Name        string `gorm:"uniqueIndex;size:80;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	// Relations
	Doctors []Doctor `gorm:"foreignKey:DepartmentID" json:"-"`
}
