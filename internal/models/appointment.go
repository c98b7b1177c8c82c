package models

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "Booked"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
)

// Appointment represents a scheduled visit in a single (doctor, date, time) slot.
//
// BookedFlag is 1 while the appointment is Booked and NULL once it is
// completed or cancelled. The unique index over (doctor, date, time,
// booked_flag) therefore admits at most one Booked row per slot while any
// number of cancelled/completed rows may accumulate on the same slot, since
// NULL values never collide inside a unique index. This closes the
// check-then-insert race without cross-request locking.
type Appointment struct {
	BaseModel
	PatientID       string            `gorm:"size:36;index;not null" json:"patientId"`
	DoctorID        string            `gorm:"size:36;index;not null;uniqueIndex:idx_booked_slot" json:"doctorId"`
	AppointmentDate string            `gorm:"size:10;not null;uniqueIndex:idx_booked_slot" json:"appointmentDate"`
	AppointmentTime string            `gorm:"size:5;not null;uniqueIndex:idx_booked_slot" json:"appointmentTime"`
	BookedFlag      *uint8            `gorm:"uniqueIndex:idx_booked_slot" json:"-"`
	Status          AppointmentStatus `gorm:"size:20;default:'Booked'" json:"status"`
	Reason          string            `gorm:"type:text" json:"reason"`

	// Relations
	Patient   Patient    `gorm:"foreignKey:PatientID" json:"-"`
	Doctor    Doctor     `gorm:"foreignKey:DoctorID" json:"-"`
	Treatment *Treatment `gorm:"foreignKey:AppointmentID" json:"treatment,omitempty"`
}
