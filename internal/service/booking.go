package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hospital-server/internal/models"
)

// BookingService validates and commits appointment requests against
// existing bookings.
//
// Booking deliberately does not check the requested slot against the
// doctor's published availability windows; the booking UI only offers
// slots inside open windows, and the write path constrains slots solely
// through the one-Booked-row-per-slot rule.
type BookingService struct {
	DB *gorm.DB
}

// NewBookingService creates a new BookingService.
func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// ListFilter selects appointments for one patient or one doctor, optionally
// narrowed by status.
type ListFilter struct {
	PatientID string
	DoctorID  string
	Status    models.AppointmentStatus
}

// Book creates a Booked appointment for (doctor, date, time) on behalf of
// the patient. Returns ErrConflict when the slot already holds a Booked
// appointment; cancelled and completed rows never block reuse.
//
// The pre-insert conflict check and the insert run in one transaction, and
// the unique index on (doctor, date, time, booked_flag) backstops the check
// under concurrent identical requests: the loser's duplicate-key error is
// reported as the same ErrConflict.
func (s *BookingService) Book(patientID, doctorID, date, timeOfDay, reason string) (*models.Appointment, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrValidation, date)
	}
	if _, err := time.Parse(TimeLayout, timeOfDay); err != nil {
		return nil, fmt.Errorf("%w: invalid time %q", ErrValidation, timeOfDay)
	}

	var patient models.Patient
	if err := s.DB.Preload("User").First(&patient, "id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: patient %s", ErrNotFound, patientID)
		}
		return nil, err
	}
	if !patient.User.IsActive {
		return nil, fmt.Errorf("%w: patient %s is inactive", ErrNotFound, patientID)
	}

	var doctor models.Doctor
	if err := s.DB.Preload("User").First(&doctor, "id = ?", doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: doctor %s", ErrNotFound, doctorID)
		}
		return nil, err
	}
	if !doctor.User.IsActive {
		return nil, fmt.Errorf("%w: doctor %s is inactive", ErrNotFound, doctorID)
	}

	booked := uint8(1)
	appointment := models.Appointment{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: timeOfDay,
		Status:          models.StatusBooked,
		BookedFlag:      &booked,
		Reason:          reason,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Appointment
		err := tx.Where(
			"doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND status = ?",
			doctorID, date, timeOfDay, models.StatusBooked,
		).First(&existing).Error
		if err == nil {
			return fmt.Errorf("%w: %s %s with doctor %s", ErrConflict, date, timeOfDay, doctorID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(&appointment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: %s %s with doctor %s", ErrConflict, date, timeOfDay, doctorID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &appointment, nil
}

// List returns appointments matching the filter, newest date first.
func (s *BookingService) List(filter ListFilter) ([]models.Appointment, error) {
	query := s.DB.Preload("Treatment").Order("appointment_date desc, appointment_time desc")
	if filter.PatientID != "" {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.DoctorID != "" {
		query = query.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}
