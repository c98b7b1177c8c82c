package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hospital-server/internal/models"
)

// LifecycleService moves appointments between Booked, Completed and
// Cancelled, and maintains the Treatment row attached at completion.
type LifecycleService struct {
	DB *gorm.DB
}

// NewLifecycleService creates a new LifecycleService.
func NewLifecycleService(db *gorm.DB) *LifecycleService {
	return &LifecycleService{DB: db}
}

// TreatmentInput carries the clinical outcome recorded when a doctor
// completes an appointment.
type TreatmentInput struct {
	Diagnosis    string `json:"diagnosis" binding:"required"`
	Prescription string `json:"prescription"`
	Notes        string `json:"notes"`
	FollowUpDate string `json:"followUpDate"`
}

// Complete marks the appointment Completed and upserts its Treatment.
// Only the owning doctor may complete; repeated calls overwrite the
// treatment fields, so the latest payload wins.
func (s *LifecycleService) Complete(appointmentID, doctorID string, input TreatmentInput) (*models.Appointment, error) {
	if input.FollowUpDate != "" {
		if _, err := time.Parse(DateLayout, input.FollowUpDate); err != nil {
			return nil, fmt.Errorf("%w: invalid follow-up date %q", ErrValidation, input.FollowUpDate)
		}
	}

	var appointment models.Appointment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&appointment, "id = ?", appointmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: appointment %s", ErrNotFound, appointmentID)
			}
			return err
		}
		if appointment.DoctorID != doctorID {
			return fmt.Errorf("%w: appointment belongs to another doctor", ErrForbidden)
		}

		appointment.Status = models.StatusCompleted
		appointment.BookedFlag = nil // frees the slot in the unique index
		if err := tx.Save(&appointment).Error; err != nil {
			return err
		}

		var treatment models.Treatment
		err := tx.Where("appointment_id = ?", appointmentID).First(&treatment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			treatment = models.Treatment{AppointmentID: appointmentID}
		} else if err != nil {
			return err
		}

		treatment.Diagnosis = input.Diagnosis
		treatment.Prescription = input.Prescription
		treatment.Notes = input.Notes
		treatment.FollowUpDate = input.FollowUpDate
		if err := tx.Save(&treatment).Error; err != nil {
			return err
		}
		appointment.Treatment = &treatment
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &appointment, nil
}

// Cancel transitions an appointment to Cancelled on behalf of its patient
// or its doctor.
//
// The two roles behave differently on purpose: a patient cancel only acts
// on a Booked appointment and silently no-ops otherwise, while a doctor
// cancel overwrites whatever state the appointment is in. Both clear the
// booked flag so the slot can be rebooked.
func (s *LifecycleService) Cancel(appointmentID, actorID string, role models.Role) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&appointment, "id = ?", appointmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: appointment %s", ErrNotFound, appointmentID)
			}
			return err
		}

		switch role {
		case models.RolePatient:
			if appointment.PatientID != actorID {
				return fmt.Errorf("%w: appointment belongs to another patient", ErrForbidden)
			}
			if appointment.Status != models.StatusBooked {
				return nil // terminal states stay as they are
			}
		case models.RoleDoctor:
			if appointment.DoctorID != actorID {
				return fmt.Errorf("%w: appointment belongs to another doctor", ErrForbidden)
			}
		default:
			return fmt.Errorf("%w: role %s cannot cancel appointments", ErrForbidden, role)
		}

		appointment.Status = models.StatusCancelled
		appointment.BookedFlag = nil
		return tx.Save(&appointment).Error
	})
	if err != nil {
		return nil, err
	}

	return &appointment, nil
}
