package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hospital-server/internal/models"
)

const (
	// DateLayout is the naive local date format used across the system.
	DateLayout = "2006-01-02"
	// TimeLayout is the naive wall-clock format used across the system.
	TimeLayout = "15:04"

	// HorizonDays is the length of the rolling availability window:
	// [today, today+6].
	HorizonDays = 7
)

// WindowInput is one open interval a doctor declares for a date.
// Deliberately untagged: malformed windows are skipped one by one in
// SetAvailability rather than failing the whole batch at bind time.
type WindowInput struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AvailabilityService manages a doctor's open windows over the rolling
// 7-day horizon.
type AvailabilityService struct {
	DB *gorm.DB
	// Now is swappable so tests can pin the horizon.
	Now func() time.Time
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db, Now: time.Now}
}

// Horizon returns the inclusive [today, today+6] date bounds.
func (s *AvailabilityService) Horizon() (from string, to string) {
	now := s.Now()
	return now.Format(DateLayout), now.AddDate(0, 0, HorizonDays-1).Format(DateLayout)
}

// validWindow reports whether a window parses and lies inside the horizon
// with start < end. Malformed windows are skipped individually, never
// aborting the batch.
func validWindow(w WindowInput, from, to string) bool {
	if _, err := time.Parse(DateLayout, w.Date); err != nil {
		return false
	}
	if w.Date < from || w.Date > to {
		return false
	}
	if _, err := time.Parse(TimeLayout, w.StartTime); err != nil {
		return false
	}
	if _, err := time.Parse(TimeLayout, w.EndTime); err != nil {
		return false
	}
	return w.StartTime < w.EndTime
}

// SetAvailability replaces every window for the doctor inside the current
// horizon with the valid members of the provided set. Windows dated outside
// the horizon are untouched by the delete and ignored on input. Returns the
// number of windows stored.
func (s *AvailabilityService) SetAvailability(doctorID string, windows []WindowInput) (int, error) {
	if err := s.doctorExists(doctorID); err != nil {
		return 0, err
	}

	from, to := s.Horizon()

	var kept []models.Availability
	for _, w := range windows {
		if !validWindow(w, from, to) {
			continue
		}
		kept = append(kept, models.Availability{
			DoctorID:    doctorID,
			Date:        w.Date,
			StartTime:   w.StartTime,
			EndTime:     w.EndTime,
			IsAvailable: true,
		})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ? AND date >= ? AND date <= ?", doctorID, from, to).
			Delete(&models.Availability{}).Error; err != nil {
			return fmt.Errorf("clearing availability: %w", err)
		}
		if len(kept) == 0 {
			return nil
		}
		if err := tx.Create(&kept).Error; err != nil {
			return fmt.Errorf("storing availability: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(kept), nil
}

// GetAvailability returns the doctor's open windows with date in [from, to],
// ordered by date then start time. Pure read.
func (s *AvailabilityService) GetAvailability(doctorID, from, to string) ([]models.Availability, error) {
	if _, err := time.Parse(DateLayout, from); err != nil {
		return nil, fmt.Errorf("%w: invalid from date %q", ErrValidation, from)
	}
	if _, err := time.Parse(DateLayout, to); err != nil {
		return nil, fmt.Errorf("%w: invalid to date %q", ErrValidation, to)
	}
	if err := s.doctorExists(doctorID); err != nil {
		return nil, err
	}

	var windows []models.Availability
	err := s.DB.
		Where("doctor_id = ? AND date >= ? AND date <= ? AND is_available = ?", doctorID, from, to, true).
		Order("date asc, start_time asc").
		Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}

func (s *AvailabilityService) doctorExists(doctorID string) error {
	var doctor models.Doctor
	if err := s.DB.Preload("User").First(&doctor, "id = ?", doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: doctor %s", ErrNotFound, doctorID)
		}
		return err
	}
	if !doctor.User.IsActive {
		return fmt.Errorf("%w: doctor %s is inactive", ErrNotFound, doctorID)
	}
	return nil
}
