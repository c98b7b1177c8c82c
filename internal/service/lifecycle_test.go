package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-server/internal/models"
)

func TestCompleteCreatesTreatment(t *testing.T) {
	db := openTestDB(t)
	doctor := createDoctor(t, db, "grey")
	patient := createPatient(t, db, "kate")

	booking := NewBookingService(db)
	lifecycle := NewLifecycleService(db)

	appointment, err := booking.Book(patient.ID, doctor.ID, "2024-01-10", "09:30", "fever")
	require.NoError(t, err)

	completed, err := lifecycle.Complete(appointment.ID, doctor.ID, TreatmentInput{
		Diagnosis:    "flu",
		Prescription: "rest and fluids",
		FollowUpDate: "2024-01-20",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, completed.Status)
	assert.Nil(t, completed.BookedFlag)
	require.NotNil(t, completed.Treatment)
	assert.Equal(t, "flu", completed.Treatment.Diagnosis)
	assert.Equal(t, "2024-01-20", completed.Treatment.FollowUpDate)
}

func TestCompleteTwiceKeepsOneTreatmentWithLatestValues(t *testing.T) {
	db := openTestDB(t)
	doctor := createDoctor(t, db, "shepherd")
	patient := createPatient(t, db, "liam")

	booking := NewBookingService(db)
	lifecycle := NewLifecycleService(db)

	appointment, err := booking.Book(patient.ID, doctor.ID, "2024-01-10", "10:30", "cough")
	require.NoError(t, err)

	_, err = lifecycle.Complete(appointment.ID, doctor.ID, TreatmentInput{Diagnosis: "cold"})
	require.NoError(t, err)

	_, err = lifecycle.Complete(appointment.ID, doctor.ID, TreatmentInput{
		Diagnosis: "bronchitis", Prescription: "antibiotics",
	})
	require.NoError(t, err)

	var treatments []models.Treatment
	require.NoError(t, db.Where("appointment_id = ?", appointment.ID).Find(&treatments).Error)
	require.Len(t, treatments, 1)
	assert.Equal(t, "bronchitis", treatments[0].Diagnosis)
	assert.Equal(t, "antibiotics", treatments[0].Prescription)
}

func TestCompleteRequiresOwningDoctor(t *testing.T) {
	db := openTestDB(t)
	doctor := createDoctor(t, db, "yang")
	intruder := createDoctor(t, db, "karev")
	patient := createPatient(t, db, "mona")

	booking := NewBookingService(db)
	lifecycle := NewLifecycleService(db)

	appointment, err := booking.Book(patient.ID, doctor.ID, "2024-01-10", "11:30", "rash")
	require.NoError(t, err)

	_, err = lifecycle.Complete(appointment.ID, intruder.ID, TreatmentInput{Diagnosis: "eczema"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = lifecycle.Complete("missing-appointment", doctor.ID, TreatmentInput{Diagnosis: "eczema"})
	assert.ErrorIs(t, err, ErrNotFound)

	var reloaded models.Appointment
	require.NoError(t, db.First(&reloaded, "id = ?", appointment.ID).Error)
	assert.Equal(t, models.StatusBooked, reloaded.Status)
}

func TestCompleteRejectsBadFollowUpDate(t *testing.T) {
	db := openTestDB(t)
	doctor := createDoctor(t, db, "bailey")
	patient := createPatient(t, db, "nina")

	booking := NewBookingService(db)
	lifecycle := NewLifecycleService(db)

	appointment, err := booking.Book(patient.ID, doctor.ID, "2024-01-10", "12:30", "headache")
	require.NoError(t, err)

	_, err = lifecycle.Complete(appointment.ID, doctor.ID, TreatmentInput{
		Diagnosis: "migraine", FollowUpDate: "next week",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPatientCancelOnlyFromBooked(t *testing.T) {
	db := openTestDB(t)
	doctor := createDoctor(t, db, "torres")
	patient := createPatient(t, db, "olga")

	booking := NewBookingService(db)
	lifecycle := NewLifecycleService(db)

	appointment, err := booking.Book(patient.ID, doctor.ID, "2024-01-10", "13:30", "checkup")
	require.NoError(t, err)

	cancelled, err := lifecycle.Cancel(appointment.ID, patient.ID, models.RolePatient)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	// Completed appointments are untouched by a patient cancel.
	second, err := booking.Book(patient.ID, doctor.ID, "2024-01-11", "13:30", "checkup")
	require.NoError(t, err)
	_, err = lifecycle.Complete(second.ID, doctor.ID, TreatmentInput{Diagnosis: "fine"})
	require.NoError(t, err)

	unchanged, err := lifecycle.Cancel(second.ID, patient.ID, models.RolePatient)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, unchanged.Status)
}

func TestCancelByNonOwningPatientForbidden(t *testing.T) {
	db := openTestDB(t)
	doctor := createDoctor(t, db, "webber")
	patient := createPatient(t, db, "pam")
	intruder := createPatient(t, db, "quinn")

	booking := NewBookingService(db)
	lifecycle := NewLifecycleService(db)

	appointment, err := booking.Book(patient.ID, doctor.ID, "2024-01-10", "14:30", "checkup")
	require.NoError(t, err)

	_, err = lifecycle.Cancel(appointment.ID, intruder.ID, models.RolePatient)
	assert.ErrorIs(t, err, ErrForbidden)

	var reloaded models.Appointment
	require.NoError(t, db.First(&reloaded, "id = ?", appointment.ID).Error)
	assert.Equal(t, models.StatusBooked, reloaded.Status)
}

func TestDoctorCancelIsUnconditional(t *testing.T) {
	db := openTestDB(t)
	doctor := createDoctor(t, db, "altman")
	patient := createPatient(t, db, "rita")

	booking := NewBookingService(db)
	lifecycle := NewLifecycleService(db)

	appointment, err := booking.Book(patient.ID, doctor.ID, "2024-01-10", "15:30", "checkup")
	require.NoError(t, err)
	_, err = lifecycle.Complete(appointment.ID, doctor.ID, TreatmentInput{Diagnosis: "fine"})
	require.NoError(t, err)

	// The doctor-side cancel overwrites even a completed appointment.
	cancelled, err := lifecycle.Cancel(appointment.ID, doctor.ID, models.RoleDoctor)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	// But never someone else's appointment.
	other := createDoctor(t, db, "hunt")
	second, err := booking.Book(patient.ID, doctor.ID, "2024-01-11", "15:30", "checkup")
	require.NoError(t, err)
	_, err = lifecycle.Cancel(second.ID, other.ID, models.RoleDoctor)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancelByAdminRoleForbidden(t *testing.T) {
	db := openTestDB(t)
	doctor := createDoctor(t, db, "kepner")
	patient := createPatient(t, db, "sam")

	booking := NewBookingService(db)
	lifecycle := NewLifecycleService(db)

	appointment, err := booking.Book(patient.ID, doctor.ID, "2024-01-10", "16:30", "checkup")
	require.NoError(t, err)

	_, err = lifecycle.Cancel(appointment.ID, "whoever", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrForbidden)
}

// Full walkthrough of the booking lifecycle: book, reject the double
// booking, complete with a treatment, then fill a different slot.
func TestBookingLifecycleScenario(t *testing.T) {
	db := openTestDB(t)
	doctor := createDoctor(t, db, "doctor-a")
	p := createPatient(t, db, "patient-p")
	q := createPatient(t, db, "patient-q")

	availability := NewAvailabilityService(db)
	availability.Now = fixedNow
	booking := NewBookingService(db)
	lifecycle := NewLifecycleService(db)

	_, err := availability.SetAvailability(doctor.ID, []WindowInput{
		{Date: "2024-01-10", StartTime: "09:00", EndTime: "12:00"},
	})
	require.NoError(t, err)

	booked, err := booking.Book(p.ID, doctor.ID, "2024-01-10", "09:30", "visit")
	require.NoError(t, err)
	assert.Equal(t, models.StatusBooked, booked.Status)

	_, err = booking.Book(q.ID, doctor.ID, "2024-01-10", "09:30", "visit")
	assert.ErrorIs(t, err, ErrConflict)

	completed, err := lifecycle.Complete(booked.ID, doctor.ID, TreatmentInput{Diagnosis: "flu"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, completed.Status)
	assert.Equal(t, "flu", completed.Treatment.Diagnosis)

	_, err = booking.Book(q.ID, doctor.ID, "2024-01-10", "10:00", "visit")
	require.NoError(t, err)
}
