package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hospital-server/internal/models"
)

func TestBookCreatesBookedAppointment(t *testing.T) {
	db := openTestDB(t)
	doctor := createDoctor(t, db, "strange")
	patient := createPatient(t, db, "peter")

	svc := NewBookingService(db)

	appointment, err := svc.Book(patient.ID, doctor.ID, "2024-01-10", "09:30", "checkup")
	require.NoError(t, err)
	assert.Equal(t, models.StatusBooked, appointment.Status)
	assert.Equal(t, "2024-01-10", appointment.AppointmentDate)
	assert.Equal(t, "09:30", appointment.AppointmentTime)
	require.NotNil(t, appointment.BookedFlag)
	assert.NotEmpty(t, appointment.ID)
}

func TestBookSameSlotTwiceConflicts(t *testing.T) {
	db := openTestDB(t)
	doctor := createDoctor(t, db, "watson")
	first := createPatient(t, db, "alice")
	second := createPatient(t, db, "bob")

	svc := NewBookingService(db)

	_, err := svc.Book(first.ID, doctor.ID, "2024-01-10", "09:30", "checkup")
	require.NoError(t, err)

	_, err = svc.Book(second.ID, doctor.ID, "2024-01-10", "09:30", "checkup")
	assert.ErrorIs(t, err, ErrConflict)

	var count int64
	require.NoError(t, db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ?", doctor.ID, "2024-01-10", "09:30").
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBookCancelledSlotIsReusable(t *testing.T) {
	db := openTestDB(t)
	doctor := createDoctor(t, db, "who")
	patient := createPatient(t, db, "carol")
	other := createPatient(t, db, "dave")

	booking := NewBookingService(db)
	lifecycle := NewLifecycleService(db)

	appointment, err := booking.Book(patient.ID, doctor.ID, "2024-01-10", "10:00", "checkup")
	require.NoError(t, err)

	_, err = lifecycle.Cancel(appointment.ID, patient.ID, models.RolePatient)
	require.NoError(t, err)

	rebooked, err := booking.Book(other.ID, doctor.ID, "2024-01-10", "10:00", "follow-up")
	require.NoError(t, err)
	assert.Equal(t, models.StatusBooked, rebooked.Status)
}

func TestBookDifferentSlotSameDoctor(t *testing.T) {
	db := openTestDB(t)
	doctor := createDoctor(t, db, "crusher")
	patient := createPatient(t, db, "erin")

	svc := NewBookingService(db)

	_, err := svc.Book(patient.ID, doctor.ID, "2024-01-10", "09:30", "checkup")
	require.NoError(t, err)

	// Same doctor and date, different time: no conflict.
	_, err = svc.Book(patient.ID, doctor.ID, "2024-01-10", "10:00", "checkup")
	require.NoError(t, err)
}

func TestBookValidatesDateAndTime(t *testing.T) {
	db := openTestDB(t)
	doctor := createDoctor(t, db, "mccoy")
	patient := createPatient(t, db, "frank")

	svc := NewBookingService(db)

	_, err := svc.Book(patient.ID, doctor.ID, "10-01-2024", "09:30", "checkup")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Book(patient.ID, doctor.ID, "2024-01-10", "9am", "checkup")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBookUnknownOrInactiveParties(t *testing.T) {
	db := openTestDB(t)
	doctor := createDoctor(t, db, "bashir")
	patient := createPatient(t, db, "grace")

	svc := NewBookingService(db)

	_, err := svc.Book("missing-patient", doctor.ID, "2024-01-10", "09:30", "checkup")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Book(patient.ID, "missing-doctor", "2024-01-10", "09:30", "checkup")
	assert.ErrorIs(t, err, ErrNotFound)

	deactivateUser(t, db, doctor.UserID)
	_, err = svc.Book(patient.ID, doctor.ID, "2024-01-10", "09:30", "checkup")
	assert.ErrorIs(t, err, ErrNotFound)
}

// A user row inserted with IsActive false must stay inactive (no column
// default re-opening the account on Create) and must not be bookable.
func TestUserCreatedInactiveStaysInactive(t *testing.T) {
	db := openTestDB(t)
	doctor := createDoctor(t, db, "boyle")

	user := models.User{
		Username: "dormant",
		Email:    "dormant@patients.test",
		FullName: "dormant",
		Role:     models.RolePatient,
		IsActive: false,
	}
	require.NoError(t, user.SetPassword("secret-pass"))
	require.NoError(t, db.Create(&user).Error)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.False(t, reloaded.IsActive)

	patient := models.Patient{UserID: user.ID}
	require.NoError(t, db.Create(&patient).Error)

	svc := NewBookingService(db)
	_, err := svc.Book(patient.ID, doctor.ID, "2024-01-10", "09:30", "checkup")
	assert.ErrorIs(t, err, ErrNotFound)
}

// The unique index over (doctor, date, time, booked_flag) is the backstop
// for two racing requests that both pass the pre-insert check: the second
// insert must fail with a duplicate-key error, which Book reports as
// ErrConflict. Cancelled rows carry a NULL flag and never collide.
func TestBookedSlotUniqueIndex(t *testing.T) {
	db := openTestDB(t)
	doctor := createDoctor(t, db, "pulaski")
	patient := createPatient(t, db, "heidi")

	flag := uint8(1)
	first := models.Appointment{
		PatientID: patient.ID, DoctorID: doctor.ID,
		AppointmentDate: "2024-01-10", AppointmentTime: "11:00",
		Status: models.StatusBooked, BookedFlag: &flag,
	}
	require.NoError(t, db.Create(&first).Error)

	flag2 := uint8(1)
	second := models.Appointment{
		PatientID: patient.ID, DoctorID: doctor.ID,
		AppointmentDate: "2024-01-10", AppointmentTime: "11:00",
		Status: models.StatusBooked, BookedFlag: &flag2,
	}
	err := db.Create(&second).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// Two cancelled rows on the same slot coexist: NULL flags do not collide.
	cancelledA := models.Appointment{
		PatientID: patient.ID, DoctorID: doctor.ID,
		AppointmentDate: "2024-01-10", AppointmentTime: "12:00",
		Status: models.StatusCancelled,
	}
	cancelledB := models.Appointment{
		PatientID: patient.ID, DoctorID: doctor.ID,
		AppointmentDate: "2024-01-10", AppointmentTime: "12:00",
		Status: models.StatusCancelled,
	}
	require.NoError(t, db.Create(&cancelledA).Error)
	require.NoError(t, db.Create(&cancelledB).Error)
}

func TestListFiltersByPartyAndStatus(t *testing.T) {
	db := openTestDB(t)
	doctor := createDoctor(t, db, "orpheus")
	patient := createPatient(t, db, "ivy")
	other := createPatient(t, db, "jack")

	booking := NewBookingService(db)
	lifecycle := NewLifecycleService(db)

	a1, err := booking.Book(patient.ID, doctor.ID, "2024-01-10", "09:00", "checkup")
	require.NoError(t, err)
	_, err = booking.Book(patient.ID, doctor.ID, "2024-01-11", "09:00", "follow-up")
	require.NoError(t, err)
	_, err = booking.Book(other.ID, doctor.ID, "2024-01-12", "09:00", "checkup")
	require.NoError(t, err)

	_, err = lifecycle.Cancel(a1.ID, patient.ID, models.RolePatient)
	require.NoError(t, err)

	mine, err := booking.List(ListFilter{PatientID: patient.ID})
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	// Newest date first.
	assert.Equal(t, "2024-01-11", mine[0].AppointmentDate)

	booked, err := booking.List(ListFilter{PatientID: patient.ID, Status: models.StatusBooked})
	require.NoError(t, err)
	assert.Len(t, booked, 1)

	doctors, err := booking.List(ListFilter{DoctorID: doctor.ID})
	require.NoError(t, err)
	assert.Len(t, doctors, 3)
}
