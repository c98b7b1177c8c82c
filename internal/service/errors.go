package service

import "errors"

// Sentinel errors returned by the core services. Handlers map these onto
// HTTP statuses; nothing inside this package writes a response. Callers
// should test with errors.Is since errors are usually wrapped with context.
var (
	// ErrNotFound means a referenced doctor, patient or appointment does not
	// exist or its account is inactive.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the acting user does not own the resource.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict means the requested slot already holds a Booked appointment.
	// Terminal for the attempt; the caller must pick another slot.
	ErrConflict = errors.New("slot already booked")

	// ErrValidation means a malformed date, time or window was supplied.
	ErrValidation = errors.New("validation failed")
)
