package domain

import "errors"

// Error kinds. Every sentinel error of the usecase and service layers wraps exactly one of them,
// so callers classify failures with errors.Is.
var (
	// ErrValidation missing or malformed input
	ErrValidation = errors.New("validation error")

	// ErrConflict the slot is no longer available
	ErrConflict = errors.New("conflict")

	// ErrInvalidState the operation is forbidden in the current booking state
	ErrInvalidState = errors.New("invalid state")

	// ErrNotFound unknown service, booking or client
	ErrNotFound = errors.New("not found")

	// ErrForbidden the booking belongs to another client
	ErrForbidden = errors.New("forbidden")
)
