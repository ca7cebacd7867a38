package scheduling

import (
	"errors"
	"fmt"
)

// ErrPatientNotFound is returned when neither an explicit patient id
// nor a phone number resolves to a patient record.
var ErrPatientNotFound = errors.New("patient not found")

// ValidationError reports malformed, missing or out-of-range input.
// It maps to HTTP 400 and is never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ConflictError reports that the requested slot is already occupied by
// an active appointment. It carries enough detail for the caller to
// present a useful message or pick another slot.
type ConflictError struct {
	AppointmentID string `json:"id"`
	Time          string `json:"time"`
	PatientName   string `json:"patientName"`
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot %s is already booked", e.Time)
}

// AsValidationError unwraps err as a *ValidationError, or nil.
func AsValidationError(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// AsConflictError unwraps err as a *ConflictError, or nil.
func AsConflictError(err error) *ConflictError {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce
	}
	return nil
}
