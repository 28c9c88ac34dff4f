package models

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across repositories and services
var (
	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login failures do not reveal which one it was
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidPassengerList is returned when a booking carries no passengers
	ErrInvalidPassengerList = errors.New("booking requires at least one passenger")

	// ErrTourUnavailable is returned when the tour behind a pending intent no
	// longer exists at consumption time
	ErrTourUnavailable = errors.New("selected tour is no longer available")
)

// ValidationError reports a malformed or missing request field
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// DuplicateEmailError is returned when registering with an email that is
// already taken
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("email %s is already registered", e.Email)
}
