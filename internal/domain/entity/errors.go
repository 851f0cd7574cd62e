package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the domain and use case layers.
var (
	// ErrNotFound indicates that a requested file or record does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or out-of-range input
	ErrInvalidInput = errors.New("invalid input")

	// ErrCorrupt indicates stored data that can no longer be decoded
	ErrCorrupt = errors.New("corrupt data")
)

// ValidationError reports which field of an entity failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrInvalidInput) match validation failures.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
