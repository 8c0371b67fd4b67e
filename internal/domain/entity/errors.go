package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a feed or article does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateURL is returned when a feed with the same URL is
	// already registered.
	ErrDuplicateURL = errors.New("feed URL already registered")
)

// ValidationError reports a rejected input value and the field it came
// from, so handlers can echo the failure back to API clients.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
