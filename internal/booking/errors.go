package booking

import (
	"errors"
	"fmt"
)

// Validation failure kinds. A *ValidationError matches its kind with errors.Is.
var (
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidDateOrder = errors.New("check-out must be after check-in")
	ErrOverlap          = errors.New("dates conflict with an existing booking")
)

var (
	// ErrCorrupt means the persisted collection could not be parsed.
	ErrCorrupt = errors.New("stored bookings are corrupt")
	// ErrWriteFailed means a mutation was applied in memory but could not
	// be persisted.
	ErrWriteFailed = errors.New("saving bookings failed")
	// ErrNotFound means no booking matched an id or id prefix.
	ErrNotFound = errors.New("booking not found")
	// ErrAmbiguous means an id prefix matched more than one booking.
	ErrAmbiguous = errors.New("booking id prefix is ambiguous")
	// ErrInvalidStatus means a status other than active or cancelled was given.
	ErrInvalidStatus = errors.New("invalid status")
)

// ValidationError rejects a prospective booking before anything is stored.
type ValidationError struct {
	Kind    error
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func missingField(field string) *ValidationError {
	return &ValidationError{
		Kind:    ErrMissingField,
		Field:   field,
		Message: fmt.Sprintf("%s is required; every field except notes must be filled in", field),
	}
}
