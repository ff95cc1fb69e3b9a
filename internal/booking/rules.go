package booking

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/go-playground/validator/v10"
)

// ReminderWindow is how many days ahead a check-in triggers a reminder.
const ReminderWindow = 7

var validate = newValidate()

// newValidate reports fields by their JSON names so messages match the
// persisted schema.
func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Overlaps reports whether the candidate stay [newStart, newEnd) collides
// with an existing stay [exStart, exEnd).
func Overlaps(newStart, newEnd, exStart, exEnd civil.Date) bool {
	// starts inside the existing stay
	if !newStart.Before(exStart) && newStart.Before(exEnd) {
		return true
	}
	// ends inside the existing stay
	if newEnd.After(exStart) && !newEnd.After(exEnd) {
		return true
	}
	// encloses the existing stay
	return !newStart.After(exStart) && !newEnd.Before(exEnd)
}

// FindConflict returns the first active booking, other than skipID, whose
// stay overlaps [checkIn, checkOut).
func FindConflict(bookings []Booking, checkIn, checkOut civil.Date, skipID string) (Booking, bool) {
	for _, b := range bookings {
		if !b.IsActive() || b.ID == skipID {
			continue
		}
		if Overlaps(checkIn, checkOut, b.CheckIn, b.CheckOut) {
			return b, true
		}
	}
	return Booking{}, false
}

// Validate checks a prospective booking against the existing collection and
// returns its parsed check-in and check-out dates. Checks run in order:
// required fields, date format, date order, overlap. The first failure is
// returned as a *ValidationError.
func Validate(in Input, existing []Booking) (civil.Date, civil.Date, error) {
	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return civil.Date{}, civil.Date{}, missingField(fieldErrs[0].Field())
		}
		return civil.Date{}, civil.Date{}, fmt.Errorf("validating booking: %w", err)
	}

	checkIn, err := ParseDate(in.CheckIn)
	if err != nil {
		return civil.Date{}, civil.Date{}, &ValidationError{
			Kind:    ErrInvalidDate,
			Field:   "checkIn",
			Message: fmt.Sprintf("invalid check-in date %q (use YYYY-MM-DD)", in.CheckIn),
		}
	}
	checkOut, err := ParseDate(in.CheckOut)
	if err != nil {
		return civil.Date{}, civil.Date{}, &ValidationError{
			Kind:    ErrInvalidDate,
			Field:   "checkOut",
			Message: fmt.Sprintf("invalid check-out date %q (use YYYY-MM-DD)", in.CheckOut),
		}
	}

	if !checkOut.After(checkIn) {
		return civil.Date{}, civil.Date{}, &ValidationError{
			Kind:    ErrInvalidDateOrder,
			Field:   "checkOut",
			Message: "the check-out date must be later than the check-in date",
		}
	}

	if c, ok := FindConflict(existing, checkIn, checkOut, ""); ok {
		return civil.Date{}, civil.Date{}, &ValidationError{
			Kind: ErrOverlap,
			Message: fmt.Sprintf("these dates conflict with the booking for %s (%s to %s)",
				c.GuestName, c.CheckIn, c.CheckOut),
		}
	}

	return checkIn, checkOut, nil
}

// CheckCollection verifies that a whole collection could have been built by
// Add and SetStatus: ids are present and unique, statuses are known, every
// stay ends after it starts, and no two active stays overlap.
func CheckCollection(bookings []Booking) error {
	seen := make(map[string]bool, len(bookings))
	for i, b := range bookings {
		if b.ID == "" {
			return fmt.Errorf("%w: booking %d has no id", ErrCorrupt, i)
		}
		if seen[b.ID] {
			return fmt.Errorf("%w: duplicate booking id %q", ErrCorrupt, b.ID)
		}
		seen[b.ID] = true

		if !b.Status.IsValid() {
			return fmt.Errorf("%w: %q on booking %s", ErrInvalidStatus, b.Status, b.ID)
		}
		if !b.CheckOut.After(b.CheckIn) {
			return &ValidationError{
				Kind:    ErrInvalidDateOrder,
				Field:   "checkOut",
				Message: fmt.Sprintf("booking %s checks out (%s) before it checks in (%s)", b.ID, b.CheckOut, b.CheckIn),
			}
		}
	}

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if c, ok := FindConflict(bookings, b.CheckIn, b.CheckOut, b.ID); ok {
			return &ValidationError{
				Kind:    ErrOverlap,
				Message: fmt.Sprintf("booking %s (%s to %s) conflicts with booking %s (%s to %s)",
					b.ID, b.CheckIn, b.CheckOut, c.ID, c.CheckIn, c.CheckOut),
			}
		}
	}

	return nil
}

// SortForDisplay returns a copy of bookings with active bookings first and
// each group ordered by check-in date.
func SortForDisplay(bookings []Booking) []Booking {
	sorted := slices.Clone(bookings)
	slices.SortStableFunc(sorted, func(a, b Booking) int {
		if a.IsActive() != b.IsActive() {
			if a.IsActive() {
				return -1
			}
			return 1
		}
		return a.CheckIn.DaysSince(b.CheckIn)
	})
	return sorted
}

// NextUpcoming returns the active booking with the earliest check-in among
// those that have not checked out before today.
func NextUpcoming(bookings []Booking, today civil.Date) (Booking, bool) {
	var next Booking
	found := false
	for _, b := range bookings {
		if !b.IsActive() || b.CheckOut.Before(today) {
			continue
		}
		if !found || b.CheckIn.Before(next.CheckIn) {
			next = b
			found = true
		}
	}
	return next, found
}

// Reminder returns the next upcoming booking when its check-in is between 0
// and window days from today and dismissed does not suppress it. Only the
// earliest upcoming booking is considered; a later one never takes its place.
func Reminder(bookings []Booking, today civil.Date, window int, dismissed func(id string) bool) (Booking, bool) {
	next, ok := NextUpcoming(bookings, today)
	if !ok {
		return Booking{}, false
	}

	days := DaysUntil(next.CheckIn, today)
	if days < 0 || days > window {
		return Booking{}, false
	}

	if dismissed != nil && dismissed(next.ID) {
		return Booking{}, false
	}

	return next, true
}

// DaysUntil returns the whole calendar days from today to d.
func DaysUntil(d, today civil.Date) int {
	return d.DaysSince(today)
}

// DayPhrase describes a day count relative to today.
func DayPhrase(days int) string {
	switch {
	case days < 0:
		return "already started"
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}
