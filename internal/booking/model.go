// Package booking provides the guest room booking model, the reservation
// rules that guard it, and the store that keeps it durable.
package booking

import (
	"cloud.google.com/go/civil"
)

// Status is the lifecycle state of a booking.
type Status string

const (
	Active    Status = "active"
	Cancelled Status = "cancelled"
)

// IsValid checks if a status is recognized.
func (s Status) IsValid() bool {
	return s == Active || s == Cancelled
}

// Label returns a human-readable label for the status.
func (s Status) Label() string {
	switch s {
	case Active:
		return "Active"
	case Cancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// Booking is a reservation of the guest room for the nights in
// [CheckIn, CheckOut).
type Booking struct {
	ID         string     `json:"id"`
	CheckIn    civil.Date `json:"checkIn"`  // YYYY-MM-DD
	CheckOut   civil.Date `json:"checkOut"` // YYYY-MM-DD
	GuestName  string     `json:"guestName"`
	GuestEmail string     `json:"guestEmail"`
	GuestPhone string     `json:"guestPhone"`
	Notes      string     `json:"notes,omitempty"`
	Status     Status     `json:"status"`
}

// IsActive reports whether the booking takes part in overlap checks and
// reminders.
func (b Booking) IsActive() bool {
	return b.Status == Active
}

// Nights returns the length of the stay.
func (b Booking) Nights() int {
	return b.CheckOut.DaysSince(b.CheckIn)
}

// Input is what a user submits to create a booking. Dates are YYYY-MM-DD.
type Input struct {
	CheckIn    string `json:"checkIn" validate:"required"`
	CheckOut   string `json:"checkOut" validate:"required"`
	GuestName  string `json:"guestName" validate:"required"`
	GuestEmail string `json:"guestEmail" validate:"required"`
	GuestPhone string `json:"guestPhone" validate:"required"`
	Notes      string `json:"notes,omitempty"`
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (civil.Date, error) {
	return civil.ParseDate(s)
}
