package booking

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Options tunes a Service.
type Options struct {
	// ReminderDays is the reminder window; zero means ReminderWindow.
	ReminderDays int
	// RevalidateOnReactivate makes reactivating a cancelled booking fail
	// with ErrOverlap when it collides with another active booking.
	RevalidateOnReactivate bool
	// Today returns the current local date; nil means the system clock.
	Today func() civil.Date
}

// Service is the surface the user interface calls: it validates before
// mutating the store and decides which reminder to show.
type Service struct {
	store      *Store
	dismissals *Dismissals
	window     int
	revalidate bool
	today      func() civil.Date
}

// NewService creates a booking service.
func NewService(store *Store, dismissals *Dismissals, opts Options) *Service {
	s := &Service{
		store:      store,
		dismissals: dismissals,
		window:     opts.ReminderDays,
		revalidate: opts.RevalidateOnReactivate,
		today:      opts.Today,
	}
	if s.window <= 0 {
		s.window = ReminderWindow
	}
	if s.today == nil {
		s.today = func() civil.Date { return civil.DateOf(time.Now()) }
	}
	return s
}

// Today returns the date reminders are computed against.
func (s *Service) Today() civil.Date {
	return s.today()
}

// List returns the bookings in display order.
func (s *Service) List() []Booking {
	return SortForDisplay(s.store.List())
}

// Find resolves an id or unique id prefix.
func (s *Service) Find(ref string) (Booking, error) {
	return s.store.Find(ref)
}

// Add validates in against the current bookings and stores it. Validation
// failures are *ValidationError and leave the store untouched. An error
// wrapping ErrWriteFailed comes with the booking that was added.
func (s *Service) Add(in Input) (Booking, error) {
	checkIn, checkOut, err := Validate(in, s.store.List())
	if err != nil {
		return Booking{}, err
	}

	return s.store.Add(Booking{
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GuestName:  in.GuestName,
		GuestEmail: in.GuestEmail,
		GuestPhone: in.GuestPhone,
		Notes:      in.Notes,
	})
}

// SetStatus changes the status of the booking with id. An unknown id is a
// no-op. When RevalidateOnReactivate is set, reactivating a cancelled booking
// that overlaps another active booking fails without changing anything.
func (s *Service) SetStatus(id string, status Status) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	if s.revalidate && status == Active {
		if b, ok := s.store.Get(id); ok && !b.IsActive() {
			if c, conflict := FindConflict(s.store.List(), b.CheckIn, b.CheckOut, b.ID); conflict {
				return &ValidationError{
					Kind: ErrOverlap,
					Message: fmt.Sprintf("cannot reactivate: dates conflict with the booking for %s (%s to %s)",
						c.GuestName, c.CheckIn, c.CheckOut),
				}
			}
		}
	}

	_, err := s.store.UpdateStatus(id, status)
	return err
}

// Reminder returns the booking to remind the user about, if any, and the
// days until its check-in.
func (s *Service) Reminder() (Booking, int, bool) {
	today := s.today()
	b, ok := Reminder(s.store.List(), today, s.window, s.isDismissed)
	if !ok {
		return Booking{}, 0, false
	}
	return b, DaysUntil(b.CheckIn, today), true
}

// Dismiss hides the reminder for id until the session ends.
func (s *Service) Dismiss(id string) error {
	if s.dismissals == nil {
		return nil
	}
	return s.dismissals.Dismiss(id)
}

func (s *Service) isDismissed(id string) bool {
	return s.dismissals != nil && s.dismissals.IsDismissed(id)
}

// Export returns the collection in the persisted JSON format.
func (s *Service) Export() ([]byte, error) {
	return s.store.Encode()
}

// Import replaces the collection with the JSON array in data, migrating
// records without a status. Data that is not a booking array, or whose
// bookings break the collection rules checked by CheckCollection, is rejected
// and nothing changes.
func (s *Service) Import(data []byte) (int, error) {
	bookings, _, err := Decode(data)
	if err != nil {
		return 0, err
	}
	if bookings == nil {
		return 0, fmt.Errorf("%w: not a booking array", ErrCorrupt)
	}
	if err := CheckCollection(bookings); err != nil {
		return 0, err
	}
	if err := s.store.Replace(bookings); err != nil {
		return len(bookings), err
	}
	return len(bookings), nil
}
