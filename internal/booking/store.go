package booking

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// StorageKey is the key holding the serialized booking collection.
const StorageKey = "guestRoomBookings"

// KV is a string key/value store. Get reports whether the key was present.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Store holds the booking collection in memory and writes the whole
// collection through to a KV on every mutation. It is not safe for
// concurrent use.
type Store struct {
	kv       KV
	key      string
	bookings []Booking
	newID    func() string
	log      *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for persistence problems.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) { s.log = l }
}

// WithIDGenerator replaces the booking id generator.
func WithIDGenerator(f func() string) StoreOption {
	return func(s *Store) { s.newID = f }
}

// WithKey stores the collection under key instead of StorageKey.
func WithKey(key string) StoreOption {
	return func(s *Store) { s.key = key }
}

// NewStore creates an empty store over kv. Call Load to read persisted
// bookings.
func NewStore(kv KV, opts ...StoreOption) *Store {
	s := &Store{
		kv:    kv,
		key:   StorageKey,
		newID: uuid.NewString,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the persisted one. A missing
// value yields an empty collection. A corrupt value is deleted and also
// yields an empty collection. Only a failing read is returned as an error.
func (s *Store) Load() error {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		return fmt.Errorf("loading bookings: %w", err)
	}
	if !ok {
		s.bookings = nil
		return nil
	}

	bookings, migrated, err := Decode([]byte(raw))
	if err != nil {
		s.log.Warn("discarding corrupt bookings", "key", s.key, "error", err)
		s.bookings = nil
		if delErr := s.kv.Delete(s.key); delErr != nil {
			s.log.Error("clearing corrupt bookings", "key", s.key, "error", delErr)
		}
		return nil
	}

	s.bookings = bookings
	s.log.Debug("loaded bookings", "count", len(bookings), "migrated", migrated)
	return nil
}

// List returns a copy of the collection in stored order.
func (s *Store) List() []Booking {
	return slices.Clone(s.bookings)
}

// Get returns the booking with the exact id.
func (s *Store) Get(id string) (Booking, bool) {
	i := s.index(id)
	if i < 0 {
		return Booking{}, false
	}
	return s.bookings[i], true
}

// Find resolves ref as an exact id or, failing that, a unique id prefix.
func (s *Store) Find(ref string) (Booking, error) {
	if ref == "" {
		return Booking{}, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	if b, ok := s.Get(ref); ok {
		return b, nil
	}

	var matches []Booking
	for _, b := range s.bookings {
		if strings.HasPrefix(b.ID, ref) {
			matches = append(matches, b)
		}
	}

	switch len(matches) {
	case 0:
		return Booking{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return Booking{}, fmt.Errorf("%w: %s matches %d bookings", ErrAmbiguous, ref, len(matches))
	}
}

// Add appends b as a new active booking with a fresh id and persists the
// collection. It does not validate; callers run Validate first. The returned
// booking is always added; a non-nil error wraps ErrWriteFailed.
func (s *Store) Add(b Booking) (Booking, error) {
	b.ID = s.newID()
	b.Status = Active
	s.bookings = append(s.bookings, b)
	return b, s.persist()
}

// UpdateStatus sets the status of the booking with the given id and persists
// the collection. An unknown id changes nothing and reports false.
func (s *Store) UpdateStatus(id string, status Status) (bool, error) {
	i := s.index(id)
	if i >= 0 {
		s.bookings[i].Status = status
	}
	return i >= 0, s.persist()
}

// Replace swaps in a whole collection and persists it.
func (s *Store) Replace(bookings []Booking) error {
	s.bookings = slices.Clone(bookings)
	return s.persist()
}

// Encode serializes the collection in the persisted format.
func (s *Store) Encode() ([]byte, error) {
	return Encode(s.bookings)
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.bookings, func(b Booking) bool { return b.ID == id })
}

// persist writes the whole collection. A failure is logged and returned but
// the in-memory collection is left as is.
func (s *Store) persist() error {
	data, err := Encode(s.bookings)
	if err == nil {
		err = s.kv.Set(s.key, string(data))
	}
	if err != nil {
		s.log.Error("saving bookings", "key", s.key, "count", len(s.bookings), "error", err)
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

// Encode serializes bookings as a JSON array.
func Encode(bookings []Booking) ([]byte, error) {
	if bookings == nil {
		bookings = []Booking{}
	}
	data, err := json.Marshal(bookings)
	if err != nil {
		return nil, fmt.Errorf("marshaling bookings: %w", err)
	}
	return data, nil
}

// Decode parses a persisted JSON array of bookings. Records saved before
// bookings had a status are given Active; migrated counts them.
func Decode(data []byte) (bookings []Booking, migrated int, err error) {
	if jsonErr := json.Unmarshal(data, &bookings); jsonErr != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrCorrupt, jsonErr)
	}
	for i := range bookings {
		if bookings[i].Status == "" {
			bookings[i].Status = Active
			migrated++
		}
	}
	return bookings, migrated, nil
}
