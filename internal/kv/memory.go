package kv

import "errors"

// Memory is an in-process store. Its contents last as long as the value does.
type Memory struct {
	values map[string]string
	// FailWrites makes Set and Delete return ErrWriteRejected.
	FailWrites bool
}

// ErrWriteRejected is returned by a Memory store with FailWrites set.
var ErrWriteRejected = errors.New("write rejected")

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value stored under key and whether it was present.
func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *Memory) Set(key, value string) error {
	if m.FailWrites {
		return ErrWriteRejected
	}
	m.values[key] = value
	return nil
}

// Delete removes key.
func (m *Memory) Delete(key string) error {
	if m.FailWrites {
		return ErrWriteRejected
	}
	delete(m.values, key)
	return nil
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	return len(m.values)
}
