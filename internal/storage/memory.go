package storage

import "sync"

// MemoryStore is an in-memory Store used by tests and by anything that wants
// a throwaway session (no file is ever touched)
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string

	// FailWrites makes every mutating call error, for exercising persistence
	// failure paths in tests
	FailWrites bool
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]string),
	}
}

func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *MemoryStore) Set(key, value string) error {
	return s.SetMany(map[string]string{key: value})
}

func (s *MemoryStore) SetMany(entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites {
		return errWriteFailed
	}

	for key, value := range entries {
		s.entries[key] = value
	}
	return nil
}

func (s *MemoryStore) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites {
		return errWriteFailed
	}

	for _, key := range keys {
		delete(s.entries, key)
	}
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

var errWriteFailed = &writeError{}

type writeError struct{}

func (*writeError) Error() string { return "memory store: writes disabled" }
