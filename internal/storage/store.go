package storage

import "errors"

// ErrNotFound is returned when a key has never been written (or was cleared)
var ErrNotFound = errors.New("key not found")

// Store is the durable local key-value state the client keeps between runs.
// It stands in for what a browser would keep in localStorage: a couple of
// serialized entries, written synchronously with the in-memory update.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error

	// SetMany writes all entries or none of them - callers rely on this to
	// keep paired keys (identity + token) from ever being observed torn
	SetMany(entries map[string]string) error

	// Delete removes every given key in one operation; missing keys are fine
	Delete(keys ...string) error

	Close() error
}
