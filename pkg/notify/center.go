package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind says whether a notification reports success or failure
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is one toast-style message waiting for the shell to show it
type Notification struct {
	ID        uuid.UUID `json:"id"`
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"` // set once the shell has drained it
}

// Notifier is the capability components report outcomes through. The shell's
// toast surface sits behind it; tests swap in a recorder.
type Notifier interface {
	Notify(kind Kind, title, detail string)
	Success(title, detail string)
	Error(title, detail string)
}

// Center collects notifications until the shell polls them off
type Center struct {
	mu    sync.RWMutex // for thread safety
	items []*Notification
}

// NewCenter creates an empty notification center
func NewCenter() *Center {
	return &Center{}
}

// Notify records a notification of the given kind
func (c *Center) Notify(kind Kind, title, detail string) {
	n := &Notification{
		ID:        uuid.New(),
		Kind:      kind,
		Title:     title,
		Detail:    detail,
		CreatedAt: time.Now(),
	}

	c.mu.Lock()
	c.items = append(c.items, n)
	c.mu.Unlock()
}

// Success records a success notification
func (c *Center) Success(title, detail string) {
	c.Notify(KindSuccess, title, detail)
}

// Error records a failure notification
func (c *Center) Error(title, detail string) {
	c.Notify(KindError, title, detail)
}

// Drain returns all unread notifications in arrival order and marks them read
func (c *Center) Drain() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	var unread []Notification
	for _, n := range c.items {
		if !n.Read {
			n.Read = true
			unread = append(unread, *n)
		}
	}
	return unread
}

// CleanupOld removes read notifications older than the specified age
func (c *Center) CleanupOld(maxAge time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0

	kept := c.items[:0]
	for _, n := range c.items {
		// only clean up notifications the shell has already seen
		if n.Read && n.CreatedAt.Before(cutoff) {
			cleaned++
			continue
		}
		kept = append(kept, n)
	}
	c.items = kept

	return cleaned
}

// CleanupRoutine runs cleanup automatically on a schedule
func (c *Center) CleanupRoutine(interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		cleaned := c.CleanupOld(maxAge)
		if cleaned > 0 {
			// maybe log this but don't spam the logs
		}
	}
}
