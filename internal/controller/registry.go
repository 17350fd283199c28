package controller

import (
	"sync"

	"github.com/google/uuid"
	"github.com/learnsphere/marketplace-companion/internal/models"
	"github.com/learnsphere/marketplace-companion/pkg/notify"
)

// Registry hands out the live course view for each course the shell has
// open. One view per course id and viewer - navigating back to a course
// while its view is still mounted reuses it, a different viewer gets a
// fresh one.
type Registry struct {
	mu       sync.Mutex
	views    map[uuid.UUID]*registered
	api      CourseAPI
	notifier notify.Notifier
}

type registered struct {
	view     *CourseView
	viewerID uuid.UUID // uuid.Nil for anonymous
}

// NewRegistry creates an empty view registry
func NewRegistry(api CourseAPI, notifier notify.Notifier) *Registry {
	return &Registry{
		views:    make(map[uuid.UUID]*registered),
		api:      api,
		notifier: notifier,
	}
}

// ViewFor returns the mounted view for a course, creating one if needed.
// A view mounted under a different viewer (login/logout in between) is
// closed and replaced - enrollment state is keyed by course AND identity.
func (r *Registry) ViewFor(courseID uuid.UUID, viewer *models.Identity) *CourseView {
	viewerID := uuid.Nil
	if viewer != nil {
		viewerID = viewer.ID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.views[courseID]; ok {
		if entry.viewerID == viewerID {
			return entry.view
		}
		// stale viewer - unmount the old view before replacing it
		entry.view.Close()
	}

	view := NewCourseView(r.api, r.notifier, courseID, viewer)
	r.views[courseID] = &registered{view: view, viewerID: viewerID}
	return view
}

// Drop unmounts one course view, if it's there
func (r *Registry) Drop(courseID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.views[courseID]; ok {
		entry.view.Close()
		delete(r.views, courseID)
	}
}

// Reset unmounts every view. Called on logout so nothing keeps rendering
// another identity's enrollment state.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for courseID, entry := range r.views {
		entry.view.Close()
		delete(r.views, courseID)
	}
}
