package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/learnsphere/marketplace-companion/internal/controller"
	"github.com/learnsphere/marketplace-companion/internal/gateway"
	"github.com/learnsphere/marketplace-companion/internal/services"
	"github.com/learnsphere/marketplace-companion/internal/session"
)

// CatalogHandler serves the public course catalog
type CatalogHandler struct {
	Service *services.CatalogService
}

// NewCatalogHandler creates handler with injected service
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{Service: service}
}

// List handles GET /app/courses - the browsable catalog
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.Service.ListCourses(r.Context())
	if err != nil {
		SendErrorResponse(w, "Failed to load courses", http.StatusBadGateway, "Error listing catalog", err)
		return
	}

	SendSuccessResponse(w, "Courses retrieved successfully", courses)
}

// Get handles GET /app/courses/{id} - one course with its lessons
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	courseID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		SendErrorResponse(w, "Invalid course ID", http.StatusBadRequest, "Bad course id in path", err)
		return
	}

	course, err := h.Service.GetCourse(r.Context(), courseID)
	if err != nil {
		if gateway.IsNotFound(err) {
			SendErrorResponse(w, "Course not found", http.StatusNotFound, "Course lookup missed", err)
			return
		}
		SendErrorResponse(w, "Failed to load course", http.StatusBadGateway, "Error fetching course", err)
		return
	}

	SendSuccessResponse(w, "Course retrieved successfully", course)
}

// CourseViewHandler drives the per-course view lifecycle: mount, enroll,
// lesson toggling and unmount. The view itself lives in the registry, this
// handler just translates HTTP into view operations.
type CourseViewHandler struct {
	Registry *controller.Registry
	Sessions *session.Store
}

// NewCourseViewHandler creates handler with injected dependencies
func NewCourseViewHandler(registry *controller.Registry, sessions *session.Store) *CourseViewHandler {
	return &CourseViewHandler{Registry: registry, Sessions: sessions}
}

// Mount handles POST /app/courses/{id}/view - opens (or refreshes) the view
// and returns its first snapshot
func (h *CourseViewHandler) Mount(w http.ResponseWriter, r *http.Request) {
	courseID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		SendErrorResponse(w, "Invalid course ID", http.StatusBadRequest, "Bad course id in path", err)
		return
	}

	view := h.Registry.ViewFor(courseID, h.Sessions.Current())
	if err := view.Load(r.Context()); err != nil {
		// a failed mount leaves no view behind to render stale state from
		h.Registry.Drop(courseID)
		status := http.StatusBadGateway
		if gateway.IsNotFound(err) {
			status = http.StatusNotFound
		}
		SendErrorResponse(w, gateway.ServerMessage(err, "Could not open the course"), status, "Error mounting course view", err)
		return
	}

	SendSuccessResponse(w, "Course view mounted", view.Snapshot())
}

// Snapshot handles GET /app/courses/{id}/view - the current render state
func (h *CourseViewHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	view, ok := h.mounted(w, r)
	if !ok {
		return
	}

	SendSuccessResponse(w, "Course view state", view.Snapshot())
}

// Enroll handles POST /app/courses/{id}/view/enroll
func (h *CourseViewHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	view, ok := h.mounted(w, r)
	if !ok {
		return
	}

	if err := view.Enroll(r.Context()); err != nil {
		h.sendViewError(w, err, "Error enrolling")
		return
	}

	SendSuccessResponse(w, "Enrolled", view.Snapshot())
}

// ToggleLesson handles POST /app/courses/{id}/view/lessons/{lessonID}/toggle
func (h *CourseViewHandler) ToggleLesson(w http.ResponseWriter, r *http.Request) {
	view, ok := h.mounted(w, r)
	if !ok {
		return
	}

	lessonID, err := uuid.Parse(r.PathValue("lessonID"))
	if err != nil {
		SendErrorResponse(w, "Invalid lesson ID", http.StatusBadRequest, "Bad lesson id in path", err)
		return
	}

	if err := view.ToggleLesson(r.Context(), lessonID); err != nil {
		h.sendViewError(w, err, "Error toggling lesson")
		return
	}

	SendSuccessResponse(w, "Lesson updated", view.Snapshot())
}

// SelectLesson handles POST /app/courses/{id}/view/lessons/{lessonID}/select
func (h *CourseViewHandler) SelectLesson(w http.ResponseWriter, r *http.Request) {
	view, ok := h.mounted(w, r)
	if !ok {
		return
	}

	lessonID, err := uuid.Parse(r.PathValue("lessonID"))
	if err != nil {
		SendErrorResponse(w, "Invalid lesson ID", http.StatusBadRequest, "Bad lesson id in path", err)
		return
	}

	if err := view.SelectLesson(lessonID); err != nil {
		h.sendViewError(w, err, "Error selecting lesson")
		return
	}

	SendSuccessResponse(w, "Lesson selected", view.Snapshot())
}

// Unmount handles DELETE /app/courses/{id}/view - the shell navigated away
func (h *CourseViewHandler) Unmount(w http.ResponseWriter, r *http.Request) {
	courseID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		SendErrorResponse(w, "Invalid course ID", http.StatusBadRequest, "Bad course id in path", err)
		return
	}

	h.Registry.Drop(courseID)
	SendSuccessResponse(w, "Course view unmounted", nil)
}

// mounted resolves the view for the course in the path. The registry hands
// back the existing view for the current identity, so a snapshot request
// after login/logout never sees another session's state.
func (h *CourseViewHandler) mounted(w http.ResponseWriter, r *http.Request) (*controller.CourseView, bool) {
	courseID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		SendErrorResponse(w, "Invalid course ID", http.StatusBadRequest, "Bad course id in path", err)
		return nil, false
	}

	return h.Registry.ViewFor(courseID, h.Sessions.Current()), true
}

// sendViewError maps view state machine errors to HTTP statuses
func (h *CourseViewHandler) sendViewError(w http.ResponseWriter, err error, logMessage string) {
	switch {
	case errors.Is(err, controller.ErrViewClosed):
		SendErrorResponse(w, "This course view is no longer open", http.StatusGone, logMessage, err)
	case errors.Is(err, controller.ErrNotStudent):
		SendErrorResponse(w, "Only students can enroll in courses", http.StatusForbidden, logMessage, err)
	case errors.Is(err, controller.ErrAlreadyEnrolled):
		SendErrorResponse(w, "Already enrolled in this course", http.StatusConflict, logMessage, err)
	case errors.Is(err, controller.ErrNotEnrolled):
		SendErrorResponse(w, "Enroll in the course first", http.StatusConflict, logMessage, err)
	case errors.Is(err, controller.ErrUnknownLesson):
		SendErrorResponse(w, "Unknown lesson", http.StatusNotFound, logMessage, err)
	default:
		SendErrorResponse(w, gateway.ServerMessage(err, "The operation failed"), http.StatusBadGateway, logMessage, err)
	}
}
