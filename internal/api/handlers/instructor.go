package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/learnsphere/marketplace-companion/internal/gateway"
	"github.com/learnsphere/marketplace-companion/internal/models"
	"github.com/learnsphere/marketplace-companion/internal/services"
)

// InstructorHandler serves the instructor's course management screens
type InstructorHandler struct {
	Service *services.InstructorService
}

// NewInstructorHandler creates handler with injected service
func NewInstructorHandler(service *services.InstructorService) *InstructorHandler {
	return &InstructorHandler{Service: service}
}

// Dashboard handles GET /app/instructor/dashboard - own courses plus stats
func (h *InstructorHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	courses, err := h.Service.LoadCourses(r.Context())
	if err != nil {
		SendErrorResponse(w, "Failed to load courses", http.StatusBadGateway, "Error loading instructor courses", err)
		return
	}

	type dashboardData struct {
		Courses []models.Course          `json:"courses"`
		Stats   services.InstructorStats `json:"stats"`
	}

	SendSuccessResponse(w, "Dashboard retrieved successfully", dashboardData{
		Courses: courses,
		Stats:   h.Service.Stats(),
	})
}

// CreateCourse handles POST /app/instructor/courses
func (h *InstructorHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var input models.CreateCourseInput
	if err := DecodeJSONBody(r, &input); err != nil {
		SendErrorResponse(w, "Invalid request format", http.StatusBadRequest, "Error decoding course draft", err)
		return
	}
	defer r.Body.Close()

	course, err := h.Service.CreateCourse(r.Context(), input)
	if err != nil {
		SendErrorResponse(w, gateway.ServerMessage(err, "The course could not be created"), http.StatusBadRequest, "Error creating course", err)
		return
	}

	SendCreatedResponse(w, "Course created successfully", course)
}

// DeleteCourse handles DELETE /app/instructor/courses/{id}
func (h *InstructorHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		SendErrorResponse(w, "Invalid course ID", http.StatusBadRequest, "Bad course id in path", err)
		return
	}

	if err := h.Service.DeleteCourse(r.Context(), courseID); err != nil {
		SendErrorResponse(w, gateway.ServerMessage(err, "The course could not be deleted"), http.StatusBadGateway, "Error deleting course", err)
		return
	}

	SendSuccessResponse(w, "Course deleted successfully", h.Service.Courses())
}
