package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/learnsphere/marketplace-companion/internal/gateway"
	"github.com/learnsphere/marketplace-companion/internal/models"
	"github.com/learnsphere/marketplace-companion/internal/services"
)

// AdminHandler serves the platform administration screens
type AdminHandler struct {
	Service *services.AdminService
}

// NewAdminHandler creates handler with injected service
func NewAdminHandler(service *services.AdminService) *AdminHandler {
	return &AdminHandler{Service: service}
}

// Dashboard handles GET /app/admin/dashboard - users, courses and stats
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Load(r.Context()); err != nil {
		SendErrorResponse(w, "Failed to load dashboard", http.StatusBadGateway, "Error loading admin dashboard", err)
		return
	}

	type dashboardData struct {
		Users   []models.Identity   `json:"users"`
		Courses []models.Course     `json:"courses"`
		Stats   services.AdminStats `json:"stats"`
	}

	SendSuccessResponse(w, "Dashboard retrieved successfully", dashboardData{
		Users:   h.Service.Users(),
		Courses: h.Service.Courses(),
		Stats:   h.Service.Stats(),
	})
}

// DeleteUser handles DELETE /app/admin/users/{id}
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		SendErrorResponse(w, "Invalid user ID", http.StatusBadRequest, "Bad user id in path", err)
		return
	}

	if err := h.Service.DeleteUser(r.Context(), userID); err != nil {
		SendErrorResponse(w, gateway.ServerMessage(err, "The user could not be deleted"), http.StatusBadGateway, "Error deleting user", err)
		return
	}

	SendSuccessResponse(w, "User deleted successfully", h.Service.Users())
}

// ToggleCourseApproval handles POST /app/admin/courses/{id}/toggle-approval
func (h *AdminHandler) ToggleCourseApproval(w http.ResponseWriter, r *http.Request) {
	courseID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		SendErrorResponse(w, "Invalid course ID", http.StatusBadRequest, "Bad course id in path", err)
		return
	}

	course, err := h.Service.ToggleCourseApproval(r.Context(), courseID)
	if err != nil {
		SendErrorResponse(w, gateway.ServerMessage(err, "The approval status could not be changed"), http.StatusBadGateway, "Error toggling approval", err)
		return
	}

	SendSuccessResponse(w, "Approval status updated", course)
}

// DeleteCourse handles DELETE /app/admin/courses/{id}
func (h *AdminHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
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
