package handlers

import (
	"net/http"

	"github.com/learnsphere/marketplace-companion/internal/services"
)

// StudentHandler serves the learner's dashboard
type StudentHandler struct {
	Service *services.StudentService
}

// NewStudentHandler creates handler with injected service
func NewStudentHandler(service *services.StudentService) *StudentHandler {
	return &StudentHandler{Service: service}
}

// Dashboard handles GET /app/student/dashboard - enrollments plus stats
func (h *StudentHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.Service.Dashboard(r.Context())
	if err != nil {
		SendErrorResponse(w, "Failed to load dashboard", http.StatusBadGateway, "Error building student dashboard", err)
		return
	}

	SendSuccessResponse(w, "Dashboard retrieved successfully", dashboard)
}
