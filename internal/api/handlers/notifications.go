package handlers

import (
	"net/http"

	"github.com/learnsphere/marketplace-companion/pkg/notify"
)

// NotificationHandler lets the shell poll for toast notifications
type NotificationHandler struct {
	Center *notify.Center
}

// NewNotificationHandler creates handler with the shared notification center
func NewNotificationHandler(center *notify.Center) *NotificationHandler {
	return &NotificationHandler{Center: center}
}

// Drain handles GET /app/notifications - returns unread toasts oldest first
// and marks them read, so each one is shown exactly once
func (h *NotificationHandler) Drain(w http.ResponseWriter, r *http.Request) {
	SendSuccessResponse(w, "Notifications retrieved", h.Center.Drain())
}
