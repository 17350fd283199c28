package handlers

import (
	"log"
	"net/http"

	"github.com/learnsphere/marketplace-companion/internal/controller"
	"github.com/learnsphere/marketplace-companion/internal/gateway"
	"github.com/learnsphere/marketplace-companion/internal/models"
	"github.com/learnsphere/marketplace-companion/internal/session"
	"github.com/learnsphere/marketplace-companion/pkg/notify"
)

// AuthHandler processes sign-in, sign-up and sign-out requests from the shell
type AuthHandler struct {
	Sessions *session.Store
	Registry *controller.Registry // reset on logout so no view outlives the session
	Notifier notify.Notifier
}

// NewAuthHandler creates handler with injected dependencies
func NewAuthHandler(sessions *session.Store, registry *controller.Registry, notifier notify.Notifier) *AuthHandler {
	return &AuthHandler{Sessions: sessions, Registry: registry, Notifier: notifier}
}

// Login handles POST /app/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := DecodeJSONBody(r, &creds); err != nil {
		SendErrorResponse(w, "Invalid request format", http.StatusBadRequest, "Error decoding login body", err)
		return
	}
	defer r.Body.Close()

	identity, err := h.Sessions.Authenticate(r.Context(), creds.Email, creds.Password)
	if err != nil {
		h.Notifier.Error("Login failed", gateway.ServerMessage(err, "Invalid email or password"))
		SendErrorResponse(w, gateway.ServerMessage(err, "Login failed"), http.StatusUnauthorized, "Login attempt failed", err)
		return
	}

	SendSuccessResponse(w, "Signed in successfully", identity)
}

// Signup handles POST /app/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input models.SignupInput
	if err := DecodeJSONBody(r, &input); err != nil {
		SendErrorResponse(w, "Invalid request format", http.StatusBadRequest, "Error decoding signup body", err)
		return
	}
	defer r.Body.Close()

	identity, err := h.Sessions.Register(r.Context(), input.Email, input.Password, input.Name, input.Role)
	if err != nil {
		h.Notifier.Error("Signup failed", gateway.ServerMessage(err, "The account could not be created"))
		SendErrorResponse(w, gateway.ServerMessage(err, "Signup failed"), http.StatusBadRequest, "Signup attempt failed", err)
		return
	}

	SendCreatedResponse(w, "Account created", identity)
}

// Logout handles POST /app/auth/logout. Always succeeds - there's nothing
// useful to report about failing to stop being signed in.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Terminate()
	h.Registry.Reset()
	log.Println("User signed out, course views unmounted")

	SendSuccessResponse(w, "Signed out", nil)
}

// Session handles GET /app/auth/session - tells the shell who is signed in
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	type sessionData struct {
		Authenticated bool             `json:"authenticated"`
		User          *models.Identity `json:"user,omitempty"`
	}

	SendSuccessResponse(w, "Session state", sessionData{
		Authenticated: h.Sessions.IsAuthenticated(),
		User:          h.Sessions.Current(),
	})
}
