package api

import (
	"net/http"

	"github.com/learnsphere/marketplace-companion/internal/api/handlers"
	"github.com/learnsphere/marketplace-companion/internal/authz"
	"github.com/learnsphere/marketplace-companion/internal/models"
)

// RequireRoles gates a view behind the current session's role. Denials are
// silent redirects - anonymous users go to login, signed-in users with the
// wrong role go back to the landing page. No toast either way.
func (s *Server) RequireRoles(next http.HandlerFunc, roles ...models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decision := authz.Authorize(s.Sessions.Current(), roles)

		switch decision {
		case authz.Allow:
			next(w, r)
		case authz.DenyAnonymous:
			handlers.SendDeniedResponse(w, http.StatusUnauthorized, authz.RedirectFor(decision))
		case authz.DenyWrongRole:
			handlers.SendDeniedResponse(w, http.StatusForbidden, authz.RedirectFor(decision))
		}
	}
}

// EnableCORS adds CORS headers so the shell can talk to the companion
func (s *Server) EnableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the shell serves from its own origin on the same machine
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// handle preflight requests from the shell
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
