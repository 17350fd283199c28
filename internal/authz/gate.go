package authz

import (
	"github.com/learnsphere/marketplace-companion/internal/models"
)

// Decision is the outcome of checking a session against a protected view
type Decision int

const (
	// Allow means the session may render the view
	Allow Decision = iota
	// DenyAnonymous means nobody is signed in - the shell redirects to login
	DenyAnonymous
	// DenyWrongRole means the user is signed in but the view belongs to a
	// different role - the shell redirects to the landing page
	DenyWrongRole
)

// String makes decisions readable in logs and test failures
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyAnonymous:
		return "deny-anonymous"
	case DenyWrongRole:
		return "deny-wrong-role"
	}
	return "unknown"
}

// Authorize decides whether the current session may render a view that
// requires one of the given roles. Pure function of its inputs: no network,
// no side effects. A nil identity is an anonymous session. An empty role set
// means the view is public.
//
// This gate is a UX convenience only - every privileged call is re-validated
// by the marketplace, which is the real security boundary.
func Authorize(identity *models.Identity, required []models.Role) Decision {
	if len(required) == 0 {
		return Allow
	}

	if identity == nil || identity.Token == "" {
		return DenyAnonymous
	}

	for _, role := range required {
		if identity.Role == role {
			return Allow
		}
	}
	return DenyWrongRole
}

// Redirect targets the shell uses when a decision denies access. Policy
// choice, kept next to the gate so both live in one place.
const (
	LoginPath   = "/login" // where anonymous users get sent
	LandingPath = "/"      // where wrong-role users get sent
)

// RedirectFor maps a denial to the path the shell should navigate to.
// Allow has no redirect and returns the empty string.
func RedirectFor(d Decision) string {
	switch d {
	case DenyAnonymous:
		return LoginPath
	case DenyWrongRole:
		return LandingPath
	}
	return ""
}
