package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer from the marketplace. It keeps the status and
// whatever message the server put in the body, so callers can branch on the
// status and surface the server's wording verbatim.
type APIError struct {
	Status  int    // HTTP status code
	Message string // server-supplied message, may be empty
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("marketplace returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("marketplace returned %d", e.Status)
}

// IsNotFound reports whether the error is a 404 from the marketplace.
// On the enrollment lookup this is the expected "never enrolled" signal,
// not a failure.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether the error is a 401 - the credential is no
// longer accepted and the session should be torn down
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// ServerMessage pulls the server-supplied message out of an error, or returns
// the fallback when there is none (transport failures, empty bodies)
func ServerMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// ErrBadPayload wraps validation failures on what the server sent back.
// Malformed payloads are quarantined here instead of flowing into the state
// machines as half-formed values.
var ErrBadPayload = errors.New("malformed server payload")
