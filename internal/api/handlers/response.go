package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// Common response structures for consistency across all handlers
type ErrorResponse struct {
	Message  string `json:"message"`
	Success  bool   `json:"success"`
	Redirect string `json:"redirect,omitempty"` // where the shell should navigate on denial
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// SendErrorResponse sends a consistent error response with logging
func SendErrorResponse(w http.ResponseWriter, message string, statusCode int, logMessage string, err error) {
	if err != nil {
		log.Printf("%s: %v", logMessage, err)
	} else {
		log.Printf("%s", logMessage)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Message: message,
		Success: false,
	}

	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		log.Printf("Failed to encode error response: %v", encodeErr)
	}
}

// SendDeniedResponse tells the shell where to navigate instead of rendering
// the requested view. No log spam - denials are routine, not failures.
func SendDeniedResponse(w http.ResponseWriter, statusCode int, redirect string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Message:  "Access denied",
		Success:  false,
		Redirect: redirect,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode denial response: %v", err)
	}
}

// SendSuccessResponse sends a consistent success response
func SendSuccessResponse(w http.ResponseWriter, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	response := SuccessResponse{
		Message: message,
		Success: true,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode success response: %v", err)
	}
}

// SendCreatedResponse sends a consistent response for created resources
func SendCreatedResponse(w http.ResponseWriter, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	response := SuccessResponse{
		Message: message,
		Success: true,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode created response: %v", err)
	}
}

// DecodeJSONBody decodes a JSON request body with strict field checking
func DecodeJSONBody(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}
