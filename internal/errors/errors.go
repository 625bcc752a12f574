// ABOUTME: Standardized error response types and helpers for HTTP handlers.
// ABOUTME: Provides consistent error formatting across the availability and events APIs.

package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the standardized error response structure used across all
// handlers, so clients can parse failures uniformly.
type ErrorResponse struct {
	Code    string `json:"code"`              // Machine-readable error code (e.g., "invalid_request", "not_found")
	Message string `json:"message"`           // Human-readable error message
	Status  int    `json:"status"`            // HTTP status code
	Field   string `json:"field,omitempty"`   // Optional: field that caused the error (for validation errors)
	Details string `json:"details,omitempty"` // Optional: additional error details
}

// WriteError writes a standardized error response.
//
// Example:
//
//	WriteError(w, http.StatusBadRequest, "invalid_status", "status must be good, ok, or bad")
func WriteError(w http.ResponseWriter, status int, code, message string) {
	writeErrorResponse(w, ErrorResponse{
		Code:    code,
		Message: message,
		Status:  status,
	})
}

// WriteErrorWithField writes a standardized error response naming the field
// that caused a validation failure.
func WriteErrorWithField(w http.ResponseWriter, status int, code, message, field string) {
	writeErrorResponse(w, ErrorResponse{
		Code:    code,
		Message: message,
		Status:  status,
		Field:   field,
	})
}

// WriteJSON writes v as a JSON response with status 200.
func WriteJSON(w http.ResponseWriter, v any) {
	WriteJSONStatus(w, http.StatusOK, v)
}

// WriteJSONStatus writes v as a JSON response with the given status code.
func WriteJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	json.NewEncoder(w).Encode(map[string]any{"error": resp})
}
