package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/spacewise-io/occupancy-engine/pkg/apperrors"
)

// ApiResponse is the JSON envelope every endpoint returns.
type ApiResponse struct {
	Success bool                   `json:"success"`
	Data    interface{}            `json:"data,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Details []apperrors.FieldError `json:"details,omitempty"`
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// ErrorResponse writes an error envelope and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, ApiResponse{Success: false, Error: message})
}

// ValidationErrorResponse writes a 400 envelope carrying per-field detail.
func ValidationErrorResponse(w http.ResponseWriter, message string, fields []apperrors.FieldError) error {
	return WriteJSON(w, http.StatusBadRequest, ApiResponse{
		Success: false,
		Error:   message,
		Details: fields,
	})
}
