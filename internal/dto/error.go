package dto

import "time"

// ErrorResponse is the uniform error envelope returned by every failing
// endpoint. ValidationErrors is only populated for validation failures.
type ErrorResponse struct {
	Timestamp        time.Time         `json:"timestamp"`
	Status           int               `json:"status"`
	Error            string            `json:"error"`
	Message          string            `json:"message"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

// NewErrorResponse builds an ErrorResponse stamped with the current time.
func NewErrorResponse(status int, category, message string) ErrorResponse {
	return ErrorResponse{
		Timestamp: time.Now(),
		Status:    status,
		Error:     category,
		Message:   message,
	}
}

// NewValidationErrorResponse builds the 400 envelope carrying per-field
// validation messages.
func NewValidationErrorResponse(status int, fieldErrors map[string]string) ErrorResponse {
	resp := NewErrorResponse(status, "Validation Error", "Invalid request parameters")
	resp.ValidationErrors = fieldErrors
	return resp
}
