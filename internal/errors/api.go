package errors

import (
	"net/http"

	"github.com/go-chi/render"
)

// APIError is a structured error response for the report API.
type APIError struct {
	StatusCode int    `json:"status_code"`
	ErrorCode  string `json:"error_code"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// NewAPIError creates a new APIError.
func NewAPIError(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// APINotFound creates a 404 response for a missing resource.
func APINotFound(message string) *APIError {
	return NewAPIError(http.StatusNotFound, "NOT_FOUND", message)
}

// APIInternal creates a 500 response.
func APIInternal(message string) *APIError {
	return NewAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}
