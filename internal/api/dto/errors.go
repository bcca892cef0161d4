package dto

import (
	"errors"
	"net/http"

	"github.com/eshaffer321/ateema-proposal-engine/internal/application/service"
)

// APIError is the body of every non-2xx response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeNotFound      = "not_found"
	ErrCodeBadRequest    = "bad_request"
	ErrCodeInternalError = "internal_error"
	ErrCodeValidation    = "validation_error"
	ErrCodeNoCandidates  = "no_candidates"
)

// NewAPIError creates a new APIError with the given code and message.
func NewAPIError(code, message string) APIError {
	return APIError{Code: code, Message: message}
}

// NotFoundError reports a missing product or proposal.
func NotFoundError(resource string) APIError {
	return NewAPIError(ErrCodeNotFound, resource+" not found")
}

// BadRequestError reports a body that could not be bound.
func BadRequestError(message string) APIError {
	return NewAPIError(ErrCodeBadRequest, message)
}

// InternalError hides the cause; handlers log it instead.
func InternalError() APIError {
	return NewAPIError(ErrCodeInternalError, "an internal error occurred")
}

// ValidationError reports a well-formed request with bad values.
func ValidationError(message string) APIError {
	return NewAPIError(ErrCodeValidation, message)
}

// FromServiceError maps a proposal service error to an HTTP status and body.
// Unknown errors become 500 with a generic message.
func FromServiceError(err error) (int, APIError) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest, ValidationError(err.Error())
	case errors.Is(err, service.ErrNoCandidates):
		return http.StatusBadRequest, NewAPIError(ErrCodeNoCandidates, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, NotFoundError("proposal")
	default:
		return http.StatusInternalServerError, InternalError()
	}
}
