package types

import (
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode is a typed string for categorizing application errors.
type ErrorCode string

// Error code constants. Handlers and services use these constants instead of
// hardcoded strings so HTTP mapping stays in one place.
const (
	// Validation (400)
	ErrCodeValidationMissingField ErrorCode = "validation_missing_required_field"
	ErrCodeValidationInvalidDate  ErrorCode = "validation_invalid_date"
	ErrCodeValidationInvalidCrop  ErrorCode = "validation_invalid_crop"
	ErrCodeValidationInvalidBody  ErrorCode = "validation_invalid_body"
	ErrCodeValidationStatus       ErrorCode = "validation_invalid_status"

	// Not Found (404)
	ErrCodeNotFoundCrop         ErrorCode = "not_found_crop"
	ErrCodeNotFoundTask         ErrorCode = "not_found_task"
	ErrCodeNotFoundSuggestion   ErrorCode = "not_found_suggestion"
	ErrCodeNotFoundNotification ErrorCode = "not_found_notification"

	// Internal/Upstream (500/502)
	ErrCodeInternalStore      ErrorCode = "internal_store_error"
	ErrCodeInternalUnexpected ErrorCode = "internal_unexpected_error"
	ErrCodeUpstreamWeather    ErrorCode = "upstream_weather_unavailable"
	ErrCodeUpstreamScheduler  ErrorCode = "upstream_scheduler_unavailable"
	ErrCodeUpstreamRateLimit  ErrorCode = "upstream_rate_limited"
)

// HTTPStatus maps an ErrorCode to its corresponding HTTP status code.
// Returns 500 for unrecognized codes as a safe default.
func (c ErrorCode) HTTPStatus() int {
	s := string(c)
	switch {
	case strings.HasPrefix(s, "validation_"):
		return http.StatusBadRequest
	case strings.HasPrefix(s, "not_found_"):
		return http.StatusNotFound
	case strings.HasPrefix(s, "upstream_"):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// AppError is the standard application error type. Domain and handler errors
// are expressed as AppError to enable consistent formatting, HTTP status
// mapping, and error chain support.
type AppError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Err     error          `json:"-"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status code corresponding to this error's code.
func (e *AppError) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// NewAppError creates a new AppError with the given code, message, and
// optional underlying error.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
