// Package errors provides the typed error taxonomy for the trashapp API.
// All service-layer failures are AppErrors so the handler layer can map
// them to consistent HTTP responses without leaking internal details.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, optional per-field details,
// and an optional wrapped internal error.
type AppError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	StatusCode int               `json:"-"`
	Internal   error             `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap returns a copy of the error carrying an internal cause. The
// sentinel itself is never mutated.
func (e *AppError) Wrap(internal error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		Details:    e.Details,
		StatusCode: e.StatusCode,
		Internal:   internal,
	}
}

// WithMessage returns a copy of the error with a custom message.
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    message,
		StatusCode: e.StatusCode,
		Internal:   e.Internal,
	}
}

// WithDetails returns a copy of the error carrying per-field details.
func (e *AppError) WithDetails(details map[string]string) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		Details:    details,
		StatusCode: e.StatusCode,
		Internal:   e.Internal,
	}
}

// Duplicate builds a 409 DUPLICATE_ERROR naming the offending field.
func Duplicate(field string) *AppError {
	return &AppError{
		Code:       "DUPLICATE_ERROR",
		Message:    field + " already exists",
		Details:    map[string]string{field: field + " must be unique"},
		StatusCode: http.StatusConflict,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "UNAUTHORIZED", Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
	ErrInvalidToken       = &AppError{Code: "UNAUTHORIZED", Message: "Invalid or expired token", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Account is temporarily locked due to too many failed login attempts", StatusCode: http.StatusLocked}
)

// General errors.
var (
	ErrInvalidInput    = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrValidation      = &AppError{Code: "VALIDATION_ERROR", Message: "Validation failed", StatusCode: http.StatusUnprocessableEntity}
	ErrNotFound        = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer  = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
	ErrInvalidPage     = &AppError{Code: "INVALID_PAGE", Message: "Page number must be greater than 0", StatusCode: http.StatusBadRequest}
	ErrInvalidPageSize = &AppError{Code: "INVALID_PAGE_SIZE", Message: "Page size must be between 1 and 100", StatusCode: http.StatusBadRequest}
)

// User errors.
var (
	ErrUserNotFound     = &AppError{Code: "NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrWrongPassword    = &AppError{Code: "INVALID_PASSWORD", Message: "Current password is incorrect", StatusCode: http.StatusBadRequest}
	ErrAlreadyVerified  = &AppError{Code: "ALREADY_VERIFIED", Message: "Email is already verified", StatusCode: http.StatusBadRequest}
	ErrInvalidUserToken = &AppError{Code: "INVALID_TOKEN", Message: "Invalid or expired verification token", StatusCode: http.StatusBadRequest}
)

// Pickup errors.
var (
	ErrPickupNotFound = &AppError{Code: "NOT_FOUND", Message: "Pickup not found", StatusCode: http.StatusNotFound}
	ErrInvalidStatus  = &AppError{Code: "INVALID_STATUS", Message: "Pickup status does not allow this operation", StatusCode: http.StatusBadRequest}
	ErrInvalidDate    = &AppError{Code: "INVALID_DATE", Message: "Pickup date cannot be in the past", StatusCode: http.StatusBadRequest}
	ErrInvalidRating  = &AppError{Code: "INVALID_RATING", Message: "Rating must be between 1 and 5", StatusCode: http.StatusBadRequest}
	ErrNoPhotos       = &AppError{Code: "NO_PHOTOS", Message: "No photos uploaded", StatusCode: http.StatusBadRequest}
	ErrNoDriver       = &AppError{Code: "NO_DRIVER", Message: "No driver assigned to this pickup", StatusCode: http.StatusBadRequest}
)

// Recurring schedule errors.
var (
	ErrScheduleNotFound  = &AppError{Code: "NOT_FOUND", Message: "Recurring schedule not found", StatusCode: http.StatusNotFound}
	ErrMissingDayOfWeek  = &AppError{Code: "MISSING_DAY_OF_WEEK", Message: "Day of week is required for weekly and biweekly schedules", StatusCode: http.StatusBadRequest}
	ErrMissingDayOfMonth = &AppError{Code: "MISSING_DAY_OF_MONTH", Message: "Day of month is required for monthly schedules", StatusCode: http.StatusBadRequest}
)
