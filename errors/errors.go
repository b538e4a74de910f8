package errors

import (
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ValidationError          ErrorType = "VALIDATION_ERROR"
	NotFoundError            ErrorType = "NOT_FOUND"
	AuthError                ErrorType = "AUTHENTICATION_ERROR"
	DatabaseError            ErrorType = "DATABASE_ERROR"
	ServerError              ErrorType = "SERVER_ERROR"
	ForbiddenError           ErrorType = "FORBIDDEN"
	ConflictError            ErrorType = "CONFLICT"
	RateLimitError           ErrorType = "RATE_LIMIT_EXCEEDED"
	OverAllocatedError       ErrorType = "OVER_ALLOCATED"
	UnallocatedRemainderType ErrorType = "UNALLOCATED_REMAINDER"
)

// AppError represents a structured application error.
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the wrapped raw error to errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the HTTP status for this error, defaulting to 500.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus == 0 {
		return http.StatusInternalServerError
	}
	return e.HTTPStatus
}

// New creates a new AppError.
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context.
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// Helper functions for common errors

func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Detail:     fmt.Sprintf("ID: %v", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func ValidationFailed(message string, details string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

func AuthenticationFailed(message string) *AppError {
	return &AppError{
		Type:       AuthError,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

func NewDatabaseError(err error) *AppError {
	// Sanitized message; the raw error stays attached for logging upstream.
	return &AppError{
		Type:       DatabaseError,
		Message:    "Database operation failed",
		Detail:     "Please try again later",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

func Forbidden(message string, details string) *AppError {
	return &AppError{
		Type:       ForbiddenError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusForbidden,
	}
}

func NewConflictError(message string, detail string) *AppError {
	return &AppError{
		Type:       ConflictError,
		Message:    message,
		Detail:     detail,
		HTTPStatus: http.StatusConflict,
	}
}

func RateLimitExceeded(message string, retryAfterSeconds int) *AppError {
	return &AppError{
		Type:       RateLimitError,
		Message:    message,
		Detail:     fmt.Sprintf("Retry after %d seconds", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// OverAllocated signals that a plan's fixed amounts exceed its total. Never
// clamped: the exact-coverage invariant would break silently otherwise.
func OverAllocated(fixedTotal, total int64) *AppError {
	return &AppError{
		Type:       OverAllocatedError,
		Message:    "Fixed amounts exceed the plan total",
		Detail:     fmt.Sprintf("fixed amounts sum to %d but the total is %d", fixedTotal, total),
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// UnallocatedRemainder signals that part of the total could not be distributed
// because every proportional weight was zero. The remainder is reported so the
// caller decides how to present it.
func UnallocatedRemainder(remainder int64) *AppError {
	return &AppError{
		Type:       UnallocatedRemainderType,
		Message:    "Part of the total could not be allocated",
		Detail:     fmt.Sprintf("remainder of %d with no positive multipliers", remainder),
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

func PlanNotFound(id string) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    "Plan not found",
		Detail:     fmt.Sprintf("Plan ID: %s", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func ScheduleEventNotFound(id string) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    "Schedule event not found",
		Detail:     fmt.Sprintf("Schedule event ID: %s", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case AuthError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case ConflictError:
		return http.StatusConflict
	case RateLimitError:
		return http.StatusTooManyRequests
	case OverAllocatedError, UnallocatedRemainderType:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
