package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Stable machine-readable error codes surfaced to clients.
const (
	CodeValidation        = "validation_error"
	CodeBookingConflict   = "booking_conflict"
	CodeNotFound          = "not_found"
	CodeInvalidTransition = "invalid_status_transition"
	CodeNotEligible       = "review_not_eligible"
	CodeDuplicateReview   = "duplicate_review"
	CodeDependencyTimeout = "dependency_timeout"
	CodeDependencyError   = "dependency_error"
	CodeInternal          = "internal_error"
)

// AppError is a business-rule or dependency failure that maps onto an
// HTTP response. Anything that is not an AppError is treated as an
// unexpected internal error and its details are suppressed.
type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// NewAppError builds an AppError with an explicit status and code.
func NewAppError(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

// ValidationError marks malformed or out-of-range input (HTTP 400).
func ValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeValidation, message)
}

// NotFoundError marks an unknown resource id (HTTP 404).
func NotFoundError(resource string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, resource+" not found")
}

// ConflictError marks an overlapping booking (HTTP 409).
func ConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeBookingConflict, message)
}

// WriteError maps any error onto the uniform JSON envelope. Unexpected
// errors become a generic 500 so internals never leak to clients.
func WriteError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, ErrorResponse{Error: appErr.Message, Code: appErr.Code})
		return
	}
	GetLogger().Error("unexpected error", zap.Error(err), zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: "An internal server error occurred",
		Code:  CodeInternal,
	})
}
