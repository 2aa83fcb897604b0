package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Error codes for the bookmark service
const (
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	CodeBookmarkNotFound     = "BOOKMARK_NOT_FOUND"
	CodeDuplicateBookmark    = "DUPLICATE_BOOKMARK"
	CodeDatabaseError        = "DATABASE_ERROR"
	CodeSystemError          = "SYSTEM_ERROR"
)

// Bookmark service specific errors
var (
	ErrBookmarkNotFound  = errors.New("bookmark not found")
	ErrDuplicateBookmark = errors.New("bookmark already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDatabaseError     = errors.New("database operation failed")
)

// ErrorResponse represents the standardized error response format
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ValidationError carries the offending field for a 400 response.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NewValidationError builds a field-level validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// HandleServiceError maps service errors to HTTP responses: validation 400,
// duplicates 409, missing records 404, everything else a generic 500.
func HandleServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeValidationFailed,
			Message: validationErr.Error(),
		})
	}

	switch {
	case errors.Is(err, ErrDuplicateBookmark):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Code:    CodeDuplicateBookmark,
			Message: "Bookmark already exists",
		})
	case errors.Is(err, ErrBookmarkNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeBookmarkNotFound,
			Message: "Bookmark not found",
		})
	case errors.Is(err, ErrInvalidInput):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeValidationFailed,
			Message: err.Error(),
		})
	case errors.Is(err, ErrDatabaseError):
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    CodeDatabaseError,
			Message: "Database operation failed",
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    CodeSystemError,
			Message: "An unexpected error occurred",
		})
	}
}

// HandleMissingFieldError handles missing required field errors with 400 Bad Request
func HandleMissingFieldError(c *fiber.Ctx, fieldName string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeMissingRequiredField,
		Message: fmt.Sprintf("Missing required field: %s", fieldName),
	})
}

// HandleValidationError handles validation errors with 400 Bad Request
func HandleValidationError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeValidationFailed,
		Message: message,
	})
}

// WrapDatabaseError wraps database errors
func WrapDatabaseError(err error) error {
	return fmt.Errorf("%w: %v", ErrDatabaseError, err)
}
