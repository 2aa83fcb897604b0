package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Error codes for the auth service
const (
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	CodeInvalidFieldValue    = "INVALID_FIELD_VALUE"
	CodeUserNotFound         = "USER_NOT_FOUND"
	CodeUserAlreadyExists    = "USER_ALREADY_EXISTS"
	CodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	CodeDatabaseError        = "DATABASE_ERROR"
	CodeSystemError          = "SYSTEM_ERROR"
)

// Auth service specific errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrWrongPassword     = errors.New("wrong password")
	ErrDatabaseError     = errors.New("database operation failed")
	ErrSystemError       = errors.New("system error occurred")
)

// ErrorResponse represents the standardized error response format
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// AuthError wraps an underlying cause with a stable code and message.
type AuthError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// HandleServiceError maps service errors to HTTP responses. Unknown user and
// wrong password are reported as 400, not 401; clients depend on that
// contract.
func HandleServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrUserNotFound):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeUserNotFound,
			Message: "User not found",
		})
	case errors.Is(err, ErrWrongPassword):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeAuthenticationFailed,
			Message: "Wrong password",
		})
	case errors.Is(err, ErrUserAlreadyExists):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeUserAlreadyExists,
			Message: "User already exists",
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

// HandleValidationError handles validation errors with 400 Bad Request
func HandleValidationError(c *fiber.Ctx, message string, details ...string) error {
	response := ErrorResponse{
		Code:    CodeValidationFailed,
		Message: message,
	}

	if len(details) > 0 {
		response.Details = details[0]
	}

	return c.Status(http.StatusBadRequest).JSON(response)
}

// HandleMissingFieldError handles missing required field errors with 400 Bad Request
func HandleMissingFieldError(c *fiber.Ctx, fieldName string) error {
	message := fmt.Sprintf("Missing required field: %s", fieldName)
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeMissingRequiredField,
		Message: message,
	})
}

// HandleInvalidFieldError handles invalid field value errors with 400 Bad Request
func HandleInvalidFieldError(c *fiber.Ctx, fieldName string, reason string) error {
	message := fmt.Sprintf("Invalid %s: %s", fieldName, reason)
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeInvalidFieldValue,
		Message: message,
	})
}

// HandleSystemError handles system errors with 500 Internal Server Error
func HandleSystemError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Code:    CodeSystemError,
		Message: message,
	})
}

// WrapDatabaseError wraps database errors
func WrapDatabaseError(err error) *AuthError {
	return &AuthError{Code: CodeDatabaseError, Message: "Database operation failed", Cause: errors.Join(ErrDatabaseError, err)}
}

// WrapSystemError wraps system errors
func WrapSystemError(err error) *AuthError {
	return &AuthError{Code: CodeSystemError, Message: "System error occurred", Cause: errors.Join(ErrSystemError, err)}
}
