package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes used across the service and handler layers.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeDuplicateEmail   = "DUPLICATE_EMAIL"
	CodeInvalidCreds     = "INVALID_CREDENTIALS"
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeUnsupportedMedia = "UNSUPPORTED_MEDIA_TYPE"
	CodePayloadTooLarge  = "PAYLOAD_TOO_LARGE"
	CodeInternal         = "INTERNAL_ERROR"
)

// ErrorResponse is the uniform error envelope returned by every endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a classified application error.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors

func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

func NewDuplicateEmailError() *AppError {
	return &AppError{Code: CodeDuplicateEmail, Message: "User with this email already exists"}
}

func NewInvalidCredentialsError() *AppError {
	// Unknown email and wrong password must be indistinguishable outward.
	return &AppError{Code: CodeInvalidCreds, Message: "Incorrect email or password"}
}

func NewUnauthenticatedError(message string) *AppError {
	return &AppError{Code: CodeUnauthenticated, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf("%s with ID %v not found", resource, id)}
}

func NewUnsupportedMediaTypeError(message string) *AppError {
	return &AppError{Code: CodeUnsupportedMedia, Message: message}
}

func NewPayloadTooLargeError(message string) *AppError {
	return &AppError{Code: CodePayloadTooLarge, Message: message}
}

func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "Internal server error", Err: err}
}

// StatusForError maps an application error to an HTTP status code.
func StatusForError(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation, CodeDuplicateEmail, CodeUnsupportedMedia, CodePayloadTooLarge:
		return fiber.StatusBadRequest
	case CodeInvalidCreds, CodeUnauthenticated:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError writes the uniform error envelope for the given status.
// Internal details are only attached outside production mode.
func RespondWithError(c *fiber.Ctx, status int, err error, exposeDetails bool) error {
	response := ErrorResponse{Success: false}

	var appErr *AppError
	if errors.As(err, &appErr) {
		response.Error = appErr.Message
		response.Code = appErr.Code
		if appErr.Err != nil && exposeDetails {
			response.Details = appErr.Err.Error()
		}
	} else if exposeDetails {
		response.Error = err.Error()
	} else {
		response.Error = "Internal server error"
	}

	return c.Status(status).JSON(response)
}

// RespondWithAppError maps the error to its status and writes the envelope.
func RespondWithAppError(c *fiber.Ctx, err error, exposeDetails bool) error {
	return RespondWithError(c, StatusForError(err), err, exposeDetails)
}
