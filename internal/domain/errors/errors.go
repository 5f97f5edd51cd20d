package errors

import (
	"fmt"
	"net/http"

	"folks/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Machine-readable reason, e.g. "LoginError"
	Message() string   // User-facing message
	Details() string   // Detailed error information (optional, never sent for 5xx)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

func (e *BaseError) Message() string {
	return e.message
}

func (e *BaseError) Details() string {
	return e.details
}

// Predefined error types
var (
	// ErrLoginFailed is shared by "no such user" and "wrong password" so a
	// caller cannot tell which one happened.
	ErrLoginFailed = NewBaseError(
		http.StatusUnauthorized,
		"LoginError",
		"Incorrect username or password",
		"",
	)

	// ErrUnauthenticated covers every bearer-token failure: missing header,
	// wrong scheme, bad signature, wrong algorithm, expiry.
	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"AuthenticationError",
		"Unauthorized",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"ForbiddenError",
		"Cannot modify another user",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"NotFoundError",
		"User not found",
		"",
	)

	ErrInvalidInput = NewBaseError(
		http.StatusBadRequest,
		"BadRequest",
		"Invalid request body",
		"",
	)

	// ErrMissingCredentials answers a login body without a username or
	// password. It names no field.
	ErrMissingCredentials = NewBaseError(
		http.StatusBadRequest,
		"BadRequest",
		"Missing credentials",
		"",
	)

	ErrTooManyRequests = NewBaseError(
		http.StatusTooManyRequests,
		"RateLimitError",
		"Too many login attempts",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"InternalError",
		"Internal server error",
		"password hashing failed",
	)

	ErrTokenSigningFailed = NewBaseError(
		http.StatusInternalServerError,
		"InternalError",
		"Internal server error",
		"token signing failed",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"InternalError",
		"Internal server error",
		"",
	)

	// ErrUsernameTaken is the conflict raised when registering an existing
	// username. It keeps the ValidationError wire reason.
	ErrUsernameTaken = NewConflictError("username", "Username already taken")
)

// ValidationError is a client-fixable input defect located at one field.
type ValidationError struct {
	location string
	message  string
	conflict bool
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(location, message string) *ValidationError {
	return &ValidationError{location: location, message: message}
}

// NewConflictError creates a ValidationError that reports a uniqueness
// conflict rather than a malformed value.
func NewConflictError(location, message string) *ValidationError {
	return &ValidationError{location: location, message: message, conflict: true}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.location, e.message)
}

func (e *ValidationError) HTTPCode() int {
	return http.StatusUnprocessableEntity
}

func (e *ValidationError) ErrorCode() string {
	return "ValidationError"
}

func (e *ValidationError) Message() string {
	return e.message
}

func (e *ValidationError) Details() string {
	return ""
}

// Location names the offending field.
func (e *ValidationError) Location() string {
	return e.location
}

// IsConflict reports whether the value was well-formed but collides with stored data.
func (e *ValidationError) IsConflict() bool {
	return e.conflict
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

func (e *DatabaseExecuteError) ErrorCode() string {
	return "InternalError"
}

func (e *DatabaseExecuteError) Message() string {
	return "Internal server error"
}

func (e *DatabaseExecuteError) Details() string {
	return e.details
}
