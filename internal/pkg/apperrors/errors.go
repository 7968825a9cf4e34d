package apperrors

import "errors"

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Authorization errors
var (
	ErrPermissionDenied = errors.New("permission denied")
)

// Student directory errors
var (
	ErrStudentNotFound  = errors.New("student not found")
	ErrDuplicateStudent = errors.New("student already exists in that group")
	ErrUpdateFailed     = errors.New("update did not modify any document")
)

// Validation errors
var (
	ErrValidationFailed = errors.New("validation failed")
)

// Storage errors.
// ErrStorageUnavailable covers timeouts and an unreachable document store;
// it is the only error kind that must also be logged for operators.
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}
