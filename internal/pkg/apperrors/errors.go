package apperrors

import "errors"

// Request errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
	ErrResourceNotFound = errors.New("resource not found")
)

// Backend errors. None of these reach the client beyond a generic 500 body.
var (
	ErrBackend        = errors.New("backend failure")
	ErrPoolExhausted  = errors.New("connection pool exhausted")
	ErrAcquireTimeout = errors.New("timed out waiting for a database connection")
	ErrPoolClosed     = errors.New("connection pool is closed")
)

// Session errors
var (
	ErrSessionMissing = errors.New("session not found")
	ErrSessionInvalid = errors.New("invalid session")
)

// NewBadRequestError creates a validation error carrying a client-safe message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewMalformedBodyError reports a request body that could not be decoded.
func NewMalformedBodyError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewNotFoundError creates a not-found error carrying a client-safe message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// IsBackend reports whether err belongs to the 500 class.
func IsBackend(err error) bool {
	return errors.Is(err, ErrBackend) ||
		errors.Is(err, ErrPoolExhausted) ||
		errors.Is(err, ErrAcquireTimeout) ||
		errors.Is(err, ErrPoolClosed)
}

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

// PublicMessage returns the message safe to show a client, or fallback when
// err carries none.
func PublicMessage(err error, fallback string) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}
