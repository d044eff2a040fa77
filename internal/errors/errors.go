package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeConflict indicates a conflict with existing data (e.g., unique constraint violation).
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeUnauthorized indicates a missing or invalid session.
	ErrCodeUnauthorized ErrorCode = "unauthorized"
	// ErrCodeUpstream indicates the identity provider rejected or failed a call.
	ErrCodeUpstream ErrorCode = "upstream"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the request context was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
	// ErrCodeForeignKey indicates a foreign key constraint violation.
	ErrCodeForeignKey ErrorCode = "foreign_key"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message safe to show a client
	Message string
	// Field names the input field the error relates to, when known.
	Field string
	// Cause is the underlying error that caused this error (optional).
	// Upstream causes may contain provider detail and must only be logged.
	Cause error
	// UpstreamStatus carries the provider's HTTP status for upstream errors
	// whose status the handler mirrors (0 otherwise).
	UpstreamStatus int
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: message,
	}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// Conflict creates a new Conflict error.
func Conflict(message string) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: message,
	}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// ValidationField creates a Validation error attributed to a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// ForeignKey creates a new ForeignKey error.
func ForeignKey(message string) *AppError {
	return &AppError{
		Code:    ErrCodeForeignKey,
		Message: message,
	}
}

// Unauthorized creates a new Unauthorized error.
func Unauthorized(message string) *AppError {
	return &AppError{
		Code:    ErrCodeUnauthorized,
		Message: message,
	}
}

// Upstream wraps a provider failure. The message stays generic; the cause
// holds the raw provider detail for server-side logging only.
func Upstream(status int, message string, cause error) *AppError {
	return &AppError{
		Code:           ErrCodeUpstream,
		Message:        message,
		Cause:          cause,
		UpstreamStatus: status,
	}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsConflict checks if an error is a Conflict error.
func IsConflict(err error) bool {
	return isCode(err, ErrCodeConflict)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsUnauthorized checks if an error is an Unauthorized error.
func IsUnauthorized(err error) bool {
	return isCode(err, ErrCodeUnauthorized)
}

// IsUpstream checks if an error is an Upstream error.
func IsUpstream(err error) bool {
	return isCode(err, ErrCodeUpstream)
}

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool {
	return isCode(err, ErrCodeTimeout)
}

// IsCanceled checks if an error is a Canceled error.
func IsCanceled(err error) bool {
	return isCode(err, ErrCodeCanceled)
}

// IsForeignKey checks if an error is a ForeignKey error.
func IsForeignKey(err error) bool {
	return isCode(err, ErrCodeForeignKey)
}

// IsInternal checks if an error is an Internal error.
func IsInternal(err error) bool {
	return isCode(err, ErrCodeInternal)
}

// GetField returns the field name from an AppError, or empty string if absent.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// UpstreamStatusOf returns the mirrored provider status for upstream errors,
// or 0 when the error is not upstream.
func UpstreamStatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code == ErrCodeUpstream {
		return appErr.UpstreamStatus
	}
	return 0
}
