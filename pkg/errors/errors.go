package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Manifest errors. Both are fatal and raised before any filesystem mutation.
	ErrConfigNotFound  ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigMalformed ErrorCode = "CONFIG_MALFORMED"

	// Settings errors (nedots.toml, NEDOTS_* variables, flags)
	ErrSettingsInvalid ErrorCode = "SETTINGS_INVALID"

	// Apply/capture errors
	ErrCopyFailed           ErrorCode = "COPY_FAILED"
	ErrPackageManagerFailed ErrorCode = "PACKAGE_MANAGER_FAILED"
	ErrToolMissing          ErrorCode = "TOOL_MISSING"

	// Repository history errors (git add/commit/push after a capture)
	ErrGitFailed ErrorCode = "GIT_FAILED"
)

// NedotsError represents a structured error with code and details
type NedotsError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *NedotsError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *NedotsError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a NedotsError with the same code
func (e *NedotsError) Is(target error) bool {
	var targetErr *NedotsError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new NedotsError with the given code and message
func New(code ErrorCode, message string) *NedotsError {
	return &NedotsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new NedotsError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *NedotsError {
	return &NedotsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a NedotsError
func Wrap(err error, code ErrorCode, message string) *NedotsError {
	if err == nil {
		return nil
	}
	return &NedotsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *NedotsError {
	if err == nil {
		return nil
	}
	return &NedotsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *NedotsError) WithDetail(key string, value interface{}) *NedotsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var nerr *NedotsError
	if errors.As(err, &nerr) {
		return nerr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a NedotsError
func GetErrorCode(err error) ErrorCode {
	var nerr *NedotsError
	if errors.As(err, &nerr) {
		return nerr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a NedotsError
func GetErrorDetails(err error) map[string]interface{} {
	var nerr *NedotsError
	if errors.As(err, &nerr) {
		return nerr.Details
	}
	return nil
}
