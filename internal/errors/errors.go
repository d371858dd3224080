package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit codes.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Unclassified failure.
	ExitErrorTimeout  = 2   // The computation exceeded its timeout.
	ExitErrorMismatch = 3   // Calculators disagreed on the product.
	ExitErrorConfig   = 4   // Invalid flags, environment or input values.
	ExitErrorCanceled = 130 // Interrupted (SIGINT convention).
)

// ConfigError reports an invalid flag, environment variable or combination
// of settings.
type ConfigError struct {
	// Message explains what is wrong with the configuration.
	Message string
}

// Error returns the message.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A ConfigError holding the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError reports a single input value that was rejected at the
// boundary, such as a non-positive thread count or a malformed integer.
type ValidationError struct {
	// Field names the rejected input (e.g. "threads", "start").
	Field string
	// Message explains why the value was rejected.
	Message string
	// Cause is the underlying parse error, if any.
	Cause error
}

// Error returns a message naming the field.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// Unwrap returns the underlying parse error, if any.
func (e ValidationError) Unwrap() error { return e.Cause }

// NewValidationError creates a ValidationError for field with a formatted
// message.
func NewValidationError(field, format string, a ...any) error {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, a...)}
}

// CalculationError wraps the failure that aborted a range product
// computation. Partial products are never returned alongside it.
type CalculationError struct {
	// Calculator is the name of the calculator that failed (may be empty).
	Calculator string
	// Cause is the underlying error.
	Cause error
}

// Error returns the cause message, prefixed by the calculator name when set.
func (e CalculationError) Error() string {
	if e.Calculator == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Calculator, e.Cause)
}

// Unwrap returns the underlying cause so callers can match context errors.
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError reports that an operation ran past its configured limit.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the configured timeout.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// Unwrap reports context.DeadlineExceeded so timeouts match errors.Is checks.
func (e TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// WrapError adds context to err with fmt.Errorf and %w. It returns nil when
// err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err is (or wraps) a context cancellation or
// deadline error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
