package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// DatasetUnavailableError reports that a persisted results table could not be
// used, either because it is missing or because it does not parse. It is the
// only recoverable error of the pipeline: callers fall back to generating a
// fresh dataset instead of failing.
type DatasetUnavailableError struct {
	// Path is the file that could not be loaded.
	Path string
	// Cause is the underlying I/O or parse error.
	Cause error
}

// Error returns a formatted message naming the dataset and its cause.
func (e DatasetUnavailableError) Error() string {
	return fmt.Sprintf("dataset %q unavailable: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying cause.
func (e DatasetUnavailableError) Unwrap() error { return e.Cause }

// IsDatasetUnavailable reports whether err carries a DatasetUnavailableError.
func IsDatasetUnavailable(err error) bool {
	var target DatasetUnavailableError
	return errors.As(err, &target)
}

// SimulationError encapsulates a Monte Carlo simulation failure while
// preserving the original cause.
type SimulationError struct {
	// Region is the sampling region being simulated when the failure occurred.
	Region string
	// Cause is the underlying error that triggered this simulation error.
	Cause error
}

// Error returns the region and the message of the underlying cause.
func (e SimulationError) Error() string {
	return fmt.Sprintf("simulation of %s region failed: %v", e.Region, e.Cause)
}

// Unwrap returns the original wrapped error.
func (e SimulationError) Unwrap() error { return e.Cause }

// RenderError reports a failure to produce one of the image artifacts.
type RenderError struct {
	// Artifact is the file name of the image being produced.
	Artifact string
	// Cause is the underlying drawing or I/O error.
	Cause error
}

// Error returns a formatted message describing the failed artifact.
func (e RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Artifact, e.Cause)
}

// Unwrap returns the underlying cause.
func (e RenderError) Unwrap() error { return e.Cause }

// TimeoutError represents a run that exceeded its configured time limit.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error returned by the pipeline to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cfgErr ConfigError
	var timeoutErr TimeoutError
	switch {
	case errors.As(err, &cfgErr):
		return ExitErrorConfig
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}
