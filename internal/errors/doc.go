// Package apperrors defines structured application error types, separating
// recoverable conditions (an unavailable dataset) from fatal ones
// (configuration, simulation, rendering) and carrying the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All error types that hold a cause implement Unwrap() to support errors.Is()
// and errors.As().
package apperrors
