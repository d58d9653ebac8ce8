// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ErrorCategory classifies command errors so callers and scripts can
// tell bad input from a missing resource or an internal failure
// without parsing message text.
type ErrorCategory string

const (
	// CategoryValidation indicates invalid input: missing names, an
	// unknown theme, unparseable flags.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced file or resource does not
	// exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryUnavailable indicates the host lacks a capability the
	// command needs, such as a browser or a clipboard.
	CategoryUnavailable ErrorCategory = "unavailable"

	// CategoryInternal indicates an unexpected failure: I/O errors,
	// encoder errors, bugs.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by commands. It wraps an
// inner error, so errors.Is and errors.As see through it.
type ToolError struct {
	// Category classifies the error for programmatic handling.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error

	// Hint is an optional next step shown after the message.
	Hint string
}

// Error returns the message, followed by the hint after a blank line
// when one is set.
func (e *ToolError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

// Unwrap returns the underlying error.
func (e *ToolError) Unwrap() error { return e.Err }

// WithHint sets the hint and returns the receiver for chaining.
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Unavailable creates an error for a missing host capability.
func Unavailable(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryUnavailable, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure, bug, or I/O error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
