// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ErrorCategory classifies command errors.
type ErrorCategory string

const (
	// CategoryValidation means the operator passed bad input and
	// should fix it and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryInternal means an unexpected failure: I/O errors, a
	// store that cannot be opened, a terminal that cannot be driven.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized command error. Use Validation or
// Internal rather than constructing one directly.
type ToolError struct {
	Category ErrorCategory
	Err      error

	// Hint is an optional next step for the operator, printed after a
	// blank line.
	Hint string
}

func (e *ToolError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

func (e *ToolError) Unwrap() error { return e.Err }

// WithHint sets the hint and returns e for chaining.
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// Validation creates a validation error.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
