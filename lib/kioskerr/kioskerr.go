// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package kioskerr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind string

const (
	KindConfig   Kind = "config"
	KindFormat   Kind = "format"
	KindProtocol Kind = "protocol"
	KindNetwork  Kind = "network"
)

// Error wraps an underlying error with its Kind. The message is the
// underlying error's message; the kind travels separately so the text
// shown on the kiosk screen stays human-readable.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same Kind, so callers can write
// errors.Is(err, &kioskerr.Error{Kind: kioskerr.KindFormat}).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Err == nil && other.Kind == e.Kind
}

// Config creates a configuration error.
func Config(format string, args ...any) *Error {
	return &Error{Kind: KindConfig, Err: fmt.Errorf(format, args...)}
}

// Format creates a token format error.
func Format(format string, args ...any) *Error {
	return &Error{Kind: KindFormat, Err: fmt.Errorf(format, args...)}
}

// Protocol creates a protocol error.
func Protocol(format string, args ...any) *Error {
	return &Error{Kind: KindProtocol, Err: fmt.Errorf(format, args...)}
}

// Network creates a transport error.
func Network(format string, args ...any) *Error {
	return &Error{Kind: KindNetwork, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the Kind of the first *Error in err's chain, or ""
// if there is none.
func KindOf(err error) Kind {
	var kioskErr *Error
	if errors.As(err, &kioskErr) {
		return kioskErr.Kind
	}
	return ""
}

// IsKind reports whether err's chain contains an *Error of kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
