// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keepsake

import "errors"

// ErrNamesRequired is returned by Generate when either trimmed name is
// empty.
var ErrNamesRequired = errors.New("first and last name required")

var (
	ErrUnknownTheme  = errors.New("unknown theme")
	ErrUnknownFormat = errors.New("unknown format")
)

// Kind classifies failures so callers can choose how to present them.
type Kind string

const (
	// KindValidation is a user-correctable input problem.
	KindValidation Kind = "validation"

	// KindExport is a render, rasterize, or file write failure.
	KindExport Kind = "export"

	// KindShare is a failure handing the ticket to the platform.
	KindShare Kind = "share"
)

// Error is the error type returned by ViewModel and Exporter
// operations.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of the first *Error in err's chain, or ""
// if there is none.
func KindOf(err error) Kind {
	var keepsakeErr *Error
	if errors.As(err, &keepsakeErr) {
		return keepsakeErr.Kind
	}
	return ""
}
