// Package errors provides error handling for superfastgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for user-facing messages
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrConflictingMarkers) {
//	    // handle marker conflict
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Common sentinel errors for use across superfastgen.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrConflictingMarkers indicates a declaration carries markers that map
	// to mutually exclusive generation variants
	ErrConflictingMarkers = New("conflicting markers")

	// ErrUnsupportedType indicates a field or parameter type no emitter
	// strategy can resolve
	ErrUnsupportedType = New("unsupported type")

	// ErrUnwritableOutput indicates a generated file could not be written
	ErrUnwritableOutput = New("output not writable")

	// ErrNoProject indicates no Flutter project root (pubspec.yaml + lib/)
	// could be located
	ErrNoProject = New("no Flutter project found")
)

// IsConflictError checks if an error is or wraps ErrConflictingMarkers
func IsConflictError(err error) bool {
	return err != nil && Is(err, ErrConflictingMarkers)
}

// IsUnsupportedTypeError checks if an error is or wraps ErrUnsupportedType
func IsUnsupportedTypeError(err error) bool {
	return err != nil && Is(err, ErrUnsupportedType)
}

// IsWriteError checks if an error is or wraps ErrUnwritableOutput
func IsWriteError(err error) bool {
	return err != nil && Is(err, ErrUnwritableOutput)
}
