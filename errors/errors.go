// Package errors provides error handling for declgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Sentinel marking for the run-level error taxonomy
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
//	// Classify against the run-level taxonomy
//	if errors.Is(err, errors.ErrConfiguration) {
//	    // bad override file
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
	Is         = crdb.Is
	IsAny      = crdb.IsAny
	As         = crdb.As
	Unwrap     = crdb.Unwrap
	UnwrapOnce = crdb.UnwrapOnce
	UnwrapAll  = crdb.UnwrapAll
	Mark       = crdb.Mark
)

// Run-level error taxonomy.
//
// ErrInputRead and ErrConfiguration are fatal: the run aborts before any
// artifact is produced. ErrMalformedDeclaration is recoverable: the offending
// declaration is skipped and processing continues, so it never surfaces from
// a pipeline entry point. Callers that inspect skip reasons can still match
// against it.
var (
	// ErrInputRead marks failures reading a schema source file.
	ErrInputRead = crdb.New("input read error")

	// ErrConfiguration marks a typemap override file that could not be
	// parsed or whose top level is not a flat object.
	ErrConfiguration = crdb.New("configuration error")

	// ErrMalformedDeclaration marks a declaration missing required
	// structural parts (a table without columns, an enum without values).
	ErrMalformedDeclaration = crdb.New("malformed declaration")
)
