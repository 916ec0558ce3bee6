// Package errors provides error handling for the transpiler.
//
// It re-exports github.com/cockroachdb/errors so every package gets stack
// traces, wrapping, and assertion failures through one import:
//
//	if err := emitType(t); err != nil {
//	    return errors.Wrapf(err, "emitting %s", t.Qname)
//	}
//
//	// transpiler bugs (violated invariants) are assertion failures
//	return errors.AssertionFailedf("closure %d referenced before registration", id)
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New         = crdb.New
	Newf        = crdb.Newf
	Wrap        = crdb.Wrap
	Wrapf       = crdb.Wrapf
	WithStack   = crdb.WithStack
	WithMessage = crdb.WithMessage
)

// Error inspection
var (
	Is     = crdb.Is
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// Invariant violations. An assertion failure anywhere in emission indicates a
// transpiler bug, never bad input.
var (
	AssertionFailedf  = crdb.AssertionFailedf
	HasAssertionFailure = crdb.HasAssertionFailure
)

// User-facing hints surfaced by the CLI on fatal pod failures.
var (
	WithHint  = crdb.WithHint
	WithHintf = crdb.WithHintf
)
