// Package errors provides structured error types for the plugin bridge.
//
// Errors are categorized by Phase (which bridge operation failed) and
// Kind (error category). Every Kind maps onto exactly one wire
// abi.ErrorCode, so a trampoline can translate any *Error into the
// (code, message) pair the error channel carries.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseMutate, errors.KindInvalidMove).
//		Detail("can subtract at most %d", max).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidInput(errors.PhaseCreate, "missing starting counter")
//	err := errors.Unsupported(errors.PhaseQuery, "print")
//
// All errors implement the standard error interface and support
// errors.Is/As.
package errors
