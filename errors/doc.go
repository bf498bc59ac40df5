// Package errors provides structured error types for the gui-runtime library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category), with an optional human-readable detail and cause chain.
//
// Use the convenience constructors for common patterns:
//
//	err := errors.ContextActive(errors.PhaseCreate)
//	err := errors.SymbolMissing("guirt_create_context", cause)
//
// Context contention is the one error callers routinely branch on; test for
// it across phases with IsContextActive:
//
//	if errors.IsContextActive(err) {
//		// suspend or destroy the current context, then retry
//	}
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
