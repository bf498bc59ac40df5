package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in the context lifecycle the error occurred
type Phase string

const (
	PhaseCreate   Phase = "create"   // context creation
	PhaseActivate Phase = "activate" // suspended -> active transition
	PhaseLoad     Phase = "load"     // engine library loading
	PhaseSettings Phase = "settings" // ini settings passthrough
	PhaseConfig   Phase = "config"   // configuration parsing
)

// Kind categorizes the error
type Kind string

const (
	KindContextActive      Kind = "context_active"
	KindLibraryUnavailable Kind = "library_unavailable"
	KindSymbolMissing      Kind = "symbol_missing"
	KindUnsupported        Kind = "unsupported"
	KindInvalidInput       Kind = "invalid_input"
	KindNotFound           Kind = "not_found"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Convenience constructors for common error patterns

// ContextActive reports that an operation requiring no current context found
// one. Recoverable: retry after the current context is suspended or destroyed.
func ContextActive(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindContextActive,
		Detail: "another context is already current",
	}
}

// IsContextActive reports whether err is a context-contention error from any
// phase.
func IsContextActive(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindContextActive
}

// LibraryUnavailable creates an engine library loading error
func LibraryUnavailable(path string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindLibraryUnavailable,
		Detail: fmt.Sprintf("open %q", path),
		Cause:  cause,
	}
}

// SymbolMissing creates an error for an engine library that lacks a required export
func SymbolMissing(name string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindSymbolMissing,
		Detail: fmt.Sprintf("symbol %q not exported", name),
		Cause:  cause,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
