// Package errors provides structured error handling for the property grid.
//
// Errors fall into four families. Conversion failures are recovered locally by
// rolling a property back and are never returned to the host. Validation
// failures are attached to a property as a non-fatal error list. Enumeration
// failures exclude a single property from a bind. Editor resolution failures
// are configuration mistakes and abort the bind.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConversion indicates an input that could not be coerced to a declared type.
	KindConversion
	// KindValidation indicates a host validator rejected a value.
	KindValidation
	// KindEnumeration indicates a property could not be reflected or read.
	KindEnumeration
	// KindEditor indicates an editor could not be resolved or instantiated.
	KindEditor
	// KindMetadata indicates malformed metadata.
	KindMetadata
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConversion:
		return "conversion"
	case KindValidation:
		return "validation"
	case KindEnumeration:
		return "enumeration"
	case KindEditor:
		return "editor"
	case KindMetadata:
		return "metadata"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinel errors matched with errors.Is.
var (
	ErrNotConvertible = stderrors.New("value not convertible")
	ErrOutOfRange     = stderrors.New("value out of range")
	ErrReadOnly       = stderrors.New("property is read-only")
	ErrUnknownEditor  = stderrors.New("unknown editor")
	ErrNotEditor      = stderrors.New("value does not implement the editor contract")
)

// Is, As and New re-export the standard helpers so callers importing this
// package under its own name keep access to them.
var (
	Is  = stderrors.Is
	As  = stderrors.As
	New = stderrors.New
)

// GridError represents a structured error raised by the grid.
type GridError struct {
	// Op is the operation that failed (e.g., "model.Source.Bind").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Property is the property name, if applicable.
	Property string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *GridError) Error() string {
	if e.Property != "" {
		return fmt.Sprintf("%s [%s] property=%s: %v", e.Op, e.Kind, e.Property, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *GridError) Unwrap() error {
	return e.Err
}

// ConversionError reports an input that could not be coerced into a type.
type ConversionError struct {
	// Input is the value that was offered.
	Input any
	// Type is the name of the declared type.
	Type string
	// Err is the underlying cause, usually wrapping ErrNotConvertible or ErrOutOfRange.
	Err error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot convert %v (%T) to %s: %v", e.Input, e.Input, e.Type, e.Err)
	}
	return fmt.Sprintf("cannot convert %v (%T) to %s", e.Input, e.Input, e.Type)
}

func (e *ConversionError) Unwrap() error {
	if e.Err == nil {
		return ErrNotConvertible
	}
	return e.Err
}

// EditorError reports a failure to resolve or instantiate an editor.
type EditorError struct {
	// Editor is the editor identifier that was requested.
	Editor string
	// Property is the property the editor was requested for.
	Property string
	// Err is the underlying error.
	Err error
}

func (e *EditorError) Error() string {
	return fmt.Sprintf("editor %q for property %q: %v", e.Editor, e.Property, e.Err)
}

func (e *EditorError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "meta.Describe").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the grid.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *GridError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
