// Package errors provides structured error reporting for the list adapter.
//
// The adapter runs on the host's UI loop and has no caller to return errors
// to, so contract violations and recovered hook panics are sent to a global
// [ErrorHandler] instead. The default handler logs through logr to stderr.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindContract indicates a host call that violates the adapter contract,
	// such as binding an out-of-range position.
	KindContract
	// KindReentrant indicates a submit issued while another submit was
	// replaying notifications.
	KindReentrant
	// KindHook indicates a failure inside a row lifecycle hook.
	KindHook
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindContract:
		return "contract"
	case KindReentrant:
		return "reentrant"
	case KindHook:
		return "hook"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// NoPosition marks an error that is not tied to an adapter position.
const NoPosition = -1

// RecyclerError represents a structured adapter error.
type RecyclerError struct {
	// Op is the operation that failed (e.g., "recycler.BindSlot").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Position is the adapter position involved, or NoPosition.
	Position int
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *RecyclerError) Error() string {
	if e.Position != NoPosition {
		return fmt.Sprintf("%s [%s] position=%d: %v", e.Op, e.Kind, e.Position, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *RecyclerError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "recycler.BindSlot").
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

// ErrorHandler receives errors reported by the adapter.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *RecyclerError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
