// Package errors provides structured reporting for the recoverable
// error class: environment conditions such as a missing battery or a
// dead IPC connection that disable or restart one widget without
// touching the frame loop. Violated geometric invariants are the other
// class entirely and panic at the point of detection.
package errors

import (
	"fmt"
	"time"
)

// Kind categorizes a recoverable error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindInit indicates a widget or display failed to construct.
	KindInit
	// KindSource indicates a data source was unavailable or unreadable.
	KindSource
	// KindWorker indicates a background worker exited or misbehaved.
	KindWorker
	// KindRender indicates a failure during a draw pass.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k Kind) String() string {
	switch k {
	case KindInit:
		return "init"
	case KindSource:
		return "source"
	case KindWorker:
		return "worker"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Error represents a structured recoverable error.
type Error struct {
	// Op is the operation that failed (e.g., "battery.Update").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Widget is the name of the affected widget, if applicable.
	Widget string
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Widget != "" {
		return fmt.Sprintf("%s [%s] widget=%s: %v", e.Op, e.Kind, e.Widget, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "workspaces.worker").
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

// Handler receives errors reported by the bar.
type Handler interface {
	// HandleError is called when a recoverable error occurs.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
