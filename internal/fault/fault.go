// Package fault defines the error taxonomy shared by the work kernel and the
// RPC adapters. Every failure that reaches a caller is classified into a
// [Kind]; the transport layer maps kinds to status codes.
package fault

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind uint8

const (
	// Internal is an invariant violation inside the bridge.
	Internal Kind = iota
	// InvalidArgument is a malformed or out-of-range request.
	InvalidArgument
	// Unavailable means the device is not connected or reports a disconnect.
	Unavailable
	// Shutdown means the worker is draining or stopped.
	Shutdown
	// Cancelled means the caller went away.
	Cancelled
	// DeadlineExceeded means the caller's deadline elapsed.
	DeadlineExceeded
	// Native is any failure raised by the device library during execution.
	Native
	// NotFound is a missing capture file or unknown resource.
	NotFound
	// Unimplemented marks operations the device does not provide.
	Unimplemented
)

var kindNames = [...]string{
	Internal:         "internal",
	InvalidArgument:  "invalid_argument",
	Unavailable:      "unavailable",
	Shutdown:         "shutdown",
	Cancelled:        "cancelled",
	DeadlineExceeded: "deadline_exceeded",
	Native:           "native",
	NotFound:         "not_found",
	Unimplemented:    "unimplemented",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Error is a classified failure. Op names the operation that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return e.Op + ": " + e.Err.Error()
	case e.Err != nil:
		return e.Err.Error()
	case e.Op != "":
		return e.Op + ": " + e.Kind.String()
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// ErrShutdown is the failure written to work refused or dropped while the
// worker drains.
var ErrShutdown = &Error{Kind: Shutdown, Err: errors.New("shutdown in progress")}

// New returns an [Error] of kind k wrapping err.
func New(k Kind, op string, err error) error {
	return &Error{Kind: k, Op: op, Err: err}
}

// Errorf returns an [Error] of kind k with a formatted message. The %w verb
// is honoured.
func Errorf(k Kind, op, format string, args ...any) error {
	return &Error{Kind: k, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf classifies err. Context errors map to [Cancelled] and
// [DeadlineExceeded]; unclassified errors are [Internal]. A nil error has no
// kind and returns Internal as well; callers check for nil first.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return DeadlineExceeded
	case errors.Is(err, context.Canceled):
		return Cancelled
	}
	return Internal
}

// Is reports whether err is classified as k.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// FromContext converts a context error into a classified failure.
func FromContext(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return New(DeadlineExceeded, op, err)
	}
	return New(Cancelled, op, err)
}

// Classify returns err unchanged when it already has a kind (including
// context errors) and wraps it as k otherwise.
func Classify(k Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return New(k, op, err)
}
