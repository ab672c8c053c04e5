// Package kernel serialises every device call onto one dedicated OS thread.
//
// Request handlers never touch the device library. They wrap the call in a
// work item with [Submit], which enqueues it on the [Queue] consumed by the
// single [Worker] and waits for the item's [Slot] to be filled. The worker
// owns the [device.Context] for its whole life, so every library call runs
// on the thread that opened the connection, in FIFO order, one at a time.
package kernel

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/MrWong99/sotabridge/internal/fault"
)

// ErrSlotFilled is returned when a slot is completed twice.
var ErrSlotFilled = fault.New(fault.Internal, "kernel: slot", errors.New("already completed"))

// Slot is a single-assignment completion cell. Exactly one of value or
// error is delivered, at most once; any number of goroutines may wait.
type Slot[T any] struct {
	filled atomic.Bool
	done   chan struct{}
	val    T
	err    error
}

// NewSlot returns an empty slot.
func NewSlot[T any]() *Slot[T] {
	return &Slot[T]{done: make(chan struct{})}
}

// Fill completes the slot with v, or with err when err is non-nil. A second
// Fill leaves the first result in place and returns [ErrSlotFilled].
func (s *Slot[T]) Fill(v T, err error) error {
	if !s.filled.CompareAndSwap(false, true) {
		return ErrSlotFilled
	}
	if err != nil {
		s.err = err
	} else {
		s.val = v
	}
	close(s.done)
	return nil
}

// Done returns a channel closed once the slot is filled.
func (s *Slot[T]) Done() <-chan struct{} { return s.done }

// Result returns the delivered outcome. It must only be called after Done
// is closed.
func (s *Slot[T]) Result() (T, error) {
	return s.val, s.err
}

// Wait blocks until the slot is filled or ctx ends.
func (s *Slot[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-s.done:
		return s.Result()
	case <-ctx.Done():
		var zero T
		return zero, fault.FromContext("kernel: wait", ctx.Err())
	}
}
