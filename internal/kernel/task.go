package kernel

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/MrWong99/sotabridge/internal/device"
	"github.com/MrWong99/sotabridge/internal/fault"
)

// Work item states. A task leaves pending exactly once.
const (
	taskPending int32 = iota
	taskRunning
	taskCancelled
)

// Task is a type-erased work item: the closure to run on the worker and the
// hooks that deliver its outcome into the owning [Slot].
type Task struct {
	name     string
	ctx      context.Context
	enqueued time.Time
	state    atomic.Int32

	// run executes on the worker thread and fills the slot itself. It
	// returns the delivered failure and any error from filling the slot.
	run func(dc *device.Context) (result, fill error)
	// abort fills the slot with err without running.
	abort func(err error) error
}

// NewTask wraps fn into a task whose result lands in the returned slot.
// Errors returned by fn are classified as device failures unless they
// already carry a kind.
func NewTask[T any](ctx context.Context, name string, fn func(dc *device.Context) (T, error)) (*Task, *Slot[T]) {
	slot := NewSlot[T]()
	t := &Task{
		name: name,
		ctx:  ctx,
		run: func(dc *device.Context) (error, error) {
			v, err := fn(dc)
			err = fault.Classify(fault.Native, name, err)
			return err, slot.Fill(v, err)
		},
		abort: func(err error) error {
			var zero T
			return slot.Fill(zero, err)
		},
	}
	return t, slot
}

// Name returns the operation name used in logs and metrics.
func (t *Task) Name() string { return t.name }

// cancel marks a pending task as abandoned. It reports false when the worker
// already started it.
func (t *Task) cancel() bool {
	return t.state.CompareAndSwap(taskPending, taskCancelled)
}

// begin claims the task for execution. It reports false when the submitter
// cancelled first.
func (t *Task) begin() bool {
	return t.state.CompareAndSwap(taskPending, taskRunning)
}
