package kernel

import (
	"context"

	"github.com/MrWong99/sotabridge/internal/device"
	"github.com/MrWong99/sotabridge/internal/fault"
)

// Submit runs fn on the device worker and waits for its result.
//
// Cancellation is honoured up to dispatch: when ctx ends while the item is
// still queued, the worker skips it and Submit returns a cancelled or
// deadline failure. Once the worker has started the item it runs to
// completion on the device; ctx ending then only abandons the wait.
func Submit[T any](ctx context.Context, q Enqueuer, name string, fn func(dc *device.Context) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, fault.FromContext(name, err)
	}

	t, slot := NewTask(ctx, name, fn)
	if err := q.Enqueue(t); err != nil {
		return zero, err
	}

	select {
	case <-slot.Done():
		return slot.Result()
	case <-ctx.Done():
		select {
		case <-slot.Done():
			return slot.Result()
		default:
		}
		t.cancel()
		return zero, fault.FromContext(name, ctx.Err())
	}
}

// Do is [Submit] for operations without a result value.
func Do(ctx context.Context, q Enqueuer, name string, fn func(dc *device.Context) error) error {
	_, err := Submit(ctx, q, name, func(dc *device.Context) (struct{}, error) {
		return struct{}{}, fn(dc)
	})
	return err
}
