package kernel

import (
	"context"
	"sync"
)

// Enqueuer accepts work items for the device worker.
type Enqueuer interface {
	Enqueue(t *Task) error
}

// Queue is an unbounded multi-producer, single-consumer FIFO of tasks.
// Once closed it refuses new tasks with the close reason and hands out no
// further tasks; whatever remains is collected with [Queue.Drain].
type Queue struct {
	mu     sync.Mutex
	items  []*Task
	closed bool
	reason error

	notify chan struct{} // signalled on Put and Close
	done   chan struct{} // closed by Close
	depth  func(delta int64)
}

// NewQueue returns an empty open queue.
func NewQueue() *Queue {
	return &Queue{
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
		depth:  func(int64) {},
	}
}

// Put appends t. It returns the close reason when the queue is closed.
func (q *Queue) Put(t *Task) error {
	q.mu.Lock()
	if q.closed {
		reason := q.reason
		q.mu.Unlock()
		return reason
	}
	q.items = append(q.items, t)
	q.mu.Unlock()
	q.depth(1)

	select {
	case q.notify <- struct{}{}:
	default:
	}
	return nil
}

// Take blocks until a task is available, the queue is closed, or ctx ends.
// It reports false when no task will be returned.
func (q *Queue) Take(ctx context.Context) (*Task, bool) {
	for {
		q.mu.Lock()
		if q.closed {
			q.mu.Unlock()
			return nil, false
		}
		if len(q.items) > 0 {
			t := q.items[0]
			q.items[0] = nil
			q.items = q.items[1:]
			q.mu.Unlock()
			q.depth(-1)
			return t, true
		}
		q.mu.Unlock()

		select {
		case <-q.notify:
		case <-q.done:
		case <-ctx.Done():
			return nil, false
		}
	}
}

// Close stops accepting tasks. Later Put calls return reason. Close is
// idempotent; the first reason wins.
func (q *Queue) Close(reason error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.reason = reason
	close(q.done)
}

// Drain removes and returns every queued task.
func (q *Queue) Drain() []*Task {
	q.mu.Lock()
	items := q.items
	q.items = nil
	q.mu.Unlock()
	q.depth(-int64(len(items)))
	return items
}

// Len returns the number of queued tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Enqueue implements [Enqueuer].
func (q *Queue) Enqueue(t *Task) error { return q.Put(t) }
