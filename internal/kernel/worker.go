package kernel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrWong99/sotabridge/internal/device"
	"github.com/MrWong99/sotabridge/internal/fault"
	"github.com/MrWong99/sotabridge/internal/observe"
)

// State is the lifecycle phase of a [Worker].
type State int32

const (
	Initializing State = iota
	Ready
	Draining
	Stopped
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	case Draining:
		return "draining"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// Option configures a [Worker].
type Option func(*Worker)

// WithMetrics sets the metrics sink. Defaults to [observe.DefaultMetrics].
func WithMetrics(m *observe.Metrics) Option {
	return func(w *Worker) { w.metrics = m }
}

// WithLogger sets the worker's logger. Defaults to [slog.Default].
func WithLogger(l *slog.Logger) Option {
	return func(w *Worker) { w.log = l }
}

// Worker owns the device context and executes queued tasks one at a time on
// a single locked OS thread.
//
// All exported methods are safe for concurrent use.
type Worker struct {
	drv     device.Driver
	queue   *Queue
	metrics *observe.Metrics
	log     *slog.Logger

	state     atomic.Int32
	connected atomic.Bool
	started   atomic.Bool
	caps      []string // written before Ready

	done     chan struct{}
	stopOnce sync.Once
}

// NewWorker returns a worker that will open its device through drv.
func NewWorker(drv device.Driver, opts ...Option) *Worker {
	w := &Worker{
		drv:   drv,
		queue: NewQueue(),
		log:   slog.Default(),
		done:  make(chan struct{}),
	}
	for _, o := range opts {
		o(w)
	}
	if w.metrics == nil {
		w.metrics = observe.DefaultMetrics()
	}
	w.queue.depth = func(delta int64) {
		w.metrics.QueueDepth.Add(context.Background(), delta)
	}
	return w
}

// Start launches the worker goroutine and blocks until the device context
// is open. An open failure is returned and leaves the worker stopped; the
// process cannot serve requests without a device.
func (w *Worker) Start(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return fault.New(fault.Internal, "kernel: start", errors.New("worker already started"))
	}

	ready := make(chan error, 1)
	go w.loop(ready)

	select {
	case err := <-ready:
		return err
	case <-ctx.Done():
		w.queue.Close(fault.ErrShutdown)
		return fault.FromContext("kernel: start", ctx.Err())
	}
}

func (w *Worker) loop(ready chan<- error) {
	// The thread is never unlocked. It exits with the goroutine so no other
	// goroutine inherits library state bound to it.
	runtime.LockOSThread()
	defer close(w.done)
	defer w.state.Store(int32(Stopped))

	dc, err := device.Open(w.drv)
	if err != nil {
		w.queue.Close(err)
		w.log.Error("device open failed", "err", err)
		ready <- err
		return
	}
	w.caps = dc.Capabilities()
	w.connected.Store(dc.Connected())
	w.state.CompareAndSwap(int32(Initializing), int32(Ready))
	w.log.Info("device worker ready", "thread", device.Bind().Owner(), "capabilities", w.caps)
	ready <- nil

	for {
		t, ok := w.queue.Take(context.Background())
		if !ok {
			break
		}
		w.execute(dc, t)
	}

	dropped := w.queue.Drain()
	for _, t := range dropped {
		w.settle(t, fault.ErrShutdown)
	}
	if len(dropped) > 0 {
		w.log.Info("dropped queued work on shutdown", "count", len(dropped))
	}

	if err := dc.Close(); err != nil {
		w.log.Warn("device close failed", "err", err)
	}
	w.connected.Store(false)
	w.log.Info("device worker stopped")
}

// execute runs t unless its submitter already gave up.
func (w *Worker) execute(dc *device.Context, t *Task) {
	wait := time.Since(t.enqueued)

	if err := t.ctx.Err(); err != nil {
		t.cancel()
	}
	if !t.begin() {
		cause := t.ctx.Err()
		if cause == nil {
			cause = context.Canceled
		}
		err := fault.FromContext(t.name, cause)
		if ferr := t.abort(err); ferr != nil {
			w.log.Error("work item completed twice", "op", t.name, "err", ferr)
		}
		w.metrics.RecordWorkItem(t.ctx, t.name, fault.KindOf(err).String(), wait, 0)
		w.log.Debug("skipped cancelled work item", "op", t.name, "wait", wait)
		return
	}

	start := time.Now()
	result, ferr := w.run(dc, t)
	exec := time.Since(start)
	if ferr != nil {
		w.log.Error("work item completed twice", "op", t.name, "err", ferr)
	}
	w.connected.Store(dc.Connected())

	outcome := "ok"
	if result != nil {
		outcome = fault.KindOf(result).String()
		w.log.Warn("work item failed", "op", t.name, "wait", wait, "exec", exec, "err", result)
	} else {
		w.log.Debug("work item done", "op", t.name, "wait", wait, "exec", exec)
	}
	w.metrics.RecordWorkItem(t.ctx, t.name, outcome, wait, exec)
}

// run executes t and turns a panic inside the device library into a
// failure of the item.
func (w *Worker) run(dc *device.Context, t *Task) (result, fill error) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("work item panicked", "op", t.name, "panic", r, "stack", string(debug.Stack()))
			result = fault.Errorf(fault.Native, t.name, "panic: %v", r)
			fill = t.abort(result)
		}
	}()
	return t.run(dc)
}

func (w *Worker) settle(t *Task, err error) {
	if ferr := t.abort(err); ferr != nil {
		w.log.Error("work item completed twice", "op", t.name, "err", ferr)
	}
	w.metrics.RecordWorkItem(t.ctx, t.name, fault.KindOf(err).String(), time.Since(t.enqueued), 0)
}

// Enqueue implements [Enqueuer]. It fails with the shutdown reason once the
// worker drains, or with the open failure when the device never came up.
func (w *Worker) Enqueue(t *Task) error {
	t.enqueued = time.Now()
	return w.queue.Put(t)
}

// Stop refuses new work, lets the running item finish, completes every queued
// item with [fault.ErrShutdown], and closes the device. It blocks until the
// worker has stopped or ctx ends.
func (w *Worker) Stop(ctx context.Context) error {
	w.stopOnce.Do(func() {
		w.state.CompareAndSwap(int32(Ready), int32(Draining))
		w.state.CompareAndSwap(int32(Initializing), int32(Draining))
		w.queue.Close(fault.ErrShutdown)
	})
	if !w.started.Load() {
		w.state.Store(int32(Stopped))
		return nil
	}
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return fault.FromContext("kernel: stop", ctx.Err())
	}
}

// State returns the current lifecycle phase.
func (w *Worker) State() State { return State(w.state.Load()) }

// Done is closed once the worker has stopped.
func (w *Worker) Done() <-chan struct{} { return w.done }

// Pending returns the number of queued tasks.
func (w *Worker) Pending() int { return w.queue.Len() }

// Capabilities returns the optional device capabilities found at open time.
func (w *Worker) Capabilities() []string {
	if w.State() == Initializing {
		return nil
	}
	return w.caps
}

// Connected reports the link state observed after the last work item.
func (w *Worker) Connected() bool { return w.connected.Load() }

// Check reports whether the worker accepts work and the robot is connected.
// It never touches the device.
func (w *Worker) Check(context.Context) error {
	if s := w.State(); s != Ready {
		return fmt.Errorf("device worker is %s", s)
	}
	if !w.Connected() {
		return errors.New("robot disconnected")
	}
	return nil
}
