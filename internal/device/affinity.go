package device

import (
	"errors"
	"fmt"

	"github.com/MrWong99/sotabridge/internal/fault"
)

// ErrWrongThread is returned by libraries that enforce [Affinity].
var ErrWrongThread = fault.New(fault.Internal, "device", errors.New("called off the owner thread"))

// Affinity records the OS thread that owns a device context. The owner must
// hold runtime.LockOSThread for the lifetime of the context.
type Affinity struct {
	tid int
}

// Bind returns an Affinity for the calling thread.
func Bind() Affinity {
	return Affinity{tid: threadID()}
}

// Owner returns the bound thread id.
func (a Affinity) Owner() int { return a.tid }

// Check fails with [ErrWrongThread] when called from another thread.
func (a Affinity) Check() error {
	if tid := threadID(); tid != a.tid {
		return fmt.Errorf("%w (thread %d, owner %d)", ErrWrongThread, tid, a.tid)
	}
	return nil
}

// Enforced reports whether thread identity is observable on this platform.
func Enforced() bool { return threadID() != 0 }
