// Package playback tracks audio players started without waiting, so later
// requests can stop or query them after the starting request returned.
//
// The registry is safe for concurrent use. It calls [device.Player] methods
// directly, so callers must invoke it from the device worker whenever the
// player requires thread affinity.
package playback

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/MrWong99/sotabridge/internal/device"
	"github.com/MrWong99/sotabridge/internal/observe"
)

// Option configures a [Registry].
type Option func(*Registry)

// WithMetrics sets the metrics sink for the active playback gauge. Defaults
// to [observe.DefaultMetrics].
func WithMetrics(m *observe.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// WithIDGenerator replaces the UUIDv4 id source.
func WithIDGenerator(gen func() string) Option {
	return func(r *Registry) { r.newID = gen }
}

// Registry maps playback ids to live players. An id is present only while
// its player was started asynchronously and has not been seen finished or
// stopped.
type Registry struct {
	mu      sync.Mutex
	players map[string]device.Player

	newID   func() string
	metrics *observe.Metrics
}

// New returns an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		players: make(map[string]device.Player),
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(r)
	}
	if r.metrics == nil {
		r.metrics = observe.DefaultMetrics()
	}
	return r
}

// Register stores p under a fresh id and returns the id.
func (r *Registry) Register(p device.Player) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.newID()
	for _, taken := r.players[id]; taken; _, taken = r.players[id] {
		id = r.newID()
	}
	r.players[id] = p
	r.gauge(1)
	return id
}

// Stop removes id and stops its player. It reports whether id was present.
func (r *Registry) Stop(id string) bool {
	r.mu.Lock()
	p, ok := r.players[id]
	if ok {
		delete(r.players, id)
		r.gauge(-1)
	}
	r.mu.Unlock()

	if ok {
		p.Stop()
	}
	return ok
}

// StopAll clears the registry and stops every player that was in it. It
// returns how many players were stopped.
func (r *Registry) StopAll() int {
	r.mu.Lock()
	snapshot := r.players
	r.players = make(map[string]device.Player)
	r.gauge(-int64(len(snapshot)))
	r.mu.Unlock()

	for _, p := range snapshot {
		p.Stop()
	}
	return len(snapshot)
}

// IsPlaying reports whether the player under id is still playing. A
// finished player is removed before returning; an unknown id reports false.
func (r *Registry) IsPlaying(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[id]
	if !ok {
		return false
	}
	if p.IsPlaying() {
		return true
	}
	delete(r.players, id)
	r.gauge(-1)
	return false
}

// AnyPlaying prunes finished players and reports whether any remain.
func (r *Registry) AnyPlaying() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.players {
		if !p.IsPlaying() {
			delete(r.players, id)
			r.gauge(-1)
		}
	}
	return len(r.players) > 0
}

// Len returns the number of registered players, finished or not.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

func (r *Registry) gauge(delta int64) {
	if delta != 0 {
		r.metrics.ActivePlayback.Add(context.Background(), delta)
	}
}
