// Package sim is an in-process simulation of the robot control library. It
// keeps the library's single-thread contract: every handle call is checked
// against the thread that connected, and violations are counted so tests can
// assert that all device work ran on the worker.
//
// Motion is interpolated in wall-clock time, playback lasts as long as the
// WAV payload, and recognition consumes utterances queued with
// [Robot.Hear].
package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrWong99/sotabridge/internal/device"
	"github.com/MrWong99/sotabridge/internal/phonetic"
	"github.com/MrWong99/sotabridge/pkg/audio"
)

// DefaultIDs are the servo ids of the simulated body.
var DefaultIDs = []byte{1, 2, 3, 4, 5, 6, 7, 8}

// Format is the PCM format produced by the simulated synthesizer and
// recorder.
var Format = audio.Format{SampleRate: 16000, Channels: 1}

// Options tune the simulation. The zero value is a healthy robot with every
// optional capability.
type Options struct {
	// ConnectErr makes Connect fail.
	ConnectErr error
	// InitErr makes InitRobot fail.
	InitErr error
	// WithoutSetLang hides the recognizer language capability.
	WithoutSetLang bool
	// WithoutLocalize hides the synthesizer language capability.
	WithoutLocalize bool
	// BatteryMillivolts is reported by BatteryVoltage. Default 7400.
	BatteryMillivolts int
	// SpeechRate is the synthesized speech length per character at rate 100.
	// Default 60ms.
	SpeechRate time.Duration
}

// Robot is one simulated robot. Its exported methods are test hooks and are
// safe for concurrent use; the device handles it hands out are not.
type Robot struct {
	opts    Options
	matcher *phonetic.Matcher
	log     *slog.Logger

	violations atomic.Int64
	affinity   atomic.Pointer[device.Affinity]

	mu        sync.Mutex
	connected bool
	calls     []string
	lastPose  *device.Pose
	servoOn   bool
	from      map[byte]int16
	target    map[byte]int16
	moveStart time.Time
	moveEnd   time.Time
	collision bool
	mouthSync bool
	lang      string
	localize  string
	buttons   device.Buttons
	charging  bool
	said      []string
	scenes    []string

	heard chan string
	gate  chan struct{}
}

// New returns a simulated robot.
func New(opts Options) *Robot {
	if opts.BatteryMillivolts == 0 {
		opts.BatteryMillivolts = 7400
	}
	if opts.SpeechRate == 0 {
		opts.SpeechRate = 60 * time.Millisecond
	}
	r := &Robot{
		opts:    opts,
		matcher: phonetic.New(),
		log:     slog.Default().With("component", "sim"),
		from:    make(map[byte]int16),
		target:  make(map[byte]int16),
		heard:   make(chan string, 64),
	}
	for _, id := range DefaultIDs {
		r.target[id] = 0
	}
	return r
}

// Driver returns a [device.Driver] backed by r.
func (r *Robot) Driver() device.Driver { return driver{r: r} }

// enter runs before every handle call. It enforces thread affinity, honours
// the pause gate and records the call.
func (r *Robot) enter(name string) error {
	if err := r.check(name); err != nil {
		return err
	}

	r.mu.Lock()
	gate := r.gate
	r.mu.Unlock()
	if gate != nil {
		<-gate
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
	if !r.connected {
		return device.ErrDisconnected
	}
	return nil
}

// check counts and reports calls made off the owner thread.
func (r *Robot) check(name string) error {
	if a := r.affinity.Load(); a != nil {
		if err := a.Check(); err != nil {
			r.violations.Add(1)
			return fmt.Errorf("sim: %s: %w", name, err)
		}
	}
	return nil
}

// Violations returns how many handle calls came from a non-owner thread.
func (r *Robot) Violations() int64 { return r.violations.Load() }

// Calls returns the names of all handle calls so far.
func (r *Robot) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// LastPose returns the last pose passed to Play.
func (r *Robot) LastPose() *device.Pose {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastPose
}

// Said returns every text spoken through the expressive driver.
func (r *Robot) Said() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.said...)
}

// Language returns the recognition and synthesis languages last set.
func (r *Robot) Language() (lang, localize string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lang, r.localize
}

// Pause blocks every subsequent handle call until the returned function is
// called. It lets tests hold the worker while queueing more work.
func (r *Robot) Pause() (resume func()) {
	gate := make(chan struct{})
	r.mu.Lock()
	r.gate = gate
	r.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			r.gate = nil
			r.mu.Unlock()
			close(gate)
		})
	}
}

// Disconnect drops the device link; later calls fail with
// [device.ErrDisconnected].
func (r *Robot) Disconnect() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connected = false
}

// Press sets the button state.
func (r *Robot) Press(b device.Buttons) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buttons = b
}

// SetCharging sets the charger state.
func (r *Robot) SetCharging(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.charging = v
}

// Hear queues an utterance for the recognizer.
func (r *Robot) Hear(utterance string) {
	r.heard <- utterance
}

// listen waits up to timeout for the next utterance.
func (r *Robot) listen(timeout time.Duration) (string, bool) {
	if timeout <= 0 {
		select {
		case u := <-r.heard:
			return u, true
		default:
			return "", false
		}
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case u := <-r.heard:
		return u, true
	case <-t.C:
		return "", false
	}
}

type driver struct {
	r *Robot
}

func (d driver) Connect() (device.Connection, error) {
	if d.r.opts.ConnectErr != nil {
		return nil, d.r.opts.ConnectErr
	}
	a := device.Bind()
	d.r.affinity.Store(&a)
	d.r.mu.Lock()
	d.r.connected = true
	d.r.mu.Unlock()
	d.r.log.Info("simulated robot connected", "thread", a.Owner())
	return &connection{r: d.r}, nil
}

func (d driver) NewRecorder() (device.Recorder, error) {
	return &recorder{}, nil
}

type connection struct {
	r *Robot
}

func (c *connection) Motion() (device.Motion, error) {
	if err := c.r.enter("Motion"); err != nil {
		return nil, err
	}
	return &motion{r: c.r}, nil
}

func (c *connection) Recognizer(m device.Motion) (device.Recognizer, error) {
	if err := c.r.enter("Recognizer"); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.New("sim: recognizer needs a motion controller")
	}
	rec := &recognizer{r: c.r}
	if c.r.opts.WithoutSetLang {
		return plainRecognizer{rec}, nil
	}
	return rec, nil
}

func (c *connection) Expressive(m device.Motion) (device.Expressive, error) {
	if err := c.r.enter("Expressive"); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.New("sim: expressive driver needs a motion controller")
	}
	return &expressive{r: c.r}, nil
}

func (c *connection) Synthesizer() (device.Synthesizer, error) {
	if err := c.r.enter("Synthesizer"); err != nil {
		return nil, err
	}
	s := &synthesizer{r: c.r}
	if c.r.opts.WithoutLocalize {
		return plainSynthesizer{s}, nil
	}
	return s, nil
}

func (c *connection) WavePlayer() (device.WavePlayer, error) {
	if err := c.r.enter("WavePlayer"); err != nil {
		return nil, err
	}
	return &wavePlayer{r: c.r}, nil
}

func (c *connection) Connected() bool {
	c.r.mu.Lock()
	defer c.r.mu.Unlock()
	return c.r.connected
}

func (c *connection) Close() error {
	if err := c.r.enter("Close"); err != nil && !errors.Is(err, device.ErrDisconnected) {
		return err
	}
	c.r.mu.Lock()
	c.r.connected = false
	c.r.mu.Unlock()
	return nil
}

// plainRecognizer hides optional methods of the wrapped recognizer.
type plainRecognizer struct{ device.Recognizer }

// plainSynthesizer hides optional methods of the wrapped synthesizer.
type plainSynthesizer struct{ device.Synthesizer }
