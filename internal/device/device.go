// Package device describes the thread-unsafe robot control library behind
// the bridge and bundles its handles into a [Context].
//
// Nothing in this package is safe for concurrent use except [Recorder]. A
// Context is opened, used and closed by exactly one goroutine locked to its
// OS thread (the kernel worker); see [Affinity].
package device

import (
	"errors"
	"time"

	"github.com/MrWong99/sotabridge/internal/fault"
)

var (
	// ErrDisconnected is returned by drivers when the device link is down.
	ErrDisconnected = fault.New(fault.Unavailable, "device", errors.New("device disconnected"))

	// ErrPlaybackRejected is returned by a [WavePlayer] that could not create a
	// player for the given audio. Callers report it as an unsuccessful
	// playback rather than a failure.
	ErrPlaybackRejected = errors.New("device: playback rejected")
)

// Driver connects to a device. Connect is called on the worker goroutine.
type Driver interface {
	Connect() (Connection, error)
	// NewRecorder returns the microphone capture handle. Unlike everything
	// else it is created on the bootstrap goroutine and is safe for
	// concurrent use.
	NewRecorder() (Recorder, error)
}

// Connection is a live device link and the factory for its sub-handles.
type Connection interface {
	Motion() (Motion, error)
	Recognizer(m Motion) (Recognizer, error)
	Expressive(m Motion) (Expressive, error)
	Synthesizer() (Synthesizer, error)
	WavePlayer() (WavePlayer, error)
	Connected() bool
	Close() error
}

// RGB is an LED colour.
type RGB struct {
	R, G, B uint8
}

// LED is the full LED state applied with a pose.
type LED struct {
	LeftEye     RGB
	RightEye    RGB
	Mouth       uint8
	PowerButton RGB
}

// Pose is a set of servo targets. IDs and Angles are parallel slices; angles
// are tenths of a degree.
type Pose struct {
	IDs    []byte
	Angles []int16
	LED    *LED
}

// Buttons is the pressed state of the body buttons.
type Buttons struct {
	Power   bool
	VolUp   bool
	VolDown bool
}

// Motion controls servos, LEDs and reads body state.
type Motion interface {
	InitRobot() error
	ServoOn() error
	ServoOff() error
	// Play starts interpolating to p over d. It may return before the motion
	// ends; the boolean reports whether the device accepted the pose.
	Play(p Pose, d time.Duration) (bool, error)
	WaitEndInterpAll() error
	IsEndInterpAll() (bool, error)
	ReadPositions() ([]int16, error)
	DefaultIDs() ([]byte, error)
	BatteryVoltage() (int, error)
	IsCharging() (bool, error)
	Buttons() (Buttons, error)
	SetCollisionDetection(enabled bool) error
	SetMouthLEDVoiceSync(enabled bool) error
}

// Answers returned by [Recognizer.YesOrNo].
const (
	AnswerYes = "yes"
	AnswerNo  = "no"
)

// Word is one recognized token with its candidate labels and types.
type Word struct {
	Labels []string
	Types  []string
}

// Sentence is one recognition hypothesis.
type Sentence struct {
	Score int
	Words []Word
}

// Recognition is the full result of a free-form recognition.
type Recognition struct {
	Recognized bool
	Basic      string
	Sentences  []Sentence
}

// Recognizer listens through the robot microphone. An empty string or nil
// result means nothing was understood before the timeout.
type Recognizer interface {
	Recognize(timeout time.Duration) (*Recognition, error)
	YesOrNo(timeout time.Duration, retries int) (string, error)
	Name(timeout time.Duration, retries int) (string, error)
	Names(timeout time.Duration, retries int) ([]string, error)
	Response(timeout time.Duration, retries int) (string, error)
}

// LanguageSetter is implemented by recognizers that can switch language.
type LanguageSetter interface {
	SetLang(code string) error
}

// SpeechParams tunes synthesized speech.
type SpeechParams struct {
	Rate       int
	Pitch      int
	Intonation int
}

// Expressive speaks with gestures.
type Expressive interface {
	// Say speaks text. scene may be empty; params may be nil.
	Say(text, scene string, params *SpeechParams) error
	PlayScene(scene string, d time.Duration) error
}

// Synthesizer renders text to WAV bytes.
type Synthesizer interface {
	Synthesize(text string, params *SpeechParams) ([]byte, error)
}

// Localizer is implemented by synthesizers that can switch language.
type Localizer interface {
	SetLocalize(code string) error
}

// WavePlayer plays WAV audio on the robot speaker. With wait set the call
// blocks until playback ends.
type WavePlayer interface {
	PlayFile(path string, wait bool) (Player, error)
	PlayBytes(wav []byte, wait bool) (Player, error)
}

// Player is a started playback.
type Player interface {
	IsPlaying() bool
	Stop()
}

// Recorder captures microphone audio to a WAV file. Safe for concurrent use.
type Recorder interface {
	// Start begins capturing into path for at most d.
	Start(path string, d time.Duration) (bool, error)
	// Stop ends the capture and finalises the file.
	Stop() error
	IsRecording() bool
}
