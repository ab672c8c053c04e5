// Package config provides the configuration schema, loader, watcher, and
// device driver registry for the Sota gRPC bridge.
package config

import "time"

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Defaults applied by [Default] and therefore by every loader.
const (
	DefaultListenAddr      = ":8080"
	DefaultAdminAddr       = ":9090"
	DefaultMaxRecvMsgSize  = 512 << 20
	DefaultShutdownTimeout = 15 * time.Second
	DefaultDriver          = "sim"
	DefaultPlaybackFile    = "tmp_Sota-gRPC_playAudio.wav"
	DefaultRecordingFile   = "tmp_Sota-gRPC_recording.wav"
)

// Config is the root configuration structure. Load it with [Load] or
// [LoadFromReader]; omitted keys keep the values from [Default].
type Config struct {
	Server ServerConfig `yaml:"server"`
	Device DeviceConfig `yaml:"device"`
	Motion MotionConfig `yaml:"motion"`
	Audio  AudioConfig  `yaml:"audio"`
	Speech SpeechConfig `yaml:"speech"`
}

// ServerConfig holds network and logging settings.
type ServerConfig struct {
	// ListenAddr is the gRPC listen address.
	ListenAddr string `yaml:"listen_addr"`

	// AdminAddr serves /healthz, /readyz and /metrics. Empty disables the
	// admin server.
	AdminAddr string `yaml:"admin_addr"`

	LogLevel LogLevel `yaml:"log_level"`

	// MaxRecvMsgSize caps inbound gRPC messages in bytes. Audio uploads are
	// sent in one message.
	MaxRecvMsgSize int `yaml:"max_recv_msg_size"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DeviceConfig selects the robot driver registered in the [Registry].
type DeviceConfig struct {
	// Driver names the registered device driver (e.g. "sim").
	Driver string `yaml:"driver"`

	// Options holds driver-specific settings.
	Options map[string]any `yaml:"options"`
}

// MotionConfig tunes motion requests.
type MotionConfig struct {
	// AwaitCompletion makes PlayPose wait for the interpolation to finish
	// unless the request says otherwise. Hot-reloadable.
	AwaitCompletion bool `yaml:"await_completion"`
}

// AudioConfig names the scratch files used for playback and capture. Both
// live for the whole process and are shared by all callers.
type AudioConfig struct {
	PlaybackFile  string `yaml:"playback_file"`
	RecordingFile string `yaml:"recording_file"`
}

// SpeechConfig sets process-wide speech defaults.
type SpeechConfig struct {
	// Language is applied to recognition and synthesis at startup when the
	// device supports switching languages. Empty keeps the device default.
	Language string `yaml:"language"`
}

// Default returns a config with every default filled in.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:      DefaultListenAddr,
			AdminAddr:       DefaultAdminAddr,
			LogLevel:        LogInfo,
			MaxRecvMsgSize:  DefaultMaxRecvMsgSize,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Device: DeviceConfig{Driver: DefaultDriver},
		Motion: MotionConfig{AwaitCompletion: true},
		Audio: AudioConfig{
			PlaybackFile:  DefaultPlaybackFile,
			RecordingFile: DefaultRecordingFile,
		},
	}
}
