package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r on top of [Default] and
// validates the result. Unknown keys are rejected. An empty document yields
// the defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	// Server
	if cfg.Server.ListenAddr == "" {
		errs = append(errs, errors.New("server.listen_addr is required"))
	}
	if cfg.Server.AdminAddr != "" && cfg.Server.AdminAddr == cfg.Server.ListenAddr {
		errs = append(errs, fmt.Errorf("server.admin_addr %q must differ from server.listen_addr", cfg.Server.AdminAddr))
	}
	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}
	if cfg.Server.MaxRecvMsgSize <= 0 {
		errs = append(errs, fmt.Errorf("server.max_recv_msg_size %d must be positive", cfg.Server.MaxRecvMsgSize))
	} else if cfg.Server.MaxRecvMsgSize < 4<<20 {
		slog.Warn("server.max_recv_msg_size is below the gRPC default; audio uploads may be rejected",
			"max_recv_msg_size", cfg.Server.MaxRecvMsgSize)
	}
	if cfg.Server.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("server.shutdown_timeout %v must not be negative", cfg.Server.ShutdownTimeout))
	}

	// Device
	if cfg.Device.Driver == "" {
		errs = append(errs, errors.New("device.driver is required"))
	}

	// Audio scratch files
	if cfg.Audio.PlaybackFile == "" {
		errs = append(errs, errors.New("audio.playback_file is required"))
	}
	if cfg.Audio.RecordingFile == "" {
		errs = append(errs, errors.New("audio.recording_file is required"))
	}
	if cfg.Audio.PlaybackFile != "" &&
		filepath.Clean(cfg.Audio.PlaybackFile) == filepath.Clean(cfg.Audio.RecordingFile) {
		errs = append(errs, fmt.Errorf("audio.playback_file and audio.recording_file must differ (both %q)", cfg.Audio.PlaybackFile))
	}

	return errors.Join(errs...)
}
