package config

import "reflect"

// ConfigDiff describes what changed between two configs. Log level and the
// motion await flag are applied live; everything else is reported in
// RestartRequired.
type ConfigDiff struct {
	LogLevelChanged bool
	NewLogLevel     LogLevel

	AwaitCompletionChanged bool
	NewAwaitCompletion     bool

	// RestartRequired lists the keys that changed but only take effect
	// after a restart.
	RestartRequired []string
}

// Empty reports whether nothing changed.
func (d ConfigDiff) Empty() bool {
	return !d.LogLevelChanged && !d.AwaitCompletionChanged && len(d.RestartRequired) == 0
}

// Diff compares old and new configs and returns what changed.
func Diff(old, new *Config) ConfigDiff {
	d := ConfigDiff{}

	if old.Server.LogLevel != new.Server.LogLevel {
		d.LogLevelChanged = true
		d.NewLogLevel = new.Server.LogLevel
	}
	if old.Motion.AwaitCompletion != new.Motion.AwaitCompletion {
		d.AwaitCompletionChanged = true
		d.NewAwaitCompletion = new.Motion.AwaitCompletion
	}

	restart := func(key string, changed bool) {
		if changed {
			d.RestartRequired = append(d.RestartRequired, key)
		}
	}
	restart("server.listen_addr", old.Server.ListenAddr != new.Server.ListenAddr)
	restart("server.admin_addr", old.Server.AdminAddr != new.Server.AdminAddr)
	restart("server.max_recv_msg_size", old.Server.MaxRecvMsgSize != new.Server.MaxRecvMsgSize)
	restart("server.shutdown_timeout", old.Server.ShutdownTimeout != new.Server.ShutdownTimeout)
	restart("device.driver", old.Device.Driver != new.Device.Driver)
	restart("device.options", !reflect.DeepEqual(old.Device.Options, new.Device.Options))
	restart("audio.playback_file", old.Audio.PlaybackFile != new.Audio.PlaybackFile)
	restart("audio.recording_file", old.Audio.RecordingFile != new.Audio.RecordingFile)
	restart("speech.language", old.Speech.Language != new.Speech.Language)

	return d
}
