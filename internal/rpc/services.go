package rpc

import (
	"google.golang.org/grpc"

	"github.com/MrWong99/sotabridge/internal/device"
	"github.com/MrWong99/sotabridge/internal/kernel"
	"github.com/MrWong99/sotabridge/internal/observe"
	"github.com/MrWong99/sotabridge/internal/playback"
	"github.com/MrWong99/sotabridge/pkg/sotapb"
)

// Config holds the collaborators shared by the services.
type Config struct {
	// Queue receives every device work item. Required.
	Queue kernel.Enqueuer
	// Recorder captures microphone audio. Required.
	Recorder device.Recorder
	// Players tracks asynchronous playback. A fresh registry is created when
	// nil.
	Players *playback.Registry
	// PlaybackFile is the staging path for save_file playback.
	PlaybackFile string
	// RecordingFile is the capture path.
	RecordingFile string
	// AwaitCompletion is the PlayPose default.
	AwaitCompletion bool
	// Metrics defaults to [observe.DefaultMetrics].
	Metrics *observe.Metrics
}

// Services bundles one server per gRPC service.
type Services struct {
	Motion      *MotionServer
	Expressive  *ExpressiveServer
	TTS         *TTSServer
	Playback    *PlaybackServer
	Recording   *RecordingServer
	Recognition *RecognitionServer
}

// New builds every service from cfg.
func New(cfg Config) *Services {
	if cfg.Metrics == nil {
		cfg.Metrics = observe.DefaultMetrics()
	}
	if cfg.Players == nil {
		cfg.Players = playback.New(playback.WithMetrics(cfg.Metrics))
	}
	return &Services{
		Motion:      NewMotionServer(cfg.Queue, cfg.AwaitCompletion),
		Expressive:  NewExpressiveServer(cfg.Queue),
		TTS:         NewTTSServer(cfg.Queue),
		Playback:    NewPlaybackServer(cfg.Queue, cfg.Players, cfg.PlaybackFile),
		Recording:   NewRecordingServer(cfg.Recorder, cfg.RecordingFile, cfg.Metrics),
		Recognition: NewRecognitionServer(cfg.Queue),
	}
}

// Register adds every service to r.
func (s *Services) Register(r grpc.ServiceRegistrar) {
	sotapb.RegisterMotionServiceServer(r, s.Motion)
	sotapb.RegisterMotionAsSotaWishServiceServer(r, s.Expressive)
	sotapb.RegisterTextToSpeechServiceServer(r, s.TTS)
	sotapb.RegisterPlaybackServiceServer(r, s.Playback)
	sotapb.RegisterRecordingServiceServer(r, s.Recording)
	sotapb.RegisterSpeechRecognitionServiceServer(r, s.Recognition)
}

// ServiceNames lists the fully qualified names of the registered services.
func ServiceNames() []string {
	return []string{
		sotapb.MotionServiceName,
		sotapb.MotionAsSotaWishServiceName,
		sotapb.TextToSpeechServiceName,
		sotapb.PlaybackServiceName,
		sotapb.RecordingServiceName,
		sotapb.SpeechRecognitionServiceName,
	}
}
