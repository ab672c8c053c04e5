package rpc

import (
	"context"

	"github.com/MrWong99/sotabridge/internal/device"
	"github.com/MrWong99/sotabridge/internal/fault"
	"github.com/MrWong99/sotabridge/internal/kernel"
	"github.com/MrWong99/sotabridge/pkg/sotapb"
)

var (
	_ sotapb.MotionAsSotaWishServiceServer = (*ExpressiveServer)(nil)
	_ sotapb.TextToSpeechServiceServer     = (*TTSServer)(nil)
)

// ExpressiveServer speaks with gestures and plays authored scenes.
type ExpressiveServer struct {
	sotapb.UnimplementedMotionAsSotaWishServiceServer

	q kernel.Enqueuer
}

// NewExpressiveServer returns an expressive motion service submitting to q.
func NewExpressiveServer(q kernel.Enqueuer) *ExpressiveServer {
	return &ExpressiveServer{q: q}
}

func (s *ExpressiveServer) SayWithMotion(ctx context.Context, req *sotapb.SayWithMotionRequest) (*sotapb.SayWithMotionResponse, error) {
	const op = "say_with_motion"
	if err := requireText(op, "text", req.Text); err != nil {
		return nil, toStatus(err)
	}
	var scene string
	if req.Scene != nil {
		scene = *req.Scene
	}
	params := speechParams(req.Config)
	lang := req.Config.GetLanguageCode()

	err := kernel.Do(ctx, s.q, op, func(dc *device.Context) error {
		if err := setLanguage(dc.SetLocalize, lang); err != nil {
			return err
		}
		return dc.Expressive.Say(req.Text, scene, params)
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &sotapb.SayWithMotionResponse{}, nil
}

func (s *ExpressiveServer) PlayScene(ctx context.Context, req *sotapb.PlaySceneRequest) (*sotapb.PlaySceneResponse, error) {
	const op = "play_scene"
	if err := requireText(op, "scene", req.Scene); err != nil {
		return nil, toStatus(err)
	}
	d, err := millis(op, "time_ms", req.TimeMs)
	if err != nil {
		return nil, toStatus(err)
	}
	err = kernel.Do(ctx, s.q, op, func(dc *device.Context) error {
		return dc.Expressive.PlayScene(req.Scene, d)
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &sotapb.PlaySceneResponse{}, nil
}

// StartIdling is not provided by the device library.
func (s *ExpressiveServer) StartIdling(context.Context, *sotapb.StartIdlingRequest) (*sotapb.StartIdlingResponse, error) {
	return nil, toStatus(fault.Errorf(fault.Unimplemented, "start_idling", "idle motion is not supported"))
}

// StopIdling is not provided by the device library.
func (s *ExpressiveServer) StopIdling(context.Context, *sotapb.StopIdlingRequest) (*sotapb.StopIdlingResponse, error) {
	return nil, toStatus(fault.Errorf(fault.Unimplemented, "stop_idling", "idle motion is not supported"))
}

// TTSServer renders text to WAV audio without playing it.
type TTSServer struct {
	sotapb.UnimplementedTextToSpeechServiceServer

	q kernel.Enqueuer
}

// NewTTSServer returns a text-to-speech service submitting to q.
func NewTTSServer(q kernel.Enqueuer) *TTSServer {
	return &TTSServer{q: q}
}

func (s *TTSServer) GetTTSData(ctx context.Context, req *sotapb.GetTTSDataRequest) (*sotapb.GetTTSDataResponse, error) {
	const op = "synthesize"
	if err := requireText(op, "text", req.Text); err != nil {
		return nil, toStatus(err)
	}
	params := speechParams(req.Config)
	lang := req.Config.GetLanguageCode()

	wav, err := kernel.Submit(ctx, s.q, op, func(dc *device.Context) ([]byte, error) {
		if err := setLanguage(dc.SetLocalize, lang); err != nil {
			return nil, err
		}
		return dc.Synthesizer.Synthesize(req.Text, params)
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &sotapb.GetTTSDataResponse{AudioData: wav}, nil
}
