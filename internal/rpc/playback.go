package rpc

import (
	"context"
	"errors"
	"os"

	"github.com/MrWong99/sotabridge/internal/device"
	"github.com/MrWong99/sotabridge/internal/fault"
	"github.com/MrWong99/sotabridge/internal/kernel"
	"github.com/MrWong99/sotabridge/internal/playback"
	"github.com/MrWong99/sotabridge/pkg/sotapb"
)

var _ sotapb.PlaybackServiceServer = (*PlaybackServer)(nil)

// PlaybackServer plays WAV audio on the robot speaker. Players started without
// waiting are tracked in a [playback.Registry]. Every player call, including
// registry stops and status checks, runs on the device worker because the
// players share the device audio channel.
type PlaybackServer struct {
	sotapb.UnimplementedPlaybackServiceServer

	q       kernel.Enqueuer
	players *playback.Registry
	file    string
}

// NewPlaybackServer returns a playback service. file is the staging path
// written when a request sets save_file.
func NewPlaybackServer(q kernel.Enqueuer, players *playback.Registry, file string) *PlaybackServer {
	return &PlaybackServer{q: q, players: players, file: file}
}

func (s *PlaybackServer) PlayAudio(ctx context.Context, req *sotapb.PlayAudioRequest) (*sotapb.PlayAudioResponse, error) {
	const op = "play_audio"
	if len(req.AudioData) == 0 {
		return nil, invalid(op, "audio_data is required")
	}
	wait, save := req.GetWaitForCompletion(), req.GetSaveFile()

	resp, err := kernel.Submit(ctx, s.q, op, func(dc *device.Context) (*sotapb.PlayAudioResponse, error) {
		if !save {
			p, err := dc.Player.PlayBytes(req.AudioData, wait)
			return s.started(p, err, wait)
		}
		// The staging file is shared by all requests; writing it on the
		// worker keeps writes and plays in queue order.
		if err := os.WriteFile(s.file, req.AudioData, 0o644); err != nil {
			return nil, fault.Errorf(fault.Internal, op, "write %s: %w", s.file, err)
		}
		p, err := dc.Player.PlayFile(s.file, wait)
		return s.started(p, err, wait)
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return resp, nil
}

func (s *PlaybackServer) PlayLocalAudio(ctx context.Context, req *sotapb.PlayLocalAudioRequest) (*sotapb.PlayAudioResponse, error) {
	const op = "play_local_audio"
	if err := requireText(op, "local_filepath", req.LocalFilepath); err != nil {
		return nil, toStatus(err)
	}
	wait := req.GetWaitForCompletion()

	resp, err := kernel.Submit(ctx, s.q, op, func(dc *device.Context) (*sotapb.PlayAudioResponse, error) {
		p, err := dc.Player.PlayFile(req.LocalFilepath, wait)
		return s.started(p, err, wait)
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return resp, nil
}

// started builds the response for a play call. Audio the device refused is an
// unsuccessful playback, not an error.
func (s *PlaybackServer) started(p device.Player, err error, wait bool) (*sotapb.PlayAudioResponse, error) {
	if errors.Is(err, device.ErrPlaybackRejected) || (err == nil && p == nil) {
		return &sotapb.PlayAudioResponse{}, nil
	}
	if err != nil {
		return nil, err
	}
	resp := &sotapb.PlayAudioResponse{Success: true}
	if !wait {
		resp.PlaybackId = s.players.Register(p)
	}
	return resp, nil
}

// StopAudio stops one playback, or all of them when no id is given. Unknown
// ids are ignored.
func (s *PlaybackServer) StopAudio(ctx context.Context, req *sotapb.StopAudioRequest) (*sotapb.StopAudioResponse, error) {
	err := kernel.Do(ctx, s.q, "stop_audio", func(*device.Context) error {
		if req.PlaybackId != nil {
			s.players.Stop(*req.PlaybackId)
		} else {
			s.players.StopAll()
		}
		return nil
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &sotapb.StopAudioResponse{}, nil
}

// IsAudioPlaying reports whether the given playback, or any playback when no
// id is given, is still running. Finished entries are pruned.
func (s *PlaybackServer) IsAudioPlaying(ctx context.Context, req *sotapb.IsAudioPlayingRequest) (*sotapb.IsAudioPlayingResponse, error) {
	playing, err := kernel.Submit(ctx, s.q, "is_audio_playing", func(*device.Context) (bool, error) {
		if req.PlaybackId != nil {
			return s.players.IsPlaying(*req.PlaybackId), nil
		}
		return s.players.AnyPlaying(), nil
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &sotapb.IsAudioPlayingResponse{IsPlaying: playing}, nil
}

// StopAll stops every tracked playback from the device worker. It is used
// during shutdown, before the worker drains.
func (s *PlaybackServer) StopAll(ctx context.Context) (int, error) {
	return kernel.Submit(ctx, s.q, "stop_all_audio", func(*device.Context) (int, error) {
		return s.players.StopAll(), nil
	})
}
