package rpc

import (
	"context"
	"sync/atomic"

	"github.com/MrWong99/sotabridge/internal/device"
	"github.com/MrWong99/sotabridge/internal/kernel"
	"github.com/MrWong99/sotabridge/pkg/sotapb"
)

var _ sotapb.MotionServiceServer = (*MotionServer)(nil)

// MotionServer drives servos and LEDs and reads body state.
type MotionServer struct {
	sotapb.UnimplementedMotionServiceServer

	q     kernel.Enqueuer
	await atomic.Bool
}

// NewMotionServer returns a motion service submitting to q. awaitCompletion
// is the default for PlayPose requests that do not set wait_for_completion.
func NewMotionServer(q kernel.Enqueuer, awaitCompletion bool) *MotionServer {
	s := &MotionServer{q: q}
	s.await.Store(awaitCompletion)
	return s
}

// SetAwaitCompletion changes the PlayPose default at runtime.
func (s *MotionServer) SetAwaitCompletion(v bool) { s.await.Store(v) }

// AwaitCompletion reports the current PlayPose default.
func (s *MotionServer) AwaitCompletion() bool { return s.await.Load() }

func (s *MotionServer) ServoOn(ctx context.Context, _ *sotapb.ServoOnRequest) (*sotapb.ServoOnResponse, error) {
	err := kernel.Do(ctx, s.q, "servo_on", func(dc *device.Context) error {
		return dc.Motion.ServoOn()
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &sotapb.ServoOnResponse{}, nil
}

func (s *MotionServer) ServoOff(ctx context.Context, _ *sotapb.ServoOffRequest) (*sotapb.ServoOffResponse, error) {
	err := kernel.Do(ctx, s.q, "servo_off", func(dc *device.Context) error {
		return dc.Motion.ServoOff()
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &sotapb.ServoOffResponse{}, nil
}

// PlayPose moves to the requested pose. Unless waiting is disabled it returns
// only after the interpolation ended, so success means the robot is there.
func (s *MotionServer) PlayPose(ctx context.Context, req *sotapb.PlayPoseRequest) (*sotapb.PlayPoseResponse, error) {
	const op = "play_pose"
	pose, err := toPose(op, req.Pose)
	if err != nil {
		return nil, toStatus(err)
	}
	d, err := millis(op, "time_ms", req.TimeMs)
	if err != nil {
		return nil, toStatus(err)
	}
	wait := s.await.Load()
	if req.WaitForCompletion != nil {
		wait = *req.WaitForCompletion
	}

	ok, err := kernel.Submit(ctx, s.q, op, func(dc *device.Context) (bool, error) {
		ok, err := dc.Motion.Play(pose, d)
		if err != nil || !ok || !wait {
			return ok, err
		}
		return true, dc.Motion.WaitEndInterpAll()
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &sotapb.PlayPoseResponse{Success: ok}, nil
}

func (s *MotionServer) GetCurrentPose(ctx context.Context, _ *sotapb.GetCurrentPoseRequest) (*sotapb.Pose, error) {
	const op = "get_current_pose"
	pose, err := kernel.Submit(ctx, s.q, op, func(dc *device.Context) (*sotapb.Pose, error) {
		angles, err := dc.Motion.ReadPositions()
		if err != nil {
			return nil, err
		}
		ids, err := dc.Motion.DefaultIDs()
		if err != nil {
			return nil, err
		}
		return fromPositions(op, ids, angles)
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return pose, nil
}

func (s *MotionServer) IsEndInterAll(ctx context.Context, _ *sotapb.IsEndInterAllRequest) (*sotapb.IsEndInterAllResponse, error) {
	done, err := kernel.Submit(ctx, s.q, "is_end_interp_all", func(dc *device.Context) (bool, error) {
		return dc.Motion.IsEndInterpAll()
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &sotapb.IsEndInterAllResponse{IsEndInterAll: done}, nil
}

func (s *MotionServer) GetPowerStatus(ctx context.Context, _ *sotapb.GetPowerStatusRequest) (*sotapb.GetPowerStatusResponse, error) {
	resp, err := kernel.Submit(ctx, s.q, "get_power_status", func(dc *device.Context) (*sotapb.GetPowerStatusResponse, error) {
		mv, err := dc.Motion.BatteryVoltage()
		if err != nil {
			return nil, err
		}
		charging, err := dc.Motion.IsCharging()
		if err != nil {
			return nil, err
		}
		return &sotapb.GetPowerStatusResponse{BatteryVoltageMv: int32(mv), IsCharging: charging}, nil
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return resp, nil
}

func (s *MotionServer) GetButtonState(ctx context.Context, _ *sotapb.GetButtonStateRequest) (*sotapb.GetButtonStateResponse, error) {
	b, err := kernel.Submit(ctx, s.q, "get_button_state", func(dc *device.Context) (device.Buttons, error) {
		return dc.Motion.Buttons()
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &sotapb.GetButtonStateResponse{
		IsPowerPressed:   b.Power,
		IsVolUpPressed:   b.VolUp,
		IsVolDownPressed: b.VolDown,
	}, nil
}

func (s *MotionServer) SetCollisionDetection(ctx context.Context, req *sotapb.SetCollisionDetectionRequest) (*sotapb.SetCollisionDetectionResponse, error) {
	if err := s.collisionDetection(ctx, req.Enabled); err != nil {
		return nil, err
	}
	return &sotapb.SetCollisionDetectionResponse{}, nil
}

func (s *MotionServer) EnableCollisionDetection(ctx context.Context, _ *sotapb.EnableCollisionDetectionRequest) (*sotapb.EnableCollisionDetectionResponse, error) {
	if err := s.collisionDetection(ctx, true); err != nil {
		return nil, err
	}
	return &sotapb.EnableCollisionDetectionResponse{}, nil
}

func (s *MotionServer) DisableCollisionDetection(ctx context.Context, _ *sotapb.DisableCollisionDetectionRequest) (*sotapb.DisableCollisionDetectionResponse, error) {
	if err := s.collisionDetection(ctx, false); err != nil {
		return nil, err
	}
	return &sotapb.DisableCollisionDetectionResponse{}, nil
}

func (s *MotionServer) collisionDetection(ctx context.Context, enabled bool) error {
	return toStatus(kernel.Do(ctx, s.q, "set_collision_detection", func(dc *device.Context) error {
		return dc.Motion.SetCollisionDetection(enabled)
	}))
}

func (s *MotionServer) SetMouthLedVoiceSync(ctx context.Context, req *sotapb.SetMouthLedVoiceSyncRequest) (*sotapb.SetMouthLedVoiceSyncResponse, error) {
	err := kernel.Do(ctx, s.q, "set_mouth_led_voice_sync", func(dc *device.Context) error {
		return dc.Motion.SetMouthLEDVoiceSync(req.Enabled)
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &sotapb.SetMouthLedVoiceSyncResponse{}, nil
}
