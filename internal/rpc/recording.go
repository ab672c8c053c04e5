package rpc

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sync/atomic"
	"time"

	"github.com/MrWong99/sotabridge/internal/device"
	"github.com/MrWong99/sotabridge/internal/fault"
	"github.com/MrWong99/sotabridge/internal/observe"
	"github.com/MrWong99/sotabridge/pkg/sotapb"
)

var _ sotapb.RecordingServiceServer = (*RecordingServer)(nil)

// RecordingServer captures microphone audio into a fixed file. It calls the
// recorder directly; at most one recording is expected at a time.
type RecordingServer struct {
	sotapb.UnimplementedRecordingServiceServer

	rec     device.Recorder
	file    string
	metrics *observe.Metrics

	// counted is set while the active recordings gauge includes a capture.
	counted atomic.Bool
}

// NewRecordingServer returns a recording service writing captures to file.
func NewRecordingServer(rec device.Recorder, file string, m *observe.Metrics) *RecordingServer {
	if m == nil {
		m = observe.DefaultMetrics()
	}
	return &RecordingServer{rec: rec, file: file, metrics: m}
}

func (s *RecordingServer) StartRecording(ctx context.Context, req *sotapb.StartRecordingRequest) (*sotapb.StartRecordingResponse, error) {
	const op = "start_recording"
	if req.DurationMs <= 0 {
		return nil, invalid(op, "duration_ms must be positive, got %d", req.DurationMs)
	}
	ok, err := s.rec.Start(s.file, time.Duration(req.DurationMs)*time.Millisecond)
	if err != nil {
		return nil, toStatus(fault.Classify(fault.Native, op, err))
	}
	if ok && !s.counted.Swap(true) {
		s.metrics.ActiveRecordings.Add(ctx, 1)
	}
	return &sotapb.StartRecordingResponse{Success: ok}, nil
}

// StopRecording ends the capture and returns the recorded file, which is
// deleted afterwards.
func (s *RecordingServer) StopRecording(ctx context.Context, _ *sotapb.StopRecordingRequest) (*sotapb.StopRecordingResponse, error) {
	const op = "stop_recording"
	err := s.rec.Stop()
	s.settle(ctx)
	if err != nil {
		return nil, toStatus(fault.Classify(fault.Native, op, err))
	}

	data, err := os.ReadFile(s.file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, toStatus(fault.Errorf(fault.NotFound, op, "%s does not exist", s.file))
	}
	if err != nil {
		return nil, toStatus(fault.Errorf(fault.Internal, op, "read capture: %w", err))
	}
	if err := os.Remove(s.file); err != nil {
		observe.Logger(ctx).Warn("could not delete capture file", "path", s.file, "err", err)
	}
	return &sotapb.StopRecordingResponse{AudioData: data}, nil
}

func (s *RecordingServer) IsRecording(ctx context.Context, _ *sotapb.IsRecordingRequest) (*sotapb.IsRecordingResponse, error) {
	active := s.rec.IsRecording()
	if !active {
		s.settle(ctx)
	}
	return &sotapb.IsRecordingResponse{IsRecording: active}, nil
}

// Stop ends any running capture. It is used during shutdown.
func (s *RecordingServer) Stop(ctx context.Context) error {
	if !s.rec.IsRecording() {
		s.settle(ctx)
		return nil
	}
	err := s.rec.Stop()
	s.settle(ctx)
	return err
}

// settle removes a finished capture from the gauge. Captures that end on
// their own are noticed on the next call.
func (s *RecordingServer) settle(ctx context.Context) {
	if s.counted.Swap(false) {
		s.metrics.ActiveRecordings.Add(ctx, -1)
	}
}
