package rpc

import (
	"context"
	"time"

	"github.com/MrWong99/sotabridge/internal/device"
	"github.com/MrWong99/sotabridge/internal/fault"
	"github.com/MrWong99/sotabridge/internal/kernel"
	"github.com/MrWong99/sotabridge/pkg/sotapb"
)

var _ sotapb.SpeechRecognitionServiceServer = (*RecognitionServer)(nil)

// RecognitionServer listens through the robot microphone. The recognizer is
// a device handle, so every call runs on the worker and blocks it for up to
// the requested timeout.
type RecognitionServer struct {
	sotapb.UnimplementedSpeechRecognitionServiceServer

	q kernel.Enqueuer
}

// NewRecognitionServer returns a speech recognition service submitting to q.
func NewRecognitionServer(q kernel.Enqueuer) *RecognitionServer {
	return &RecognitionServer{q: q}
}

func (s *RecognitionServer) Recognize(ctx context.Context, req *sotapb.RecognizeRequest) (*sotapb.RecognitionResult, error) {
	const op = "recognize"
	timeout, err := millis(op, "timeout_ms", req.TimeoutMs)
	if err != nil {
		return nil, toStatus(err)
	}
	lang := req.GetLanguageCode()

	res, err := kernel.Submit(ctx, s.q, op, func(dc *device.Context) (*device.Recognition, error) {
		if err := setLanguage(dc.SetLang, lang); err != nil {
			return nil, err
		}
		return dc.Recognizer.Recognize(timeout)
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return fromRecognition(res), nil
}

func (s *RecognitionServer) RecognizeYesOrNo(ctx context.Context, req *sotapb.RecognizeYesOrNoRequest) (*sotapb.RecognizeYesOrNoResponse, error) {
	answer, err := retrying(ctx, s.q, "recognize_yes_or_no", req.RetryRequest, device.Recognizer.YesOrNo)
	if err != nil {
		return nil, err
	}
	return &sotapb.RecognizeYesOrNoResponse{Answer: fromAnswer(answer)}, nil
}

func (s *RecognitionServer) RecognizeName(ctx context.Context, req *sotapb.RecognizeNameRequest) (*sotapb.RecognizeNameResponse, error) {
	name, err := retrying(ctx, s.q, "recognize_name", req.RetryRequest, device.Recognizer.Name)
	if err != nil {
		return nil, err
	}
	return &sotapb.RecognizeNameResponse{Name: optional(name)}, nil
}

func (s *RecognitionServer) RecognizeNames(ctx context.Context, req *sotapb.RecognizeNamesRequest) (*sotapb.RecognizeNamesResponse, error) {
	names, err := retrying(ctx, s.q, "recognize_names", req.RetryRequest, device.Recognizer.Names)
	if err != nil {
		return nil, err
	}
	return &sotapb.RecognizeNamesResponse{Names: names}, nil
}

func (s *RecognitionServer) RecognizeGeneralResponse(ctx context.Context, req *sotapb.RecognizeGeneralResponseRequest) (*sotapb.RecognizeGeneralResponseResponse, error) {
	resp, err := retrying(ctx, s.q, "recognize_general_response", req.RetryRequest, device.Recognizer.Response)
	if err != nil {
		return nil, err
	}
	return &sotapb.RecognizeGeneralResponseResponse{Response: optional(resp)}, nil
}

// retrying validates a timeout/retry request and runs listen on the worker.
// The returned error is already a gRPC status.
func retrying[T any](ctx context.Context, q kernel.Enqueuer, op string, req sotapb.RetryRequest,
	listen func(r device.Recognizer, timeout time.Duration, retries int) (T, error),
) (T, error) {
	var zero T
	timeout, err := millis(op, "timeout_ms", req.TimeoutMs)
	if err != nil {
		return zero, toStatus(err)
	}
	if req.RetryCount < 0 {
		return zero, toStatus(fault.Errorf(fault.InvalidArgument, op, "retry_count must not be negative, got %d", req.RetryCount))
	}
	v, err := kernel.Submit(ctx, q, op, func(dc *device.Context) (T, error) {
		return listen(dc.Recognizer, timeout, int(req.RetryCount))
	})
	if err != nil {
		return zero, toStatus(err)
	}
	return v, nil
}
