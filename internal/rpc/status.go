// Package rpc implements the gRPC services of the bridge. Each service turns
// a wire request into one work item for the device worker, waits for the
// outcome and maps failures to gRPC status codes.
//
// Only the recording service bypasses the worker: the microphone recorder is
// safe for concurrent use.
package rpc

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MrWong99/sotabridge/internal/fault"
)

var kindCodes = map[fault.Kind]codes.Code{
	fault.Internal:         codes.Internal,
	fault.InvalidArgument:  codes.InvalidArgument,
	fault.Unavailable:      codes.Unavailable,
	fault.Shutdown:         codes.Unavailable,
	fault.Cancelled:        codes.Canceled,
	fault.DeadlineExceeded: codes.DeadlineExceeded,
	fault.Native:           codes.Unknown,
	fault.NotFound:         codes.NotFound,
	fault.Unimplemented:    codes.Unimplemented,
}

// Code returns the gRPC code reported for failures of kind k.
func Code(k fault.Kind) codes.Code {
	if c, ok := kindCodes[k]; ok {
		return c
	}
	return codes.Internal
}

// toStatus converts err into a gRPC status error. Errors that already carry a
// status are returned unchanged.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(interface{ GRPCStatus() *status.Status }); ok {
		return err
	}
	return status.Error(Code(fault.KindOf(err)), err.Error())
}

func invalid(op, format string, args ...any) error {
	return toStatus(fault.Errorf(fault.InvalidArgument, op, format, args...))
}
