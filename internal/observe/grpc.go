package observe

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// metadataCarrier adapts incoming gRPC metadata to a
// [propagation.TextMapCarrier].
type metadataCarrier metadata.MD

func (c metadataCarrier) Get(key string) string {
	if v := metadata.MD(c).Get(key); len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c metadataCarrier) Set(key, value string) { metadata.MD(c).Set(key, value) }

func (c metadataCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}

// serverFault reports whether code points at the bridge or the robot rather
// than at the caller.
func serverFault(code codes.Code) bool {
	switch code {
	case codes.Unknown, codes.Internal, codes.Unavailable, codes.DataLoss:
		return true
	}
	return false
}

// UnaryServerInterceptor traces, measures, and logs every unary call. The
// handler context carries the span and the method name so that
// [Logger] enriches every log line of the call.
func UnaryServerInterceptor(m *Metrics) grpc.UnaryServerInterceptor {
	prop := propagation.TraceContext{}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		if md, ok := metadata.FromIncomingContext(ctx); ok {
			ctx = prop.Extract(ctx, metadataCarrier(md))
		}
		ctx, span := StartSpan(ctx, info.FullMethod,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("rpc.system", "grpc")),
		)
		defer span.End()
		ctx = WithRPC(ctx, info.FullMethod)

		resp, err := handler(ctx, req)

		code := status.Code(err)
		duration := time.Since(start)
		m.RecordRPC(ctx, info.FullMethod, code.String(), duration)
		span.SetAttributes(attribute.Int("rpc.grpc.status_code", int(code)))

		log := Logger(ctx)
		switch {
		case err == nil:
			log.Debug("rpc completed", "duration", duration)
		case serverFault(code):
			span.SetStatus(otelcodes.Error, err.Error())
			log.Error("rpc failed", "code", code.String(), "duration", duration, "err", err)
		default:
			log.Info("rpc rejected", "code", code.String(), "duration", duration, "err", err)
		}
		return resp, err
	}
}
