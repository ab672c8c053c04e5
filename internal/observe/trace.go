package observe

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/MrWong99/sotabridge"

// Tracer returns the bridge's [trace.Tracer] from the globally registered
// [trace.TracerProvider].
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartSpan starts a new span and returns the updated context and span. The
// caller must call span.End() when done.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, opts...)
}

// CorrelationID extracts the trace ID from the OTel span context in ctx.
// Returns the empty string when no active span with a valid trace ID exists.
func CorrelationID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if sc.HasTraceID() {
		return sc.TraceID().String()
	}
	return ""
}

type rpcKey struct{}

// WithRPC returns a copy of ctx that carries the full gRPC method name for
// [Logger].
func WithRPC(ctx context.Context, method string) context.Context {
	return context.WithValue(ctx, rpcKey{}, method)
}

// RPC returns the gRPC method name stored by [WithRPC], or "".
func RPC(ctx context.Context) string {
	m, _ := ctx.Value(rpcKey{}).(string)
	return m
}

// Logger returns an [slog.Logger] enriched with trace_id and span_id from
// the OTel span context in ctx, and with the rpc method when ctx belongs to
// a gRPC call. Without either the default logger is returned unchanged.
func Logger(ctx context.Context) *slog.Logger {
	l := slog.Default()
	sc := trace.SpanContextFromContext(ctx)
	if sc.HasTraceID() {
		l = l.With(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	if m := RPC(ctx); m != "" {
		l = l.With(slog.String("rpc", m))
	}
	return l
}
