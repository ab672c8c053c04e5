// Package observe provides the bridge's observability primitives:
// OpenTelemetry metrics, tracing, trace-aware logging, and the gRPC and HTTP
// middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API and exported to
// Prometheus by [InitProvider]. A package-level default [Metrics] instance
// ([DefaultMetrics]) is provided for convenience; tests should use
// [NewMetrics] with a custom [metric.MeterProvider] to avoid cross-test
// pollution.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all bridge metrics.
const meterName = "github.com/MrWong99/sotabridge"

// Metrics holds all OpenTelemetry metric instruments for the bridge.
// All fields are safe for concurrent use.
type Metrics struct {
	// RPCDuration tracks gRPC handler latency. Attributes: method, code.
	RPCDuration metric.Float64Histogram

	// RPCRequests counts finished gRPC calls. Attributes: method, code.
	RPCRequests metric.Int64Counter

	// QueueDepth tracks work items waiting for the device worker.
	QueueDepth metric.Int64UpDownCounter

	// QueueWait tracks the time a work item spends queued before the worker
	// picks it up. Attribute: op.
	QueueWait metric.Float64Histogram

	// ExecDuration tracks the time the worker spends inside the device
	// library for one work item. Attribute: op.
	ExecDuration metric.Float64Histogram

	// WorkItems counts finished work items. Attributes: op, outcome.
	WorkItems metric.Int64Counter

	// ActivePlayback tracks registered asynchronous playbacks.
	ActivePlayback metric.Int64UpDownCounter

	// ActiveRecordings tracks in-flight microphone recordings.
	ActiveRecordings metric.Int64UpDownCounter

	// HTTPRequestDuration tracks admin HTTP latency. Attributes: method, path.
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds). Robot
// motions and speech recognition routinely run for several seconds.
var latencyBuckets = []float64{
	0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider].
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.RPCDuration, err = m.Float64Histogram("sotabridge.rpc.duration",
		metric.WithDescription("Latency of gRPC handlers by method and status code."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.RPCRequests, err = m.Int64Counter("sotabridge.rpc.requests",
		metric.WithDescription("Total gRPC calls by method and status code."),
	); err != nil {
		return nil, err
	}
	if met.QueueDepth, err = m.Int64UpDownCounter("sotabridge.queue.depth",
		metric.WithDescription("Work items waiting for the device worker."),
	); err != nil {
		return nil, err
	}
	if met.QueueWait, err = m.Float64Histogram("sotabridge.queue.wait",
		metric.WithDescription("Time work items spend queued before execution."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ExecDuration, err = m.Float64Histogram("sotabridge.worker.exec.duration",
		metric.WithDescription("Time the worker spends inside the device library per work item."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.WorkItems, err = m.Int64Counter("sotabridge.worker.items",
		metric.WithDescription("Total work items by operation and outcome."),
	); err != nil {
		return nil, err
	}
	if met.ActivePlayback, err = m.Int64UpDownCounter("sotabridge.active_playback",
		metric.WithDescription("Registered asynchronous audio playbacks."),
	); err != nil {
		return nil, err
	}
	if met.ActiveRecordings, err = m.Int64UpDownCounter("sotabridge.active_recordings",
		metric.WithDescription("In-flight microphone recordings."),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("sotabridge.http.request.duration",
		metric.WithDescription("Admin HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Panics if instrument creation
// fails.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String].
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordRPC records one finished gRPC call.
func (m *Metrics) RecordRPC(ctx context.Context, method, code string, d time.Duration) {
	attrs := metric.WithAttributes(Attr("method", method), Attr("code", code))
	m.RPCRequests.Add(ctx, 1, attrs)
	m.RPCDuration.Record(ctx, d.Seconds(), attrs)
}

// RecordWorkItem records the queue wait, execution time, and outcome of one
// work item. A zero exec duration means the item never ran.
func (m *Metrics) RecordWorkItem(ctx context.Context, op, outcome string, wait, exec time.Duration) {
	opAttr := metric.WithAttributes(Attr("op", op))
	m.QueueWait.Record(ctx, wait.Seconds(), opAttr)
	if exec > 0 {
		m.ExecDuration.Record(ctx, exec.Seconds(), opAttr)
	}
	m.WorkItems.Add(ctx, 1, metric.WithAttributes(Attr("op", op), Attr("outcome", outcome)))
}
