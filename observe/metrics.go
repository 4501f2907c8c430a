package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records telemetry for tool calls.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordCall records a completed tool call with duration and error status.
	RecordCall(ctx context.Context, meta ToolMeta, duration time.Duration, err error)

	// RecordCacheLookup records a file cache lookup outcome.
	RecordCacheLookup(ctx context.Context, meta ToolMeta, hit bool)
}

type metricsImpl struct {
	callCount    metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
	cacheLookups metric.Int64Counter
}

// newMetrics creates a Metrics instance with the given meter.
func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	callCount, err := meter.Int64Counter(
		"github.tool.calls",
		metric.WithDescription("Total number of tool calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"github.tool.errors",
		metric.WithDescription("Total number of failed tool calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"github.tool.duration_ms",
		metric.WithDescription("Tool call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	cacheLookups, err := meter.Int64Counter(
		"github.file.cache.lookups",
		metric.WithDescription("File content cache lookups by outcome"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		callCount:    callCount,
		errorCount:   errorCount,
		durationHist: durationHist,
		cacheLookups: cacheLookups,
	}, nil
}

// RecordCall records counters and duration for a tool call.
func (m *metricsImpl) RecordCall(ctx context.Context, meta ToolMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(attribute.String("tool.name", meta.Name))

	m.callCount.Add(ctx, 1, opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordCacheLookup records a cache hit or miss for a file read.
func (m *metricsImpl) RecordCacheLookup(ctx context.Context, meta ToolMeta, hit bool) {
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tool.name", meta.Name),
		attribute.Bool("cache.hit", hit),
	))
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (noopMetrics) RecordCall(context.Context, ToolMeta, time.Duration, error) {}
func (noopMetrics) RecordCacheLookup(context.Context, ToolMeta, bool)          {}

// NoopMetrics returns a Metrics that records nothing.
func NoopMetrics() Metrics { return noopMetrics{} }

// Ensure implementations satisfy Metrics
var (
	_ Metrics = (*metricsImpl)(nil)
	_ Metrics = noopMetrics{}
)
