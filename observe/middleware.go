package observe

import (
	"context"
	"time"
)

// ExecuteFunc is the signature for tool call execution functions.
// This is the standard function signature that Middleware wraps.
type ExecuteFunc func(ctx context.Context, meta ToolMeta, input any) (any, error)

// Middleware wraps tool calls with observability (tracing, metrics, logging).
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe ExecuteFunc.
//   - Context: Propagates context through tracing spans.
//   - Errors: Errors from the wrapped function are recorded and propagated unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a Middleware from the given observability components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Metrics returns the middleware's metrics recorder, for call sites that
// record outcomes the middleware cannot see (cache lookups).
func (m *Middleware) Metrics() Metrics {
	return m.metrics
}

// Wrap wraps an ExecuteFunc with tracing, metrics, and logging.
func (m *Middleware) Wrap(fn ExecuteFunc) ExecuteFunc {
	return func(ctx context.Context, meta ToolMeta, input any) (any, error) {
		ctx, span := m.tracer.StartSpan(ctx, meta)

		start := time.Now()
		result, err := fn(ctx, meta, input)
		duration := time.Since(start)

		m.tracer.EndSpan(span, err)
		m.metrics.RecordCall(ctx, meta, duration, err)

		toolLogger := m.logger.WithTool(meta)
		fields := []Field{
			{Key: "duration_ms", Value: float64(duration.Milliseconds())},
		}
		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			toolLogger.Error(ctx, "tool call failed", fields...)
		} else {
			toolLogger.Info(ctx, "tool call completed", fields...)
		}

		return result, err
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(newTracer(obs.Tracer()), metrics, obs.Logger()), nil
}
