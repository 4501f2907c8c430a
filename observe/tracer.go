package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// ToolMeta identifies a GitHub tool for telemetry purposes.
type ToolMeta struct {
	Name     string // Tool name as registered with the transport (required)
	ReadOnly bool   // True for tools with no side effects on the provider
}

// SpanName returns the deterministic span name for this tool.
// Format: github.tool.<name>
func (m ToolMeta) SpanName() string {
	return "github.tool." + m.Name
}

// Tracer wraps OpenTelemetry tracing with tool-call span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a tool call.
	StartSpan(ctx context.Context, meta ToolMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// newTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func newTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with tool metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta ToolMeta) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(
			attribute.String("tool.name", meta.Name),
			attribute.Bool("tool.read_only", meta.ReadOnly),
		),
	)
}

// EndSpan ends the span, marking its status from err.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("tool.error", true))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// NoopTracer returns a Tracer whose spans record nothing.
func NoopTracer() Tracer {
	return newTracer(tracenoop.NewTracerProvider().Tracer("noop"))
}

// Ensure tracerImpl implements Tracer
var _ Tracer = (*tracerImpl)(nil)
