// Package observe provides telemetry for GitHub tool calls.
//
// It is a pure instrumentation layer: structured JSON logging with
// credential redaction, OpenTelemetry tracing and metrics, and a
// middleware that wraps each tool call with all three. It performs no
// I/O beyond exporter setup.
package observe
