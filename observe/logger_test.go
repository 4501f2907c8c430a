package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func parseLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, line)
	}
	return entry
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("warn", &buf)
	ctx := context.Background()

	logger.Info(ctx, "not emitted")
	logger.Debug(ctx, "not emitted either")
	if buf.Len() != 0 {
		t.Errorf("info/debug emitted below warn level: %q", buf.String())
	}

	logger.Warn(ctx, "emitted")
	entry := parseLogLine(t, &buf)
	if entry["level"] != "warn" || entry["msg"] != "emitted" {
		t.Errorf("entry = %v, want level=warn msg=emitted", entry)
	}
}

func TestLogger_Redaction(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "file write",
		Field{Key: "content", Value: "super secret file body"},
		Field{Key: "token", Value: "ghp_abc"},
		Field{Key: "path", Value: "README.md"},
	)

	entry := parseLogLine(t, &buf)
	if entry["content"] != "[REDACTED]" {
		t.Errorf("content = %v, want [REDACTED]", entry["content"])
	}
	if entry["token"] != "[REDACTED]" {
		t.Errorf("token = %v, want [REDACTED]", entry["token"])
	}
	if entry["path"] != "README.md" {
		t.Errorf("path = %v, want README.md", entry["path"])
	}
}

func TestLogger_WithTool(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	scoped := logger.WithTool(ToolMeta{Name: "get_file_contents", ReadOnly: true})
	scoped.Info(context.Background(), "cache hit")

	entry := parseLogLine(t, &buf)
	if entry["tool.name"] != "get_file_contents" {
		t.Errorf("tool.name = %v, want get_file_contents", entry["tool.name"])
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
