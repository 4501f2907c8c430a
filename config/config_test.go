package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.TracingExporter != "none" || cfg.MetricsExporter != "none" {
		t.Errorf("exporters = %q/%q, want none/none", cfg.TracingExporter, cfg.MetricsExporter)
	}
}

func TestLoad_PortOverride(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if got := cfg.Addr(); got != "0.0.0.0:9090" {
		t.Errorf("Addr() = %q, want 0.0.0.0:9090", got)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	for _, bad := range []string{"not-a-port", "0", "70000"} {
		t.Setenv("PORT", bad)
		if _, err := Load(); err == nil {
			t.Errorf("Load() with PORT=%q should error", bad)
		}
	}
}
