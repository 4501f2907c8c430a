// Package config centralizes process configuration loading.
//
// Everything operational is fixed at build time (rate window, cache
// TTL, file-size cap, search-result cap); the environment only selects
// the listen port, log level, and telemetry exporters. The GitHub
// credential is deliberately not read here: the provider resolves it
// lazily so a missing token fails on first use, not at startup.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the process configuration.
type Config struct {
	// Port is the TCP port the HTTP transport listens on.
	Port int

	// LogLevel is one of debug|info|warn|error.
	LogLevel string

	// TracingExporter selects the trace exporter: otlp|stdout|none.
	TracingExporter string

	// MetricsExporter selects the metrics exporter: otlp|prometheus|stdout|none.
	MetricsExporter string
}

// Load reads configuration from the environment, applying defaults.
// A .env file in the working directory is honored if present.
func Load() (Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid PORT: %w", err)
	}
	if port < 1 || port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT: %d out of range", port)
	}

	return Config{
		Port:            port,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		TracingExporter: getEnv("TRACING_EXPORTER", "none"),
		MetricsExporter: getEnv("METRICS_EXPORTER", "none"),
	}, nil
}

// Addr returns the listen address for the HTTP transport.
func (c Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
