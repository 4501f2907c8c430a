// Command github-mcp-remote serves GitHub repository tools over the MCP
// streamable HTTP transport, with liveness, readiness, and metrics
// endpoints alongside.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/Product-Data-Cloud/github-mcp-remote/cache"
	"github.com/Product-Data-Cloud/github-mcp-remote/config"
	"github.com/Product-Data-Cloud/github-mcp-remote/health"
	"github.com/Product-Data-Cloud/github-mcp-remote/observe"
	"github.com/Product-Data-Cloud/github-mcp-remote/provider"
	"github.com/Product-Data-Cloud/github-mcp-remote/ratelimit"
	"github.com/Product-Data-Cloud/github-mcp-remote/secret"
	"github.com/Product-Data-Cloud/github-mcp-remote/tools"
)

const serviceName = "github-mcp-remote"

// version is stamped at build time.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	obs, err := observe.NewObserver(ctx, observe.Config{
		ServiceName: serviceName,
		Version:     version,
		Tracing: observe.TracingConfig{
			Enabled:  cfg.TracingExporter != "none",
			Exporter: cfg.TracingExporter,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  cfg.MetricsExporter != "none",
			Exporter: cfg.MetricsExporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   cfg.LogLevel,
		},
	})
	if err != nil {
		return err
	}
	logger := obs.Logger()

	middleware, err := observe.MiddlewareFromObserver(obs)
	if err != nil {
		return err
	}

	// Credential resolution is deferred to the first tool call; a missing
	// token must not prevent startup.
	source := provider.NewLazy(secret.Env("GITHUB_TOKEN"))
	limiter := ratelimit.New(ratelimit.Config{})
	fileCache := cache.NewMemoryCache()

	registry, err := tools.NewRegistry(tools.Config{
		Provider:   source,
		Limiter:    limiter,
		Cache:      fileCache,
		Middleware: middleware,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	mcpServer := server.NewMCPServer(serviceName, version,
		server.WithToolCapabilities(false),
	)
	registry.Register(mcpServer)

	checks := health.NewAggregator(10 * time.Second)
	checks.Register(health.NewCheckerFunc("github", githubCheck(source)))
	checks.Register(health.NewCheckerFunc("limits", limitsCheck(limiter, fileCache)))

	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(mcpServer))
	mux.HandleFunc("/healthz", health.LivenessHandler())
	mux.HandleFunc("/readyz", health.ReadinessHandler(checks))
	if cfg.MetricsExporter == "prometheus" {
		mux.Handle("/metrics", promhttp.Handler())
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info(ctx, "server listening",
			observe.Field{Key: "addr", Value: cfg.Addr()},
			observe.Field{Key: "version", Value: version},
		)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info(context.Background(), "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := httpServer.Shutdown(shutdownCtx)
		if obsErr := obs.Shutdown(shutdownCtx); obsErr != nil && err == nil {
			err = obsErr
		}
		return err
	})

	return g.Wait()
}

// githubCheck verifies the provider is reachable with the configured
// credential. A missing token degrades readiness rather than failing
// it, since the credential is resolved lazily.
func githubCheck(source provider.Source) func(context.Context) health.Result {
	return func(ctx context.Context) health.Result {
		api, err := source.Client(ctx)
		if err != nil {
			return health.Result{
				Status:    health.StatusDegraded,
				Message:   "credential not resolved",
				Error:     err,
				Timestamp: time.Now(),
			}
		}

		quota, err := api.Quota(ctx)
		if err != nil {
			return health.Unhealthy("github unreachable", err)
		}
		return health.Healthy("reachable").WithDetails(map[string]any{
			"rate_limit_remaining": quota.Remaining,
		})
	}
}

// limitsCheck reports limiter and cache occupancy. Always healthy; the
// numbers are operator information.
func limitsCheck(limiter *ratelimit.SlidingWindow, fileCache cache.Cache) func(context.Context) health.Result {
	return func(context.Context) health.Result {
		usage := map[string]any{
			"cache_entries": fileCache.Len(),
		}
		for tool, used := range limiter.Snapshot() {
			usage["calls."+tool] = used
		}
		return health.Healthy("ok").WithDetails(usage)
	}
}
