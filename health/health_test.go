package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOverallStatus(t *testing.T) {
	tests := []struct {
		name    string
		results map[string]Result
		want    Status
	}{
		{"empty", map[string]Result{}, StatusHealthy},
		{"all healthy", map[string]Result{"a": Healthy("ok"), "b": Healthy("ok")}, StatusHealthy},
		{"one degraded", map[string]Result{"a": Healthy("ok"), "b": {Status: StatusDegraded}}, StatusDegraded},
		{"one unhealthy", map[string]Result{"a": {Status: StatusDegraded}, "b": Unhealthy("down", nil)}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverallStatus(tt.results); got != tt.want {
				t.Errorf("OverallStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregator_CheckAll(t *testing.T) {
	agg := NewAggregator(time.Second)
	agg.Register(NewCheckerFunc("github", func(context.Context) Result {
		return Healthy("reachable")
	}))
	agg.Register(NewCheckerFunc("limits", func(context.Context) Result {
		return Healthy("ok").WithDetails(map[string]any{"cache_entries": 3})
	}))

	results := agg.CheckAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results["github"].Status != StatusHealthy {
		t.Errorf("github status = %v, want healthy", results["github"].Status)
	}
	if results["limits"].Details["cache_entries"] != 3 {
		t.Errorf("limits details = %v, want cache_entries 3", results["limits"].Details)
	}
}

func TestAggregator_Timeout(t *testing.T) {
	agg := NewAggregator(20 * time.Millisecond)
	agg.Register(NewCheckerFunc("slow", func(ctx context.Context) Result {
		select {
		case <-time.After(time.Second):
			return Healthy("too late")
		case <-ctx.Done():
			return Unhealthy("cancelled", ctx.Err())
		}
	}))

	results := agg.CheckAll(context.Background())
	if results["slow"].Status != StatusUnhealthy {
		t.Errorf("slow status = %v, want unhealthy on timeout", results["slow"].Status)
	}
}

func TestReadinessHandler(t *testing.T) {
	agg := NewAggregator(time.Second)
	agg.Register(NewCheckerFunc("github", func(context.Context) Result {
		return Unhealthy("credential rejected", errors.New("401"))
	}))

	rec := httptest.NewRecorder()
	ReadinessHandler(agg)(rec, httptest.NewRequest("GET", "/readyz", nil))

	if rec.Code != 503 {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	var body readyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body.Status != "unhealthy" {
		t.Errorf("body.Status = %q, want unhealthy", body.Status)
	}
	if body.Checks["github"].Error == "" {
		t.Error("check error should be reported")
	}
}

func TestLivenessHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	LivenessHandler()(rec, httptest.NewRequest("GET", "/healthz", nil))
	if rec.Code != 200 || rec.Body.String() != "OK" {
		t.Errorf("liveness = %d %q, want 200 OK", rec.Code, rec.Body.String())
	}
}
