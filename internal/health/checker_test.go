package health_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/ErlanBelekov/events-client/internal/health"
	"github.com/prometheus/client_golang/prometheus"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func newTestChecker(deps map[string]health.Pinger) (*health.Checker, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	logger := slog.Default()
	return health.NewChecker(deps, logger, reg), reg
}

func TestLiveness_AlwaysUp(t *testing.T) {
	c, _ := newTestChecker(map[string]health.Pinger{"api": &mockPinger{err: errors.New("api down")}})

	result := c.Liveness(context.Background())
	if result.Status != "up" {
		t.Fatalf("expected status up, got %s", result.Status)
	}
	if result.Checks != nil {
		t.Fatalf("expected no checks, got %v", result.Checks)
	}
}

func TestReadiness_AllUp(t *testing.T) {
	c, reg := newTestChecker(map[string]health.Pinger{
		"api":              &mockPinger{},
		"credential_store": health.PingerFunc(func(context.Context) error { return nil }),
	})

	result := c.Readiness(context.Background())
	if result.Status != "up" {
		t.Fatalf("expected status up, got %s", result.Status)
	}
	for _, dep := range []string{"api", "credential_store"} {
		if result.Checks[dep].Status != "up" {
			t.Fatalf("expected %s up, got %+v", dep, result.Checks[dep])
		}
		if g := testGauge(t, reg, "events_client_health_check_up", dep); g != 1 {
			t.Fatalf("expected gauge 1 for %s, got %f", dep, g)
		}
	}
}

func TestReadiness_OneDown(t *testing.T) {
	c, reg := newTestChecker(map[string]health.Pinger{
		"api":              &mockPinger{err: errors.New("connection refused")},
		"credential_store": &mockPinger{},
	})

	result := c.Readiness(context.Background())
	if result.Status != "down" {
		t.Fatalf("expected status down, got %s", result.Status)
	}
	api := result.Checks["api"]
	if api.Status != "down" || api.Error == "" {
		t.Fatalf("expected api down with error, got %+v", api)
	}
	if result.Checks["credential_store"].Status != "up" {
		t.Fatalf("expected credential_store up")
	}

	if g := testGauge(t, reg, "events_client_health_check_up", "api"); g != 0 {
		t.Fatalf("expected gauge 0, got %f", g)
	}
}

func testGauge(t *testing.T, reg *prometheus.Registry, name, depLabel string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "dependency" && lp.GetValue() == depLabel {
					return m.GetGauge().GetValue()
				}
			}
		}
	}
	t.Fatalf("metric %s{dependency=%q} not found", name, depLabel)
	return 0
}
