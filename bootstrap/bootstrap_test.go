package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/kbukum/streamkit/config"
	"github.com/kbukum/streamkit/logger"
	"github.com/kbukum/streamkit/observability"
)

// testConfig is a minimal config for testing that satisfies the Config interface.
type testConfig struct {
	config.ServiceConfig
}

// staticChecker reports a fixed health result.
type staticChecker struct {
	health observability.Health
}

func (s staticChecker) CheckHealth(context.Context) observability.Health { return s.health }

func up(name string) staticChecker {
	return staticChecker{observability.Health{Name: name, Status: observability.HealthStatusUp}}
}

func newTestConfig(name, version string) *testConfig {
	return &testConfig{
		ServiceConfig: config.ServiceConfig{
			Name:        name,
			Version:     version,
			Environment: "development",
		},
	}
}

func newTestApp(t *testing.T, opts ...Option) *App[*testConfig] {
	t.Helper()
	opts = append([]Option{WithLogger(logger.Nop()), WithOutput(io.Discard)}, opts...)
	app, err := NewApp(newTestConfig("test-svc", "1.0.0"), opts...)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t)
	if app.Name != "test-svc" {
		t.Errorf("expected name 'test-svc', got %q", app.Name)
	}
	if app.Version != "1.0.0" {
		t.Errorf("expected version '1.0.0', got %q", app.Version)
	}
	if app.Logger == nil {
		t.Error("expected non-nil logger")
	}
	if app.Summary == nil {
		t.Error("expected non-nil summary")
	}
	if app.Metrics != nil {
		t.Error("metrics should not exist before startup")
	}
	// Config is typed
	if app.Cfg.Name != "test-svc" {
		t.Errorf("expected cfg.Name 'test-svc', got %q", app.Cfg.Name)
	}
}

func TestNewApp_AppliesDefaults(t *testing.T) {
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Name: "svc"}}
	app, err := NewApp(cfg, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.Cfg.Environment != "development" {
		t.Errorf("expected default environment, got %q", app.Cfg.Environment)
	}
	if app.Cfg.Tracing.ServiceName != "svc" {
		t.Errorf("expected tracing service name to be propagated, got %q", app.Cfg.Tracing.ServiceName)
	}
}

func TestNewApp_ValidationError(t *testing.T) {
	tests := []struct {
		name string
		cfg  *testConfig
	}{
		{"missing name", &testConfig{}},
		{"bad environment", &testConfig{ServiceConfig: config.ServiceConfig{Name: "svc", Environment: "moon"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewApp(tc.cfg, WithLogger(logger.Nop()))
			if err == nil || !strings.Contains(err.Error(), "config validation") {
				t.Errorf("expected config validation error, got %v", err)
			}
		})
	}
}

func TestNewApp_GracefulTimeout(t *testing.T) {
	app := newTestApp(t, WithGracefulTimeout(time.Second))
	if app.gracefulTimeout != time.Second {
		t.Errorf("expected 1s timeout, got %v", app.gracefulTimeout)
	}
}

func TestRunTask_LifecycleOrder(t *testing.T) {
	app := newTestApp(t)
	var order []string
	record := func(name string) Hook {
		return func(context.Context) error {
			order = append(order, name)
			return nil
		}
	}

	app.OnStart(record("start"))
	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error {
		order = append(order, "configure")
		return nil
	})
	app.OnReady(record("ready"))
	app.OnStop(record("stop-1"), record("stop-2"))

	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		order = append(order, "task")
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}

	want := "start,configure,ready,task,stop-2,stop-1"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("expected order %s, got %s", want, got)
	}
}

func TestRunTask_TaskError(t *testing.T) {
	app := newTestApp(t)
	stopped := false
	app.OnStop(func(context.Context) error {
		stopped = true
		return nil
	})

	taskErr := errors.New("task failed")
	err := app.RunTask(context.Background(), func(context.Context) error { return taskErr })
	if !errors.Is(err, taskErr) {
		t.Errorf("expected task error, got %v", err)
	}
	if !stopped {
		t.Error("stop hooks should run after a failed task")
	}
}

func TestRunTask_StopErrorReported(t *testing.T) {
	app := newTestApp(t)
	app.OnStop(func(context.Context) error { return errors.New("flush failed") })

	err := app.RunTask(context.Background(), func(context.Context) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "flush failed") {
		t.Errorf("expected stop error, got %v", err)
	}
}

func TestRunTask_StartupErrors(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name    string
		setup   func(a *App[*testConfig])
		wantErr string
	}{
		{
			name:    "start hook",
			setup:   func(a *App[*testConfig]) { a.OnStart(func(context.Context) error { return boom }) },
			wantErr: "onStart hook failed",
		},
		{
			name: "configure",
			setup: func(a *App[*testConfig]) {
				a.OnConfigure(func(context.Context, *App[*testConfig]) error { return boom })
			},
			wantErr: "configuration failed",
		},
		{
			name:    "ready hook",
			setup:   func(a *App[*testConfig]) { a.OnReady(func(context.Context) error { return boom }) },
			wantErr: "onReady hook failed",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t)
			tc.setup(app)
			ran := false
			err := app.RunTask(context.Background(), func(context.Context) error {
				ran = true
				return nil
			})
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %v", tc.wantErr, err)
			}
			if !errors.Is(err, boom) {
				t.Errorf("expected wrapped cause, got %v", err)
			}
			if ran {
				t.Error("task should not run after a startup failure")
			}
		})
	}
}

func TestRunTask_ContextCanceled(t *testing.T) {
	app := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	app.OnReady(func(context.Context) error {
		cancel()
		return nil
	})

	err := app.RunTask(ctx, func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
			return errors.New("task context was not canceled")
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunTask_MetricsAvailableDuringConfigure(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	app := newTestApp(t, WithMetricReaders(reader))

	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error {
		if a.Metrics == nil {
			return errors.New("metrics not initialized")
		}
		a.Metrics.RecordOperation(ctx, a.Name, "top_ten", observability.StatusOK, time.Millisecond)
		var rm metricdata.ResourceMetrics
		if err := reader.Collect(ctx, &rm); err != nil {
			return err
		}
		if len(rm.ScopeMetrics) == 0 {
			return errors.New("expected recorded metrics")
		}
		return nil
	})

	if err := app.RunTask(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}
}

func TestReadyCheck(t *testing.T) {
	tests := []struct {
		name     string
		checkers []observability.HealthChecker
		wantErr  string
	}{
		{"no checkers", nil, ""},
		{"all up", []observability.HealthChecker{up("a"), up("b")}, ""},
		{
			name: "degraded",
			checkers: []observability.HealthChecker{up("a"), staticChecker{observability.Health{
				Name: "query", Status: observability.HealthStatusDegraded, Message: "null elements",
			}}},
			wantErr: "query=degraded(null elements)",
		},
		{
			name: "down",
			checkers: []observability.HealthChecker{staticChecker{observability.Health{
				Name: "query", Status: observability.HealthStatusDown,
			}}},
			wantErr: "query=down",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t)
			app.AddHealthChecker(tc.checkers...)
			err := app.ReadyCheck(context.Background())
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestRunTask_UnhealthyDoesNotFail(t *testing.T) {
	app := newTestApp(t)
	app.AddHealthChecker(staticChecker{observability.Health{Name: "query", Status: observability.HealthStatusDown}})
	if err := app.RunTask(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Errorf("ready check issues should only warn, got %v", err)
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	app.AddHealthChecker(up("a"))
	h := app.Health(context.Background())
	if h.Service != "test-svc" || h.Version != "1.0.0" {
		t.Errorf("unexpected identity %s %s", h.Service, h.Version)
	}
	if h.Status != observability.HealthStatusUp || len(h.Components) != 1 {
		t.Errorf("unexpected health %+v", h)
	}
}

func TestRunHooks_StopsAtFirstError(t *testing.T) {
	calls := 0
	hooks := []Hook{
		func(context.Context) error { calls++; return nil },
		func(context.Context) error { calls++; return fmt.Errorf("second") },
		func(context.Context) error { calls++; return nil },
	}
	err := runHooks(context.Background(), hooks)
	if err == nil || !strings.Contains(err.Error(), "hook 1") {
		t.Errorf("expected hook 1 error, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestRunStopHooks_RunsAll(t *testing.T) {
	var order []int
	hooks := []Hook{
		func(context.Context) error { order = append(order, 0); return errors.New("first") },
		func(context.Context) error { order = append(order, 1); return errors.New("second") },
	}
	err := runStopHooks(context.Background(), hooks)
	if err == nil || !strings.Contains(err.Error(), "second") {
		t.Errorf("expected the first error encountered (hook 1), got %v", err)
	}
	if fmt.Sprint(order) != "[1 0]" {
		t.Errorf("expected reverse order, got %v", order)
	}
}

func TestRunTask_WritesSummary(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(t, WithOutput(&buf))
	app.AddHealthChecker(staticChecker{observability.Health{
		Name: "query", Status: observability.HealthStatusUp,
		Details: map[string]string{"fruits": "6 elements"},
	}})
	if err := app.RunTask(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"test-svc v1.0.0 started",
		"tracer: local only",
		"meter: local only",
		"query: up",
		"fruits: 6 elements",
		"All components healthy (1/1)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
