package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/streamkit/logger"
	"github.com/kbukum/streamkit/observability"
)

// App runs a finite task with uniform lifecycle management.
// The type parameter C is the config type, which must satisfy the Config interface.
// Any struct embedding config.ServiceConfig automatically satisfies Config.
//
// Example:
//
//	app, err := bootstrap.NewApp(&myConfig)
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*MyConfig]) error {
//	    a.AddHealthChecker(query.New(query.WithMetrics(a.Metrics)))
//	    return nil
//	})
//	app.RunTask(ctx, run)
type App[C Config] struct {
	Name    string
	Version string
	Cfg     C
	Logger  *logger.Logger
	Summary *Summary
	// Metrics is set once telemetry has started; nil before that.
	Metrics *observability.Metrics

	gracefulTimeout time.Duration
	out             io.Writer
	metricReaders   []sdkmetric.Reader
	checkers        []observability.HealthChecker
	shutdowns       []Hook
	onConfigure     []func(ctx context.Context, app *App[C]) error

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// NewApp creates a new application instance from a typed config.
// It applies defaults, validates the config, and initializes the logger.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.GetServiceConfig()

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		gracefulTimeout: 15 * time.Second,
		out:             os.Stdout,
	}

	o := resolveOptions(opts)
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	if o.out != nil {
		app.out = o.out
	}
	app.metricReaders = o.metricReaders

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(base.Logging)
		logger.RegisterDefaults("bootstrap", "config")
		app.Logger = logger.Get("bootstrap")
	}

	app.Summary = NewSummary(base.Name, base.Version)
	return app, nil
}

// AddHealthChecker registers a checker consulted by ReadyCheck and Health.
func (a *App[C]) AddHealthChecker(checkers ...observability.HealthChecker) {
	a.checkers = append(a.checkers, checkers...)
}

// OnConfigure registers a callback to run during the configure phase.
// Use this to build domain objects once telemetry is available.
func (a *App[C]) OnConfigure(fn func(ctx context.Context, app *App[C]) error) {
	a.onConfigure = append(a.onConfigure, fn)
}

// Health runs every registered checker.
func (a *App[C]) Health(ctx context.Context) *observability.ServiceHealth {
	return observability.CheckAll(ctx, a.Name, a.Version, a.checkers...)
}

// ReadyCheck verifies that all registered checkers report up.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	var unhealthy []string
	for _, h := range a.Health(ctx).Components {
		if h.Status != observability.HealthStatusUp {
			detail := h.Name + "=" + string(h.Status)
			if h.Message != "" {
				detail += "(" + h.Message + ")"
			}
			unhealthy = append(unhealthy, detail)
		}
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy components: %v", unhealthy)
	}
	return nil
}

// RunTask executes a finite task with the full bootstrap lifecycle:
// Telemetry → OnStart hooks → Configure → ReadyCheck → OnReady hooks →
// Task → OnStop hooks → Telemetry shutdown.
//
// The task context is canceled on SIGINT/SIGTERM.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		// Release whatever telemetry was already started.
		_ = a.stop()
		return err
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("Received signal, canceling task", logger.Fields("signal", sig.String()))
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx)

	if stopErr := a.stop(); stopErr != nil {
		if taskErr != nil {
			return taskErr
		}
		return stopErr
	}

	return taskErr
}

// startup performs the initialization sequence before the task runs.
func (a *App[C]) startup(ctx context.Context) error {
	start := time.Now()

	a.Logger.Info("Starting application", logger.Fields(
		"name", a.Name,
		"version", a.Version,
	))

	// Phase 1: Initialize telemetry
	if err := a.initialize(ctx); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	// Phase 2: Configure
	if err := a.configure(ctx); err != nil {
		return fmt.Errorf("configuration failed: %w", err)
	}

	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", logger.MergeWithError(nil, err))
	}

	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.Summary.SetStartupDuration(time.Since(start))
	a.Summary.SetHealth(a.Health(ctx))
	a.Summary.Display(a.out)

	return nil
}

// initialize starts the tracer and meter providers (Phase 1).
func (a *App[C]) initialize(ctx context.Context) error {
	base := a.Cfg.GetServiceConfig()

	tp, err := observability.InitTracer(ctx, base.Tracing)
	if err != nil {
		return fmt.Errorf("tracer: %w", err)
	}
	a.shutdowns = append(a.shutdowns, tp.Shutdown)

	mp, err := observability.InitMeter(ctx, base.Metrics, a.metricReaders...)
	if err != nil {
		return fmt.Errorf("meter: %w", err)
	}
	a.shutdowns = append(a.shutdowns, mp.Shutdown)

	metrics, err := observability.NewMetrics(mp.Meter(a.Name))
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	a.Metrics = metrics

	a.Summary.TrackInfrastructure("tracer", endpointOrLocal(base.Tracing.Endpoint))
	a.Summary.TrackInfrastructure("meter", endpointOrLocal(base.Metrics.Endpoint))

	a.Logger.Debug("Phase 1: Telemetry started")
	return nil
}

func endpointOrLocal(endpoint string) string {
	if endpoint == "" {
		return "local only"
	}
	return endpoint
}

// configure runs registered configuration callbacks (Phase 2).
func (a *App[C]) configure(ctx context.Context) error {
	if len(a.onConfigure) == 0 {
		return nil
	}

	a.Logger.Debug("Phase 2: Running configuration callbacks", logger.Fields(
		"count", len(a.onConfigure),
	))

	for _, fn := range a.onConfigure {
		if err := fn(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// stop runs OnStop hooks, then shuts telemetry down, within the graceful timeout.
func (a *App[C]) stop() error {
	a.Logger.Debug("Shutting down application", logger.Fields(
		"timeout", a.gracefulTimeout.String(),
	))

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	shutdownErr := runStopHooks(ctx, a.onStop)
	if shutdownErr != nil {
		a.Logger.Error("OnStop hook error", logger.MergeWithError(nil, shutdownErr))
	}

	if err := runStopHooks(ctx, a.shutdowns); err != nil {
		a.Logger.Error("Telemetry shutdown error", logger.MergeWithError(nil, err))
		if shutdownErr == nil {
			shutdownErr = err
		}
	}
	a.shutdowns = nil

	a.Logger.Info("Application shutdown complete")
	return shutdownErr
}
