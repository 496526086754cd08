package bootstrap

import (
	"context"
	"fmt"
)

// Hook is a lifecycle callback that runs during startup or shutdown.
type Hook func(ctx context.Context) error

// OnStart registers hooks that run after telemetry is initialized.
func (a *App[C]) OnStart(hooks ...Hook) {
	a.onStart = append(a.onStart, hooks...)
}

// OnReady registers hooks that run after the health check, before the task.
func (a *App[C]) OnReady(hooks ...Hook) {
	a.onReady = append(a.onReady, hooks...)
}

// OnStop registers hooks that run during shutdown, in reverse order.
func (a *App[C]) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

// runHooks executes hooks in order and stops at the first error.
func runHooks(ctx context.Context, hooks []Hook) error {
	for i, hook := range hooks {
		if err := hook(ctx); err != nil {
			return fmt.Errorf("hook %d: %w", i, err)
		}
	}
	return nil
}

// runStopHooks executes every hook in reverse order and returns the first error.
func runStopHooks(ctx context.Context, hooks []Hook) error {
	var first error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil && first == nil {
			first = fmt.Errorf("stop hook %d: %w", i, err)
		}
	}
	return first
}
