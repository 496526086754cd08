// Package bootstrap runs streamkit binaries through a uniform lifecycle.
//
// NewApp applies config defaults, validates the config and initializes the
// global logger. RunTask then starts telemetry, runs OnStart, OnConfigure
// and OnReady hooks, checks health, executes the task and shuts down.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.AddHealthChecker(lib)
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return run(ctx, lib)
//	})
//
// SIGINT and SIGTERM cancel the task context.
package bootstrap
