package bootstrap

import (
	"io"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/streamkit/logger"
)

// Option configures the App during creation.
// Options are non-generic so they can be used with any config type.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	gracefulTimeout *time.Duration
	out             io.Writer
	metricReaders   []sdkmetric.Reader
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger for the application.
// If not set, the logger is initialized from the config's Logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithGracefulTimeout sets the maximum duration for shutdown hooks.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}

// WithOutput sets where the startup summary is written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(o *appOptions) {
		o.out = w
	}
}

// WithMetricReaders attaches extra readers to the meter provider.
func WithMetricReaders(readers ...sdkmetric.Reader) Option {
	return func(o *appOptions) {
		o.metricReaders = append(o.metricReaders, readers...)
	}
}
