package config

import (
	"fmt"
	"slices"

	"github.com/kbukum/streamkit/logger"
	"github.com/kbukum/streamkit/observability"
)

var validEnvironments = []string{"development", "staging", "production"}

// ServiceConfig contains the fields every streamkit binary needs.
// Binaries embed it in their own config structs:
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Query query.Config   `yaml:"query" mapstructure:"query"`
//	}
type ServiceConfig struct {
	Name        string                     `yaml:"name" mapstructure:"name"`
	Environment string                     `yaml:"environment" mapstructure:"environment"`
	Version     string                     `yaml:"version" mapstructure:"version"`
	Debug       bool                       `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config              `yaml:"logging" mapstructure:"logging"`
	Tracing     observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics     observability.MeterConfig  `yaml:"metrics" mapstructure:"metrics"`
}

// GetServiceConfig returns the base ServiceConfig. It is promoted through
// embedding.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults fills unset fields and propagates the service identity into
// the logging and telemetry sections.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()

	tracing := observability.DefaultTracerConfig(c.Name)
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = tracing.ServiceName
	}
	if c.Tracing.ServiceVersion == "" {
		c.Tracing.ServiceVersion = firstNonEmpty(c.Version, tracing.ServiceVersion)
	}
	if c.Tracing.Environment == "" {
		c.Tracing.Environment = c.Environment
	}
	if c.Tracing.SampleRate == 0 {
		c.Tracing.SampleRate = tracing.SampleRate
	}

	metrics := observability.DefaultMeterConfig(c.Name)
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = metrics.ServiceName
	}
	if c.Metrics.ServiceVersion == "" {
		c.Metrics.ServiceVersion = firstNonEmpty(c.Version, metrics.ServiceVersion)
	}
	if c.Metrics.Environment == "" {
		c.Metrics.Environment = c.Environment
	}
	if c.Metrics.Interval <= 0 {
		c.Metrics.Interval = metrics.Interval
	}
}

// Validate validates the base configuration fields.
func (c *ServiceConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	if !slices.Contains(validEnvironments, c.Environment) {
		return fmt.Errorf("config.environment must be one of %v (got: %s)", validEnvironments, c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return fmt.Errorf("config.tracing.sample_rate must be within [0, 1] (got: %g)", c.Tracing.SampleRate)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
