// Command streamkit runs every collection query against the configured
// sources and prints the results.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kbukum/streamkit/bootstrap"
	"github.com/kbukum/streamkit/config"
	"github.com/kbukum/streamkit/errors"
	"github.com/kbukum/streamkit/logger"
	"github.com/kbukum/streamkit/query"
	"github.com/kbukum/streamkit/version"
)

const serviceName = "streamkit"

// AppConfig is the full configuration of the streamkit binary.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Query                query.Config `yaml:"query" mapstructure:"query"`
}

// ApplyDefaults fills the service and query sections.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.Short()
	}
	c.ServiceConfig.ApplyDefaults()
	c.Query.ApplyDefaults()
}

// Validate validates both sections.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Query.Validate(); err != nil {
		return fmt.Errorf("config.query: %w", err)
	}
	return nil
}

func main() {
	flags := pflag.NewFlagSet(serviceName, pflag.ExitOnError)
	configFile := flags.StringP("config", "c", "", "path to the config file")
	envFile := flags.String("env-file", "", "path to a .env file")
	showVersion := flags.BoolP("version", "v", false, "print version information and exit")
	_ = flags.Parse(os.Args[1:])

	if *showVersion {
		fmt.Println(version.Get().String())
		return
	}

	if err := run(context.Background(), *configFile, *envFile); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configFile, envFile string) error {
	var cfg AppConfig
	opts := []config.LoaderOption{config.WithEnvPrefix("STREAMKIT")}
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		return err
	}
	app.Logger.Debug("build info", version.Get().Fields())

	var lib *query.Library
	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*AppConfig]) error {
		l, err := query.NewFromConfig(a.Cfg.Query,
			query.WithLogger(logger.GetGlobalLogger()),
			query.WithMetrics(a.Metrics),
		)
		if err != nil {
			return err
		}
		lib = l
		a.AddHealthChecker(lib)
		return nil
	})

	return app.RunTask(ctx, func(ctx context.Context) error {
		runQueries(ctx, lib, app.Summary)
		app.Summary.DisplayResults(os.Stdout)
		return nil
	})
}

// runQueries executes every query and records each result, or its error
// code, in s. Query failures are reported, not returned.
func runQueries(ctx context.Context, lib *query.Library, s *bootstrap.Summary) {
	texts := func(name string, fn func(context.Context) ([]string, error)) {
		v, err := fn(ctx)
		s.TrackResult(name, "["+strings.Join(v, ", ")+"]", describe(err))
	}
	ints := func(name string, fn func(context.Context) ([]int, error)) {
		v, err := fn(ctx)
		s.TrackResult(name, fmt.Sprint(v), describe(err))
	}

	texts("sorted_fruits", lib.SortedFruits)
	texts("sorted_fruits_filtered", lib.SortedFruitsFiltered)
	texts("sorted_fruits_first_two", lib.SortedFruitsFirstTwo)

	joined, err := lib.CommaSeparatedFruits(ctx)
	s.TrackResult("comma_separated_fruits", joined, describe(err))

	texts("reverse_sorted_veggies", lib.ReverseSortedVeggies)
	texts("reverse_sorted_veggies_upper", lib.ReverseSortedVeggiesUpper)

	ints("top_ten", lib.TopTen)
	ints("top_ten_unique", lib.TopTenUnique)
	ints("top_ten_unique_odd", lib.TopTenUniqueOdd)

	avg, err := lib.Average(ctx)
	s.TrackResult("average", fmt.Sprintf("%.2f", avg), describe(err))
}

// describe keeps the error code and message of query failures.
func describe(err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("%s (%s)", appErr.Message, appErr.Code)
	}
	return err
}
