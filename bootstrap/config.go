package bootstrap

import (
	"github.com/kbukum/streamkit/config"
)

// Config is the constraint for application configuration types. Any struct
// embedding config.ServiceConfig satisfies it through promoted methods:
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Query query.Config   `yaml:"query" mapstructure:"query"`
//	}
//
//	app, err := bootstrap.NewApp[*AppConfig](&cfg)
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
