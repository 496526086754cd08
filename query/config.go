package query

import (
	"github.com/kbukum/streamkit/util"
	"github.com/kbukum/streamkit/validation"
)

// Defaults for a Library built without options.
const (
	DefaultSampleSize = 1000
	DefaultMinValue   = 0
	DefaultMaxValue   = 1000
	DefaultSeed       = int64(0)

	// boundLimit keeps max-min+1 within int range.
	boundLimit = 1 << 30
)

// DefaultFruits returns the default fruit list.
func DefaultFruits() []string {
	return []string{"Apple", "Orange", "Banana", "Pear", "Peach", "Tomato"}
}

// DefaultVeggies returns the default veggie list.
func DefaultVeggies() []string {
	return []string{"Corn", "Potato", "Carrot", "Pea", "Tomato"}
}

// Config describes the sources a Library is built from. It is usually
// loaded from the query section of a service config file.
type Config struct {
	Seed       int64    `yaml:"seed" mapstructure:"seed"`
	SampleSize int      `yaml:"sample_size" mapstructure:"sample_size" validate:"min=1,max=1000000"`
	MinValue   int      `yaml:"min_value" mapstructure:"min_value"`
	MaxValue   int      `yaml:"max_value" mapstructure:"max_value" validate:"gtefield=MinValue"`
	Fruits     []string `yaml:"fruits" mapstructure:"fruits" validate:"min=1,dive,required"`
	Veggies    []string `yaml:"veggies" mapstructure:"veggies" validate:"min=1,dive,required"`
}

// DefaultConfig returns the configuration of query.New().
func DefaultConfig() Config {
	cfg := Config{Seed: DefaultSeed}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields. Bounds are defaulted only when both are zero.
func (c *Config) ApplyDefaults() {
	if c.SampleSize == 0 {
		c.SampleSize = DefaultSampleSize
	}
	if c.MinValue == 0 && c.MaxValue == 0 {
		c.MinValue = DefaultMinValue
		c.MaxValue = DefaultMaxValue
	}
	if c.Fruits == nil {
		c.Fruits = DefaultFruits()
	}
	if c.Veggies == nil {
		c.Veggies = DefaultVeggies()
	}
}

// Validate checks struct tags first, then the numeric bounds.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	return validation.New().
		Range("min_value", c.MinValue, -boundLimit, boundLimit).
		Range("max_value", c.MaxValue, -boundLimit, boundLimit).
		Err()
}

func (c Config) clone() Config {
	c.Fruits = util.Clone(c.Fruits)
	c.Veggies = util.Clone(c.Veggies)
	return c
}
