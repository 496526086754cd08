// Package config loads streamkit configuration from YAML files, .env files
// and the process environment.
//
// Files are resolved per service name (./cmd/<name>/config.yml,
// ./config/config.yml, ./config.yml, and .env / .env.<name> next to them).
// Environment variables override file values; UPPER_SNAKE keys are bound to
// every nested key they could denote, so QUERY_SAMPLE_SIZE sets
// query.sample_size.
//
//	var cfg AppConfig
//	err := config.LoadConfig("streamkit", &cfg, config.WithEnvPrefix("STREAMKIT"))
package config
