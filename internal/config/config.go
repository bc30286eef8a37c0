package config

import (
	"time"
)

// Defaults applied by Load when the config file and environment leave a
// field unset.
const (
	DefaultHost           = "0.0.0.0"
	DefaultPort           = 8000
	DefaultAPIBase        = "https://gnews.io/api/v4"
	DefaultTimeoutSeconds = 10
)

// Config is the root of the server's YAML configuration. Every section is
// optional; a missing file yields a fully defaulted config. The upstream
// API key is deliberately absent: credentials arrive per call, never via
// configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Metrics  MetricsConfig  `yaml:"metrics"`

	// EnvironmentVariables are exported to the process environment before
	// the rest of the config is resolved.
	EnvironmentVariables map[string]string `yaml:"environment_variables,omitempty"`

	Overflow map[string]any `yaml:",inline"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	Overflow map[string]any `yaml:",inline"`
}

// UpstreamConfig controls the outbound GNews client.
type UpstreamConfig struct {
	// APIBase is the GNews v4 base URL. Supports "os.environ/VAR" references.
	APIBase string `yaml:"api_base"`
	// TimeoutSeconds bounds each upstream call. Single attempt, no retry.
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// UserAgent overrides the default gnews-mcp/1.0 header.
	UserAgent string `yaml:"user_agent"`

	Overflow map[string]any `yaml:",inline"`
}

// Timeout returns the upstream timeout as a duration.
func (u UpstreamConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutSeconds) * time.Second
}

// MetricsConfig controls the Prometheus /metrics endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`

	Overflow map[string]any `yaml:",inline"`
}
