package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load reads a config.yaml file and returns a Config with environment
// variables resolved, environment overrides applied, and defaults filled
// in. path may be empty, in which case the file step is skipped and the
// config comes from the environment and defaults alone.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvironmentVariables(&cfg)
	resolveEnvVars(&cfg)
	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	setDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnvironmentVariables sets OS env vars from the config's
// environment_variables section before anything reads them.
func applyEnvironmentVariables(cfg *Config) {
	for k, v := range cfg.EnvironmentVariables {
		os.Setenv(k, ResolveEnvVar(v))
	}
}

func resolveEnvVars(cfg *Config) {
	cfg.Upstream.APIBase = ResolveEnvVar(cfg.Upstream.APIBase)
	cfg.Upstream.UserAgent = ResolveEnvVar(cfg.Upstream.UserAgent)
}

// applyEnvOverrides lets the process environment override file values:
// HOST, PORT, GNEWS_API_BASE, GNEWS_TIMEOUT_SECONDS, METRICS_ENABLED.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("GNEWS_API_BASE"); v != "" {
		cfg.Upstream.APIBase = v
	}
	if v := os.Getenv("GNEWS_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid GNEWS_TIMEOUT_SECONDS %q: %w", v, err)
		}
		cfg.Upstream.TimeoutSeconds = secs
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid METRICS_ENABLED %q: %w", v, err)
		}
		cfg.Metrics.Enabled = enabled
	}
	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Upstream.APIBase == "" {
		cfg.Upstream.APIBase = DefaultAPIBase
	}
	if cfg.Upstream.TimeoutSeconds == 0 {
		cfg.Upstream.TimeoutSeconds = DefaultTimeoutSeconds
	}
}
