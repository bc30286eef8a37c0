package config

import (
	"fmt"
	"log"
	"net/url"
	"sort"
)

// Validate checks resolved values and warns about unrecognized fields.
// Unknown fields are ignored with a warning rather than rejected, so configs
// written for newer versions still load.
func Validate(cfg *Config) error {
	warnOverflow("config", cfg.Overflow)
	warnOverflow("server", cfg.Server.Overflow)
	warnOverflow("upstream", cfg.Upstream.Overflow)
	warnOverflow("metrics", cfg.Metrics.Overflow)

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", cfg.Server.Port)
	}
	if cfg.Upstream.TimeoutSeconds <= 0 {
		return fmt.Errorf("upstream.timeout_seconds must be positive, got %d", cfg.Upstream.TimeoutSeconds)
	}
	u, err := url.Parse(cfg.Upstream.APIBase)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("upstream.api_base %q is not an absolute URL", cfg.Upstream.APIBase)
	}
	return nil
}

func warnOverflow(section string, overflow map[string]any) {
	if len(overflow) == 0 {
		return
	}
	keys := make([]string, 0, len(overflow))
	for k := range overflow {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		log.Printf("[WARNING] Unrecognized config field %s.%s — field will be ignored", section, k)
	}
}
