// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	// ------------------------------------------------------------
	// PROXY
	// ------------------------------------------------------------

	p := cfg.Proxy
	if p.Path != "" && !strings.HasPrefix(p.Path, "/") {
		return fmt.Errorf("proxy.path %q must start with /", p.Path)
	}
	if p.Path == "/healthz" {
		return fmt.Errorf("proxy.path %q collides with the health route", p.Path)
	}
	if p.Upstream.BaseURL != "" {
		if err := validateHTTPURL("proxy.upstream.base_url", p.Upstream.BaseURL); err != nil {
			return err
		}
	}
	if strings.Contains(p.Upstream.UserID, "/") {
		return fmt.Errorf("proxy.upstream.user_id %q must not contain /", p.Upstream.UserID)
	}
	if p.Upstream.TimeoutMs < 0 {
		return fmt.Errorf("proxy.upstream.timeout_ms must be >= 0")
	}

	// ------------------------------------------------------------
	// CACHE
	// ------------------------------------------------------------

	c := p.Cache
	switch c.Backend {
	case "", CacheBackendMemory:
		if c.RedisURL != "" {
			return fmt.Errorf("proxy.cache.redis_url is set but backend is %q", CacheBackendMemory)
		}
	case CacheBackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("proxy.cache.backend is redis but redis_url is empty")
		}
	default:
		return fmt.Errorf("proxy.cache.backend %q: must be %q or %q", c.Backend, CacheBackendMemory, CacheBackendRedis)
	}
	if c.FreshnessMs < 0 {
		return fmt.Errorf("proxy.cache.freshness_ms must be >= 0")
	}
	if c.RedisConnectMs < 0 {
		return fmt.Errorf("proxy.cache.redis_connect_ms must be >= 0")
	}

	// ------------------------------------------------------------
	// POLLER
	// ------------------------------------------------------------

	pl := cfg.Poller
	if pl.Endpoint != "" {
		if err := validateHTTPURL("poller.endpoint", pl.Endpoint); err != nil {
			return err
		}
	}
	if pl.IntervalMs < 0 {
		return fmt.Errorf("poller.interval_ms must be >= 0")
	}
	if pl.IntervalMs > 0 && pl.IntervalMs < 1000 {
		return fmt.Errorf("poller.interval_ms %d is below the 1000ms floor", pl.IntervalMs)
	}
	if pl.TimeoutMs < 0 {
		return fmt.Errorf("poller.timeout_ms must be >= 0")
	}

	// ------------------------------------------------------------
	// METRICS
	// ------------------------------------------------------------

	proxyListen := p.Listen
	if proxyListen == "" {
		proxyListen = DefaultListen
	}
	if cfg.Metrics.Listen != "" && cfg.Metrics.Listen == proxyListen {
		return fmt.Errorf("metrics.listen %q collides with proxy.listen", cfg.Metrics.Listen)
	}

	return nil
}

func validateHTTPURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s %q: %w", field, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s %q: scheme must be http or https", field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s %q: host required", field, raw)
	}
	return nil
}
