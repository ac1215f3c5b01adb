// internal/config/config.go
package config

type Config struct {
	Proxy   ProxyConfig   `yaml:"proxy"`
	Poller  PollerConfig  `yaml:"poller"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

// ---- PROXY ----

type ProxyConfig struct {
	Listen string `yaml:"listen"`
	Path   string `yaml:"path"`

	Upstream UpstreamConfig `yaml:"upstream"`
	Cache    CacheConfig    `yaml:"cache"`

	// ValidatePayload rejects upstream bodies that do not match the
	// presence schema instead of caching them.
	ValidatePayload *bool `yaml:"validate_payload"`
}

type UpstreamConfig struct {
	BaseURL   string `yaml:"base_url"`
	UserID    string `yaml:"user_id"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- CACHE ----

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

type CacheConfig struct {
	Backend     string `yaml:"backend"`
	FreshnessMs int    `yaml:"freshness_ms"`

	RedisURL       string `yaml:"redis_url"`
	RedisKey       string `yaml:"redis_key"`
	RedisConnectMs int    `yaml:"redis_connect_ms"`
}

// ---- POLLER ----

type PollerConfig struct {
	Endpoint   string `yaml:"endpoint"`
	IntervalMs int    `yaml:"interval_ms"`
	TimeoutMs  int    `yaml:"timeout_ms"`
}

// ---- AMBIENT ----

type MetricsConfig struct {
	Listen string `yaml:"listen"` // empty disables the metrics listener
}

type LogConfig struct {
	Verbose bool `yaml:"verbose"`
}
