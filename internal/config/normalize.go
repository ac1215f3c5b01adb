// internal/config/normalize.go
package config

const (
	DefaultListen        = ":8080"
	DefaultPath          = "/.netlify/functions/activity"
	DefaultUpstreamURL   = "https://api.lanyard.rest/v1/users/"
	DefaultUserID        = "860733331532808213"
	DefaultTimeoutMs     = 10000
	DefaultFreshnessMs   = 30000
	DefaultIntervalMs    = 30000
	DefaultRedisKey      = "activity:presence"
	DefaultRedisConnect  = 15000
	DefaultPollerBaseURL = "http://localhost:8080"
)

// Normalize fills defaults. It is allowed to mutate configuration.
// Call it after Validate: validation sees what the user wrote.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	p := &cfg.Proxy
	if p.Listen == "" {
		p.Listen = DefaultListen
	}
	if p.Path == "" {
		p.Path = DefaultPath
	}
	if p.Upstream.BaseURL == "" {
		p.Upstream.BaseURL = DefaultUpstreamURL
	}
	if p.Upstream.UserID == "" {
		p.Upstream.UserID = DefaultUserID
	}
	if p.Upstream.TimeoutMs == 0 {
		p.Upstream.TimeoutMs = DefaultTimeoutMs
	}
	if p.ValidatePayload == nil {
		v := true
		p.ValidatePayload = &v
	}

	c := &p.Cache
	if c.Backend == "" {
		c.Backend = CacheBackendMemory
	}
	if c.FreshnessMs == 0 {
		c.FreshnessMs = DefaultFreshnessMs
	}
	if c.Backend == CacheBackendRedis {
		if c.RedisKey == "" {
			c.RedisKey = DefaultRedisKey
		}
		if c.RedisConnectMs == 0 {
			c.RedisConnectMs = DefaultRedisConnect
		}
	}

	pl := &cfg.Poller
	if pl.Endpoint == "" {
		pl.Endpoint = DefaultPollerBaseURL + p.Path
	}
	if pl.IntervalMs == 0 {
		pl.IntervalMs = DefaultIntervalMs
	}
	if pl.TimeoutMs == 0 {
		pl.TimeoutMs = DefaultTimeoutMs
	}
}
