package config

import (
	"os"
	"path/filepath"
	"testing"
)

// helper to build a config quickly
func proxyWith(backend, redisURL string) *Config {
	return &Config{
		Proxy: ProxyConfig{
			Cache: CacheConfig{
				Backend:  backend,
				RedisURL: redisURL,
			},
		},
	}
}

// ---- tests ----

func TestValidate_EmptyConfigIsValid(t *testing.T) {
	if err := Validate(&Config{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_NilConfig(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestValidate_CacheBackends(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{"memory", proxyWith("memory", ""), false},
		{"redis", proxyWith("redis", "redis://localhost:6379/0"), false},
		{"redis without url", proxyWith("redis", ""), true},
		{"memory with redis url", proxyWith("memory", "redis://localhost:6379"), true},
		{"unknown backend", proxyWith("memcached", ""), true},
	}

	for _, tt := range tests {
		err := Validate(tt.cfg)
		if tt.wantErr && err == nil {
			t.Fatalf("%s: expected error, got nil", tt.name)
		}
		if !tt.wantErr && err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
	}
}

func TestValidate_PathMustBeAbsolute(t *testing.T) {
	cfg := &Config{Proxy: ProxyConfig{Path: "activity"}}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected path error, got nil")
	}
}

func TestValidate_UpstreamURL(t *testing.T) {
	cfg := &Config{Proxy: ProxyConfig{Upstream: UpstreamConfig{BaseURL: "ftp://api.lanyard.rest/v1/users/"}}}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected scheme error, got nil")
	}

	cfg.Proxy.Upstream.BaseURL = "https://api.lanyard.rest/v1/users/"
	cfg.Proxy.Upstream.UserID = "../admin"
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected user id error, got nil")
	}
}

func TestValidate_PollerIntervalFloor(t *testing.T) {
	cfg := &Config{Poller: PollerConfig{IntervalMs: 500}}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected interval error, got nil")
	}

	cfg.Poller.IntervalMs = 1000
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MetricsListenCollision(t *testing.T) {
	cfg := &Config{
		Proxy:   ProxyConfig{Listen: ":8080"},
		Metrics: MetricsConfig{Listen: ":8080"},
	}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected collision error, got nil")
	}

	// unset proxy.listen binds DefaultListen
	cfg = &Config{Metrics: MetricsConfig{Listen: DefaultListen}}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected collision with default proxy listen, got nil")
	}
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := Default()

	if cfg.Proxy.Path != "/.netlify/functions/activity" {
		t.Fatalf("path=%q", cfg.Proxy.Path)
	}
	if cfg.Proxy.Cache.FreshnessMs != 30000 {
		t.Fatalf("freshness=%d", cfg.Proxy.Cache.FreshnessMs)
	}
	if cfg.Poller.IntervalMs != 30000 {
		t.Fatalf("interval=%d", cfg.Poller.IntervalMs)
	}
	if cfg.Poller.Endpoint != "http://localhost:8080/.netlify/functions/activity" {
		t.Fatalf("endpoint=%q", cfg.Poller.Endpoint)
	}
	if cfg.Proxy.ValidatePayload == nil || !*cfg.Proxy.ValidatePayload {
		t.Fatalf("validate_payload should default to true")
	}
	if cfg.Proxy.Cache.RedisKey != "" {
		t.Fatalf("redis key set for memory backend: %q", cfg.Proxy.Cache.RedisKey)
	}
}

func TestLoad_ExpandsEnvAndRejectsUnknownKeys(t *testing.T) {
	t.Setenv("ACTIVITY_TEST_REDIS", "redis://cache:6379/1")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
proxy:
  listen: ":9000"
  cache:
    backend: redis
    redis_url: ${ACTIVITY_TEST_REDIS}
  validate_payload: false
poller:
  interval_ms: 15000
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() err=%v", err)
	}
	Normalize(cfg)

	if cfg.Proxy.Cache.RedisURL != "redis://cache:6379/1" {
		t.Fatalf("redis_url=%q", cfg.Proxy.Cache.RedisURL)
	}
	if cfg.Proxy.Cache.RedisKey != "activity:presence" {
		t.Fatalf("redis_key=%q", cfg.Proxy.Cache.RedisKey)
	}
	if *cfg.Proxy.ValidatePayload {
		t.Fatalf("validate_payload should stay false")
	}
	if cfg.Poller.IntervalMs != 15000 {
		t.Fatalf("interval=%d", cfg.Poller.IntervalMs)
	}

	if _, err := Parse([]byte("proxy:\n  listne: \":1\"\n")); err == nil {
		t.Fatalf("expected unknown field error, got nil")
	}
}

func TestLoad_ExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config.example.yaml"))
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() err=%v", err)
	}
	Normalize(cfg)
	if cfg.Metrics.Listen != ":9090" {
		t.Fatalf("metrics listen=%q", cfg.Metrics.Listen)
	}
}
