// internal/proxy/service.go
package proxy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hako/durafmt"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/tamzrod/activity-status/internal/cache"
	"github.com/tamzrod/activity-status/internal/jsonx"
	"github.com/tamzrod/activity-status/internal/metrics"
	"github.com/tamzrod/activity-status/internal/presence"
	"github.com/tamzrod/activity-status/internal/upstream"
)

const DefaultFreshnessWindow = 30 * time.Second

const flightKey = "presence"

// Fetcher performs one upstream presence call.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

type ServiceConfig struct {
	Logger   *slog.Logger
	Clock    clockwork.Clock
	Store    cache.Store
	Upstream Fetcher

	FreshnessWindow time.Duration
	ValidatePayload bool
}

func (c *ServiceConfig) Validate() error {
	if c.Logger == nil {
		return errors.New("logger is required")
	}
	if c.Store == nil {
		return errors.New("cache store is required")
	}
	if c.Upstream == nil {
		return errors.New("upstream fetcher is required")
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	if c.FreshnessWindow == 0 {
		c.FreshnessWindow = DefaultFreshnessWindow
	}
	if c.FreshnessWindow < 0 {
		return errors.New("freshness window must be greater than 0")
	}
	return nil
}

// Result is one answer of the proxy. Payload is the upstream body verbatim.
type Result struct {
	Payload []byte
	Cached  bool
	Age     time.Duration
}

// Service answers "what is the upstream presence right now" with at most one
// upstream call per freshness window, shared by all concurrent callers.
type Service struct {
	cfg   *ServiceConfig
	log   *slog.Logger
	group singleflight.Group

	// local holds the last successful refresh. It is read alongside the
	// shared store and alone when the shared store fails.
	local *cache.MemoryStore
}

func NewService(cfg *ServiceConfig) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{cfg: cfg, log: cfg.Logger, local: cache.NewMemoryStore()}, nil
}

// Current returns the cached payload while fresh, otherwise fetches upstream.
// A failed fetch leaves the cache untouched and returns an error wrapping
// upstream.ErrUnreachable or upstream.ErrRejected.
func (s *Service) Current(ctx context.Context) (Result, error) {
	if res, ok := s.fresh(ctx); ok {
		metrics.ProxyRequestsTotal.WithLabelValues("hit").Inc()
		return res, nil
	}

	// Overlapping misses share one upstream call. The flight must not die
	// with whichever caller started it.
	flightCtx := context.WithoutCancel(ctx)
	v, err, shared := s.group.Do(flightKey, func() (any, error) {
		if res, ok := s.fresh(flightCtx); ok {
			return res, nil
		}
		return s.refresh(flightCtx)
	})
	if err != nil {
		metrics.ProxyRequestsTotal.WithLabelValues("error").Inc()
		return Result{}, err
	}

	res := v.(Result)
	if res.Cached {
		metrics.ProxyRequestsTotal.WithLabelValues("hit").Inc()
	} else {
		metrics.ProxyRequestsTotal.WithLabelValues("miss").Inc()
	}
	if shared {
		s.log.Debug("proxy: joined in-flight upstream fetch")
	}
	return res, nil
}

func (s *Service) fresh(ctx context.Context) (Result, bool) {
	e, ok := s.lookup(ctx)
	if !ok {
		return Result{}, false
	}

	age := e.Age(s.cfg.Clock.Now())
	metrics.CacheAgeSeconds.Set(age.Seconds())
	if age >= s.cfg.FreshnessWindow {
		return Result{}, false
	}
	s.log.Debug("proxy: serving cached presence", "age", durafmt.Parse(age).LimitFirstN(2).String())
	return Result{Payload: e.Payload, Cached: true, Age: age}, true
}

// lookup returns the newest entry from the shared store and the local copy.
func (s *Service) lookup(ctx context.Context) (cache.Entry, bool) {
	local, hasLocal, _ := s.local.Get(ctx)

	shared, ok, err := s.cfg.Store.Get(ctx)
	if err != nil {
		metrics.CacheStoreErrorsTotal.WithLabelValues("get").Inc()
		s.log.Warn("proxy: cache read failed, using local copy", "error", err)
		return local, hasLocal
	}
	if !ok || (hasLocal && local.FetchedAt.After(shared.FetchedAt)) {
		return local, hasLocal
	}
	return shared, true
}

func (s *Service) refresh(ctx context.Context) (Result, error) {
	now := s.cfg.Clock.Now()

	body, err := s.fetch(ctx)
	kind := upstream.Kind(err)
	metrics.UpstreamFetchTotal.WithLabelValues(kind).Inc()
	if err != nil {
		s.log.Error("proxy: error fetching lanyard data", "kind", kind, "error", err)
		return Result{}, err
	}

	entry := cache.Entry{Payload: body, FetchedAt: now}
	_ = s.local.Set(ctx, entry)
	if err := s.cfg.Store.Set(ctx, entry); err != nil {
		metrics.CacheStoreErrorsTotal.WithLabelValues("set").Inc()
		s.log.Warn("proxy: cache write failed, kept local copy only", "error", err)
	}
	metrics.CacheAgeSeconds.Set(0)
	return Result{Payload: body, Cached: false, Age: 0}, nil
}

func (s *Service) fetch(ctx context.Context) ([]byte, error) {
	start := s.cfg.Clock.Now()
	body, err := s.cfg.Upstream.Fetch(ctx)
	metrics.UpstreamFetchDuration.Observe(s.cfg.Clock.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	if s.cfg.ValidatePayload {
		if err := presence.Validate(body); err != nil {
			return nil, fmt.Errorf("%w: %v", upstream.ErrRejected, err)
		}
		return body, nil
	}

	// Without schema validation the body must still be an object to be
	// spread into the response.
	var obj map[string]jsonx.RawMessage
	if err := jsonx.Unmarshal(body, &obj); err != nil || obj == nil {
		return nil, fmt.Errorf("%w: body is not a json object", upstream.ErrRejected)
	}
	return body, nil
}

// Body spreads the cached/cacheAge annotations into the payload object.
func (r Result) Body() ([]byte, error) {
	var obj map[string]jsonx.RawMessage
	if err := jsonx.Unmarshal(r.Payload, &obj); err != nil {
		return nil, fmt.Errorf("proxy: decode payload: %w", err)
	}
	if obj == nil {
		obj = make(map[string]jsonx.RawMessage, 2)
	}

	cached, _ := jsonx.Marshal(r.Cached)
	age, _ := jsonx.Marshal(r.Age.Milliseconds())
	obj["cached"] = cached
	obj["cacheAge"] = age

	return jsonx.Marshal(obj)
}
