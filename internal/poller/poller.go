// internal/poller/poller.go
package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tamzrod/activity-status/internal/metrics"
	"github.com/tamzrod/activity-status/internal/presence"
)

const DefaultInterval = 30 * time.Second

// Client abstracts the proxy call needed by the poller.
type Client interface {
	Fetch(ctx context.Context) (presence.Envelope, error)
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Interval time.Duration
	Clock    clockwork.Clock
	Logger   *slog.Logger
}

// Poller is a dumb, clock-driven reader of the status proxy.
type Poller struct {
	cfg    Config
	client Client
	seq    atomic.Uint64
}

// New creates a poller with immutable config.
func New(cfg Config, client Client) (*Poller, error) {
	if client == nil {
		return nil, errors.New("poller: client required")
	}
	if cfg.Interval == 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Interval < 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Poller{cfg: cfg, client: client}, nil
}

// PollOnce performs exactly one request to the proxy.
// Any failure, transport or envelope, yields a result with Err set.
func (p *Poller) PollOnce(ctx context.Context) PollResult {
	res := PollResult{
		Seq: p.seq.Add(1),
		At:  p.cfg.Clock.Now(),
	}

	env, err := p.client.Fetch(ctx)
	if err == nil {
		switch {
		case !env.Success:
			err = fmt.Errorf("%w: success=false: %s", ErrProxyRejected, env.Error)
		case env.Data == nil:
			err = fmt.Errorf("%w: data missing", ErrProxyRejected)
		}
	}
	if err != nil {
		metrics.PollsTotal.WithLabelValues(errorKind(err)).Inc()
		p.cfg.Logger.Debug("poller: error fetching activity", "seq", res.Seq, "error", err)
		res.Err = err
		return res
	}

	metrics.PollsTotal.WithLabelValues("ok").Inc()
	res.Presence = env.Data
	if env.Cached != nil {
		res.Cached = *env.Cached
	}
	if env.CacheAge != nil {
		res.CacheAge = time.Duration(*env.CacheAge) * time.Millisecond
	}
	return res
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrProxyRejected):
		return "proxy_rejected"
	case errors.Is(err, ErrProxyUnreachable):
		return "proxy_unreachable"
	default:
		return "error"
	}
}
