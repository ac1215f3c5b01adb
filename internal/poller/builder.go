// internal/poller/builder.go
package poller

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	cfg "github.com/tamzrod/activity-status/internal/config"
)

// Build constructs a Poller wired to the proxy over HTTP.
// No retries, no backoff: a failed poll simply waits for the next tick.
func Build(pc cfg.PollerConfig, log *slog.Logger) (*Poller, error) {
	client, err := NewHTTPClient(HTTPConfig{
		Endpoint: pc.Endpoint,
		Timeout:  time.Duration(pc.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, err
	}

	return New(
		Config{
			Interval: time.Duration(pc.IntervalMs) * time.Millisecond,
			Clock:    clockwork.NewRealClock(),
			Logger:   log,
		},
		client,
	)
}
