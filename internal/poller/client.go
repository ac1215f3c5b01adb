// internal/poller/client.go
package poller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tamzrod/activity-status/internal/jsonx"
	"github.com/tamzrod/activity-status/internal/presence"
)

var (
	// ErrProxyUnreachable means the request to the proxy could not complete.
	ErrProxyUnreachable = errors.New("poller: proxy unreachable")
	// ErrProxyRejected means the proxy answered but not with usable data.
	ErrProxyRejected = errors.New("poller: proxy rejected")
)

const maxProxyBodyBytes = 1 << 20

type HTTPConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// HTTPClient calls the status proxy. One request per Fetch, no retries.
type HTTPClient struct {
	endpoint string
	http     *http.Client
}

func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("poller: endpoint required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &HTTPClient{
		endpoint: cfg.Endpoint,
		http:     &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *HTTPClient) Fetch(ctx context.Context) (presence.Envelope, error) {
	var env presence.Envelope

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return env, fmt.Errorf("poller: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return env, fmt.Errorf("%w: %v", ErrProxyUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProxyBodyBytes))
	if err != nil {
		return env, fmt.Errorf("%w: read body: %v", ErrProxyUnreachable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return env, fmt.Errorf("%w: status %d", ErrProxyRejected, resp.StatusCode)
	}
	if err := jsonx.Unmarshal(body, &env); err != nil {
		return env, fmt.Errorf("%w: decode: %v", ErrProxyRejected, err)
	}
	return env, nil
}
