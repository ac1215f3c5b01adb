// internal/upstream/client.go
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.lanyard.rest/v1/users/"
	DefaultTimeout = 10 * time.Second

	// Bodies larger than this are treated as malformed.
	maxBodyBytes = 1 << 20
)

var (
	// ErrUnreachable is a network-level failure calling the upstream API.
	ErrUnreachable = errors.New("upstream unreachable")
	// ErrRejected is a non-success status or an unusable body.
	ErrRejected = errors.New("upstream rejected")
)

// StatusError carries the HTTP status of a rejected upstream response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("lanyard API returned %d", e.Code)
}

func (e *StatusError) Unwrap() error { return ErrRejected }

type Config struct {
	BaseURL string
	UserID  string
	Timeout time.Duration
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client fetches one user's presence from the Lanyard REST API.
type Client struct {
	url  string
	http *http.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.UserID == "" {
		return nil, errors.New("upstream: user id required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		url:  strings.TrimRight(cfg.BaseURL, "/") + "/" + cfg.UserID,
		http: hc,
	}, nil
}

// URL is the fully resolved presence endpoint.
func (c *Client) URL() string { return c.url }

// Fetch performs exactly one GET and returns the raw body on a 2xx response.
// Errors wrap ErrUnreachable or ErrRejected.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("upstream: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnreachable, err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrRejected, maxBodyBytes)
	}
	return body, nil
}

// Kind names the error class for logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrRejected):
		return "rejected"
	case errors.Is(err, ErrUnreachable):
		return "unreachable"
	default:
		return "error"
	}
}
