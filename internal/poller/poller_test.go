package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/activity-status/internal/presence"
)

type fakeClient struct {
	calls atomic.Int32
	env   presence.Envelope
	err   error
	block bool
}

func (f *fakeClient) Fetch(ctx context.Context) (presence.Envelope, error) {
	f.calls.Add(1)
	if f.block {
		<-ctx.Done()
		return presence.Envelope{}, ctx.Err()
	}
	return f.env, f.err
}

func okEnvelope() presence.Envelope {
	cached := true
	age := int64(1500)
	return presence.Envelope{
		Success: true,
		Data: &presence.Snapshot{
			User:   presence.User{ID: "1", Username: "kai"},
			Status: presence.StatusIdle,
		},
		Cached:   &cached,
		CacheAge: &age,
	}
}

func newTestPoller(t *testing.T, clk clockwork.Clock, c Client) *Poller {
	t.Helper()
	p, err := New(Config{
		Interval: 30 * time.Second,
		Clock:    clk,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, c)
	require.NoError(t, err)
	return p
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{}, nil)
	require.Error(t, err)

	_, err = New(Config{Interval: -time.Second}, &fakeClient{})
	require.Error(t, err)

	p, err := New(Config{}, &fakeClient{})
	require.NoError(t, err)
	require.Equal(t, DefaultInterval, p.cfg.Interval)
}

func TestPollOnce_Success(t *testing.T) {
	p := newTestPoller(t, clockwork.NewFakeClockAt(time.Unix(10, 0)), &fakeClient{env: okEnvelope()})

	res := p.PollOnce(context.Background())
	require.NoError(t, res.Err)
	require.Equal(t, uint64(1), res.Seq)
	require.Equal(t, time.Unix(10, 0), res.At)
	require.NotNil(t, res.Presence)
	require.Equal(t, presence.StatusIdle, res.Presence.Status)
	require.True(t, res.Cached)
	require.Equal(t, 1500*time.Millisecond, res.CacheAge)

	require.Equal(t, uint64(2), p.PollOnce(context.Background()).Seq)
}

func TestPollOnce_Failure(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeClient
		want   error
	}{
		{"transport", &fakeClient{err: ErrProxyUnreachable}, ErrProxyUnreachable},
		{"success false", &fakeClient{env: presence.Envelope{Success: false, Error: "failed to fetch discord status"}}, ErrProxyRejected},
		{"data missing", &fakeClient{env: presence.Envelope{Success: true}}, ErrProxyRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPoller(t, clockwork.NewFakeClock(), tt.client)
			res := p.PollOnce(context.Background())
			require.ErrorIs(t, res.Err, tt.want)
			require.Nil(t, res.Presence)
		})
	}
}

func TestHTTPClient_Fetch(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	body := atomic.Value{}
	body.Store(`{"success":true,"data":{"discord_user":{"id":"1"},"discord_status":"dnd"},"cached":false,"cacheAge":0}`)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
		_, _ = w.Write([]byte(body.Load().(string)))
	}))
	defer srv.Close()

	c, err := NewHTTPClient(HTTPConfig{Endpoint: srv.URL + "/.netlify/functions/activity"})
	require.NoError(t, err)

	env, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.True(t, env.Success)
	require.Equal(t, presence.StatusDoNotDisturb, env.Data.Status)

	status.Store(http.StatusInternalServerError)
	body.Store(`{"success":false,"error":"failed to fetch discord status"}`)
	_, err = c.Fetch(context.Background())
	require.ErrorIs(t, err, ErrProxyRejected)

	status.Store(http.StatusOK)
	body.Store(`not json`)
	_, err = c.Fetch(context.Background())
	require.ErrorIs(t, err, ErrProxyRejected)

	srv.Close()
	_, err = c.Fetch(context.Background())
	require.ErrorIs(t, err, ErrProxyUnreachable)
}

func TestMount_PollsOnIntervalAndStopsOnUnmount(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clk := clockwork.NewFakeClock()
	client := &fakeClient{env: okEnvelope()}
	p := newTestPoller(t, clk, client)

	var mu sync.Mutex
	var applied []uint64
	inst := Mount(ctx, p, func(res PollResult) {
		mu.Lock()
		defer mu.Unlock()
		applied = append(applied, res.Seq)
	})

	require.Eventually(t, func() bool { return client.calls.Load() == 1 }, time.Second, time.Millisecond)
	require.NoError(t, clk.BlockUntilContext(ctx, 1))

	clk.Advance(30 * time.Second)
	require.Eventually(t, func() bool { return client.calls.Load() == 2 }, time.Second, time.Millisecond)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(applied) == 2
	}, time.Second, time.Millisecond)

	inst.Unmount()

	clk.Advance(90 * time.Second)
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, int32(2), client.calls.Load())

	mu.Lock()
	require.Len(t, applied, 2)
	mu.Unlock()
}

func TestMount_FailedPollsDoNotStopInterval(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clk := clockwork.NewFakeClock()
	client := &fakeClient{err: errors.New("connection refused")}
	p := newTestPoller(t, clk, client)

	var failures atomic.Int32
	inst := Mount(ctx, p, func(res PollResult) {
		if res.Err != nil {
			failures.Add(1)
		}
	})
	defer inst.Unmount()

	require.NoError(t, clk.BlockUntilContext(ctx, 1))
	for i := int32(2); i <= 4; i++ {
		clk.Advance(30 * time.Second)
		want := i
		require.Eventually(t, func() bool { return failures.Load() == want }, time.Second, time.Millisecond)
	}
}

func TestMount_UnmountCancelsInFlight(t *testing.T) {
	clk := clockwork.NewFakeClock()
	client := &fakeClient{block: true}
	p := newTestPoller(t, clk, client)

	var applied atomic.Int32
	inst := Mount(context.Background(), p, func(PollResult) { applied.Add(1) })
	require.Eventually(t, func() bool { return client.calls.Load() == 1 }, time.Second, time.Millisecond)

	inst.Unmount()
	select {
	case <-inst.Done():
	default:
		t.Fatal("instance not done after Unmount")
	}
	require.Equal(t, int32(0), applied.Load())
}
