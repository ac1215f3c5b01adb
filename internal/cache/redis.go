// internal/cache/redis.go
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"

	"github.com/tamzrod/activity-status/internal/jsonx"
)

const DefaultRedisKey = "activity:presence"

// Connect initializes a Redis client from URL or host:port input and waits
// until it answers PING, retrying with exponential backoff up to maxWait.
func Connect(ctx context.Context, log *slog.Logger, redisURL string, maxWait time.Duration) (*redis.Client, error) {
	var opt *redis.Options
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		parsed, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opt = parsed
	} else {
		opt = &redis.Options{Addr: redisURL}
	}
	client := redis.NewClient(opt)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = maxWait

	err := backoff.RetryNotify(func() error {
		return client.Ping(ctx).Err()
	}, backoff.WithContext(bo, ctx), func(err error, next time.Duration) {
		if log != nil {
			log.Warn("redis not ready, retrying", "addr", opt.Addr, "next", next, "error", err)
		}
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// RedisStore keeps the entry in a single Redis key shared by every process
// that points at the same instance. The key never expires so stale data
// survives upstream outages.
type RedisStore struct {
	client *redis.Client
	key    string
}

type redisEntry struct {
	Payload     jsonx.RawMessage `json:"payload"`
	FetchedAtMs int64            `json:"fetched_at_ms"`
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Get(ctx context.Context) (Entry, bool, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("cache redis get: %w", err)
	}

	var re redisEntry
	if err := jsonx.Unmarshal(raw, &re); err != nil {
		return Entry{}, false, fmt.Errorf("cache redis decode: %w", err)
	}
	return Entry{
		Payload:   []byte(re.Payload),
		FetchedAt: time.UnixMilli(re.FetchedAtMs),
	}, true, nil
}

func (s *RedisStore) Set(ctx context.Context, e Entry) error {
	raw, err := jsonx.Marshal(redisEntry{
		Payload:     jsonx.RawMessage(e.Payload),
		FetchedAtMs: e.FetchedAt.UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("cache redis encode: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("cache redis set: %w", err)
	}
	return nil
}
