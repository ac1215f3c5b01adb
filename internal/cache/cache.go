// internal/cache/cache.go
package cache

import (
	"context"
	"time"
)

// Entry is the last successful upstream fetch.
// Payload is opaque to the cache and is only ever replaced, never merged.
type Entry struct {
	Payload   []byte
	FetchedAt time.Time
}

// Age returns how long ago the entry was fetched, as seen at now.
func (e Entry) Age(now time.Time) time.Duration {
	age := now.Sub(e.FetchedAt)
	if age < 0 {
		return 0
	}
	return age
}

// Store holds the single shared cache entry.
// Get reports ok=false until the first Set.
type Store interface {
	Get(ctx context.Context) (Entry, bool, error)
	Set(ctx context.Context, e Entry) error
}
