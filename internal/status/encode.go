// internal/status/encode.go
package status

import (
	"time"

	"github.com/tamzrod/activity-status/internal/jsonx"
	"github.com/tamzrod/activity-status/internal/presence"
)

type wireSnapshot struct {
	State     string             `json:"state"`
	Seq       uint64             `json:"seq"`
	UpdatedAt string             `json:"updated_at,omitempty"`
	Cached    bool               `json:"cached"`
	CacheAge  int64              `json:"cache_age_ms"`
	Presence  *presence.Snapshot `json:"presence,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// Encode converts a Snapshot into one JSON line for machine consumers.
// No IO. No side effects.
func Encode(s Snapshot) ([]byte, error) {
	w := wireSnapshot{
		State:    s.State.String(),
		Seq:      s.Seq,
		Cached:   s.Cached,
		CacheAge: s.CacheAge.Milliseconds(),
		Presence: s.Presence,
	}
	if !s.UpdatedAt.IsZero() {
		w.UpdatedAt = s.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	if s.LastErr != nil {
		w.Error = s.LastErr.Error()
	}
	return jsonx.Marshal(w)
}
