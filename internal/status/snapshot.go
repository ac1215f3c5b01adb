// internal/status/snapshot.go
package status

import (
	"time"

	"github.com/tamzrod/activity-status/internal/presence"
)

// Snapshot is exactly what a renderer is allowed to see.
// Presence is non-nil if and only if State is StateReady.
type Snapshot struct {
	State    State
	Presence *presence.Snapshot

	// Seq of the poll result that produced this snapshot; 0 while loading.
	Seq       uint64
	UpdatedAt time.Time

	Cached   bool
	CacheAge time.Duration

	LastErr error
}
