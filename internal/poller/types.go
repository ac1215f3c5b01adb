// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/activity-status/internal/presence"
)

// PollResult is a snapshot produced by one poll cycle.
type PollResult struct {
	// Seq increases by one per poll issued by the same Poller.
	// Results may arrive out of order; consumers compare Seq.
	Seq uint64
	At  time.Time

	Presence *presence.Snapshot
	Cached   bool
	CacheAge time.Duration

	Err error // non-nil means the poll cycle failed
}
