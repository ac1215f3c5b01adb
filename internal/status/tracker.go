// internal/status/tracker.go
package status

import (
	"sync"

	"github.com/tamzrod/activity-status/internal/metrics"
	"github.com/tamzrod/activity-status/internal/poller"
)

// Tracker owns the state of one mounted card.
// It applies a poll result only if its Seq is newer than the last applied
// one, so a slow earlier response cannot overwrite a later one.
type Tracker struct {
	mu      sync.Mutex
	snap    Snapshot
	stopped bool
}

func NewTracker() *Tracker {
	return &Tracker{snap: Snapshot{State: StateLoading}}
}

// Apply folds res into the state and reports whether it was applied.
func (t *Tracker) Apply(res poller.PollResult) (Snapshot, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return t.snap, false
	}
	if res.Seq <= t.snap.Seq {
		metrics.PollsDiscardedTotal.Inc()
		return t.snap, false
	}

	if res.Err != nil {
		t.snap = Snapshot{
			State:     StateError,
			Seq:       res.Seq,
			UpdatedAt: res.At,
			LastErr:   res.Err,
		}
		return t.snap, true
	}

	// Full replacement, never a merge.
	t.snap = Snapshot{
		State:     StateReady,
		Presence:  res.Presence,
		Seq:       res.Seq,
		UpdatedAt: res.At,
		Cached:    res.Cached,
		CacheAge:  res.CacheAge,
	}
	return t.snap, true
}

// Current returns the latest applied snapshot.
func (t *Tracker) Current() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap
}

// Stop freezes the tracker; later Apply calls are ignored.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}
