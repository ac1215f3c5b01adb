// internal/writer/writer.go
package writer

import (
	"fmt"
	"io"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/tamzrod/activity-status/internal/card"
	"github.com/tamzrod/activity-status/internal/status"
)

const hiddenSeparator = "\n-- status unavailable --\n\n"

type writerImpl struct {
	mu     sync.Mutex
	out    io.Writer
	format Format
	clock  clockwork.Clock

	// shown is true while a rendered card is the newest output.
	shown bool
}

// New returns a Writer for format. Writes are serialized.
func New(out io.Writer, format Format, clock clockwork.Clock) (Writer, error) {
	switch format {
	case FormatCard, FormatJSON:
	default:
		return nil, fmt.Errorf("writer: unsupported format %q", format)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &writerImpl{out: out, format: format, clock: clock}, nil
}

func (w *writerImpl) Write(snap status.Snapshot) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	// ------------------------------------------------------------
	// JSON LINES
	// ------------------------------------------------------------

	if w.format == FormatJSON {
		line, err := status.Encode(snap)
		if err != nil {
			return fmt.Errorf("writer: encode: %w", err)
		}
		if _, err := fmt.Fprintln(w.out, string(line)); err != nil {
			return fmt.Errorf("writer: %w", err)
		}
		return nil
	}

	// ------------------------------------------------------------
	// CARD (error state hides the card)
	// ------------------------------------------------------------

	view := card.Derive(snap, w.clock.Now())
	if view.Branch == card.BranchHidden {
		if !w.shown {
			return nil
		}
		// Mark the last card as no longer current.
		w.shown = false
		if _, err := fmt.Fprint(w.out, hiddenSeparator); err != nil {
			return fmt.Errorf("writer: %w", err)
		}
		return nil
	}
	w.shown = view.Branch != card.BranchSkeleton

	if err := card.Render(w.out, view); err != nil {
		return fmt.Errorf("writer: render: %w", err)
	}
	if snap.State == status.StateReady {
		if err := card.RenderAge(w.out, snap.Cached, snap.CacheAge); err != nil {
			return fmt.Errorf("writer: %w", err)
		}
	}
	return nil
}
