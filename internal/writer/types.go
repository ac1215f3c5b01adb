// internal/writer/types.go
package writer

import "github.com/tamzrod/activity-status/internal/status"

// Format selects how snapshots are written.
type Format string

const (
	FormatCard Format = "card"
	FormatJSON Format = "json"
)

// Writer delivers tracker snapshots to an output.
type Writer interface {
	Write(snap status.Snapshot) error
}
