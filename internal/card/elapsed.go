// internal/card/elapsed.go
package card

import (
	"fmt"
	"time"
)

// Elapsed formats the time since start as "for {H}h {M}m", or "for {M}m"
// under an hour. There is no day unit; long sessions show large hour counts.
func Elapsed(start, now time.Time) string {
	elapsedMs := now.Sub(start).Milliseconds()
	if elapsedMs < 0 {
		elapsedMs = 0
	}
	totalMinutes := elapsedMs / 60000
	hours := totalMinutes / 60
	minutes := totalMinutes % 60

	if hours > 0 {
		return fmt.Sprintf("for %dh %dm", hours, minutes)
	}
	return fmt.Sprintf("for %dm", minutes)
}
