// internal/status/constants.go
package status

// State is the poller-facing lifecycle of the presence card.
type State uint8

const (
	// StateLoading is the initial state, held until the first poll result.
	StateLoading State = iota
	// StateError means the latest applied poll failed. Nothing is shown.
	StateError
	// StateReady means a presence snapshot is available.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}
