// Package view holds the games view controller and the pure presentation
// layer that maps its state to a screen.
package view

import "github.com/jamesprial/gameshelf/internal/games"

// Status is the controller's coarse view state.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Draft is the not-yet-submitted add form.
type Draft struct {
	Title       string
	PlatformRaw string
}

// State is an immutable snapshot of the controller. Seq increases by one on
// every transition.
type State struct {
	Seq    uint64
	Status Status
	// Games is the most recent successful query result. It is only set
	// when Status is StatusReady.
	Games []games.Game
	Draft Draft
}
