package blocks

import (
	"fmt"
	"time"
)

// Phase is the orchestrator's position in the piece lifecycle.
type Phase int

const (
	PhaseSpawning Phase = iota
	PhaseFalling
	PhaseLocking
	PhaseClearing
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSpawning:
		return "spawning"
	case PhaseFalling:
		return "falling"
	case PhaseLocking:
		return "locking"
	case PhaseClearing:
		return "clearing"
	case PhaseGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Reason explains why a game ended.
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonBlockedSpawn: a fresh piece collides where it spawns.
	ReasonBlockedSpawn
	// ReasonToppedOut: a locked cell reached the top buffer row.
	ReasonToppedOut
	// ReasonNoMove: the autoplayer found no placement and the piece cannot stay.
	ReasonNoMove
	// ReasonQuit: the player quit from the pause dialog.
	ReasonQuit
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonBlockedSpawn:
		return "blocked_spawn"
	case ReasonToppedOut:
		return "topped_out"
	case ReasonNoMove:
		return "no_move"
	case ReasonQuit:
		return "quit"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// EventKind identifies an Event.
type EventKind int

const (
	EventPieceLocked EventKind = iota + 1
	EventRowsCleared
	EventScoreChanged
	EventLevelChanged
	EventGameOver
	EventSlowSearch
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventPieceLocked:
		return "piece_locked"
	case EventRowsCleared:
		return "rows_cleared"
	case EventScoreChanged:
		return "score_changed"
	case EventLevelChanged:
		return "level_changed"
	case EventGameOver:
		return "game_over"
	case EventSlowSearch:
		return "slow_search"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is something that happened during a tick. Only the fields that
// belong to Kind are set.
type Event struct {
	Kind    EventKind
	Rows    int           // EventRowsCleared
	Score   int           // EventScoreChanged
	Level   int           // EventLevelChanged
	Reason  Reason        // EventGameOver
	Elapsed time.Duration // EventSlowSearch
}
