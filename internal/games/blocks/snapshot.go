package blocks

import (
	"time"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
)

// Snapshot is a read-only copy of the session taken after a tick.
type Snapshot struct {
	Tick    uint64
	Rows    int
	Cols    int
	Cells   []core.Color // row-major, locked cells plus the active piece
	Current engine.Piece
	Next    engine.Piece
	Score   int
	Level   int
	Pieces  int
	Lines   int
	Phase   Phase
	Reason  Reason
	Paused  bool
	Running bool
	AI      bool
	Mode    engine.Mode
	Played  time.Duration
}

// Snapshot returns the current session state.
func (g *Game) Snapshot() Snapshot {
	board := engine.Build(g.locked, g.rows, g.cols)
	board.Overlay(g.current)

	return Snapshot{
		Tick:    g.tick,
		Rows:    g.rows,
		Cols:    g.cols,
		Cells:   board.Cells,
		Current: g.current,
		Next:    g.next,
		Score:   g.score,
		Level:   g.level,
		Pieces:  g.pieces,
		Lines:   g.lines,
		Phase:   g.phase,
		Reason:  g.reason,
		Paused:  g.paused,
		Running: g.phase != PhaseGameOver,
		AI:      g.ai,
		Mode:    g.mode,
		Played:  g.levelTime,
	}
}

// At returns the snapshot cell at column x, row y.
func (s Snapshot) At(x, y int) core.Color {
	if x < 0 || x >= s.Cols || y < 0 || y >= s.Rows {
		return engine.Empty
	}
	return s.Cells[y*s.Cols+x]
}
