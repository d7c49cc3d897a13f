package engine

import (
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// LockedMap records the cells of settled pieces. Rows may be negative while
// a piece locks partly above the board; that state always ends the game.
type LockedMap struct {
	cells *intmap.Map[int64, core.Color]
}

// packCoord folds a coordinate into a single map key. Row goes to the high
// 32 bits so negative rows survive the round trip.
func packCoord(x, y int) int64 {
	return int64(y)<<32 | int64(uint32(x))
}

func unpackCoord(k int64) Coord {
	return C(int(int32(uint32(k))), int(k>>32))
}

// NewLockedMap creates an empty locked map.
func NewLockedMap() *LockedMap {
	return &LockedMap{cells: intmap.New[int64, core.Color](64)}
}

// Len returns the number of locked cells.
func (m *LockedMap) Len() int {
	return m.cells.Len()
}

// Get returns the color at (x, y) and whether the cell is locked.
func (m *LockedMap) Get(x, y int) (core.Color, bool) {
	return m.cells.Get(packCoord(x, y))
}

// Set locks a single cell.
func (m *LockedMap) Set(x, y int, c core.Color) {
	m.cells.Put(packCoord(x, y), c)
}

// Lock writes every cell of the piece, including cells above the board.
func (m *LockedMap) Lock(p Piece) {
	color := p.Color()
	for _, c := range p.Cells() {
		m.Set(c.X, c.Y, color)
	}
}

// ForEach calls fn for every locked cell in unspecified order.
func (m *LockedMap) ForEach(fn func(c Coord, color core.Color)) {
	m.cells.ForEach(func(k int64, color core.Color) bool {
		fn(unpackCoord(k), color)
		return true
	})
}

// Clone returns an independent copy.
func (m *LockedMap) Clone() *LockedMap {
	out := &LockedMap{cells: intmap.New[int64, core.Color](m.cells.Len())}
	m.cells.ForEach(func(k int64, c core.Color) bool {
		out.cells.Put(k, c)
		return true
	})
	return out
}

// ClearRows removes the given rows and moves every remaining cell down by
// the number of removed rows beneath it. Returns the number of rows removed.
func (m *LockedMap) ClearRows(rows []int) int {
	if len(rows) == 0 {
		return 0
	}
	cleared := intmap.NewSet[int](len(rows))
	for _, r := range rows {
		cleared.Add(r)
	}

	next := intmap.New[int64, core.Color](m.cells.Len())
	m.cells.ForEach(func(k int64, color core.Color) bool {
		c := unpackCoord(k)
		if cleared.Has(c.Y) {
			return true
		}
		shift := 0
		cleared.ForEach(func(r int) bool {
			if r > c.Y {
				shift++
			}
			return true
		})
		next.Put(packCoord(c.X, c.Y+shift), color)
		return true
	})
	m.cells = next
	return cleared.Len()
}

// IsGameOver reports whether any locked cell sits in row 0 or above the
// board, which leaves no room to spawn.
func (m *LockedMap) IsGameOver() bool {
	over := false
	m.cells.ForEach(func(k int64, _ core.Color) bool {
		if unpackCoord(k).Y < 1 {
			over = true
			return false
		}
		return true
	})
	return over
}
