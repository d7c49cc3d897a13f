package engine

import "github.com/vovakirdan/tui-blocks/internal/core"

// Empty is the color of an unoccupied cell.
const Empty = core.ColorDefault

// Board presets.
const (
	StandardRows = 20
	StandardCols = 10
)

// Grid is a rows x cols board of cell colors stored in row-major order.
// It is a cache derived from a LockedMap (optionally with the active piece
// drawn on top) and never changes dimensions.
type Grid struct {
	Rows  int
	Cols  int
	Cells []core.Color
}

// NewGrid creates an empty grid.
func NewGrid(rows, cols int) *Grid {
	return &Grid{
		Rows:  rows,
		Cols:  cols,
		Cells: make([]core.Color, rows*cols),
	}
}

// Build produces a grid where each cell holds the locked color at that
// position, or Empty. Locked cells outside the board are skipped.
// The locked map is not modified.
func Build(locked *LockedMap, rows, cols int) *Grid {
	g := NewGrid(rows, cols)
	if locked == nil {
		return g
	}
	locked.ForEach(func(c Coord, color core.Color) {
		g.Set(c.X, c.Y, color)
	})
	return g
}

// InBounds reports whether (x, y) lies on the board.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Cols && y >= 0 && y < g.Rows
}

// At returns the color at (x, y), or Empty when out of bounds.
func (g *Grid) At(x, y int) core.Color {
	if !g.InBounds(x, y) {
		return Empty
	}
	return g.Cells[y*g.Cols+x]
}

// IsEmpty reports whether (x, y) is unoccupied.
func (g *Grid) IsEmpty(x, y int) bool {
	return g.At(x, y) == Empty
}

// Set writes a color; out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, c core.Color) {
	if g.InBounds(x, y) {
		g.Cells[y*g.Cols+x] = c
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]core.Color, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{Rows: g.Rows, Cols: g.Cols, Cells: cells}
}

// Overlay draws the piece's visible cells onto the grid.
func (g *Grid) Overlay(p Piece) {
	color := p.Color()
	for _, c := range p.Cells() {
		g.Set(c.X, c.Y, color)
	}
}

// RowFull reports whether row y has no empty cell.
func (g *Grid) RowFull(y int) bool {
	if y < 0 || y >= g.Rows {
		return false
	}
	for _, c := range g.Cells[y*g.Cols : (y+1)*g.Cols] {
		if c == Empty {
			return false
		}
	}
	return true
}

// FullRows returns the indices of completely occupied rows, scanning from
// the bottom up (so the result is in descending order).
func (g *Grid) FullRows() []int {
	var rows []int
	for y := g.Rows - 1; y >= 0; y-- {
		if g.RowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// IsValid reports whether the piece fits on the grid. Cells must lie within
// the side walls and above the floor; cells above the top edge (y < 0) are
// exempt from the occupancy check so pieces can spawn partly hidden.
func IsValid(p Piece, g *Grid) bool {
	for _, c := range p.Cells() {
		if c.X < 0 || c.X > g.Cols-1 || c.Y > g.Rows-1 {
			return false
		}
		if c.Y > -1 && !g.IsEmpty(c.X, c.Y) {
			return false
		}
	}
	return true
}
