package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// gridFrom builds a grid from rows of text where '.' is empty and any
// other character is a red cell.
func gridFrom(rows ...string) *Grid {
	g := NewGrid(len(rows), len(rows[0]))
	for y, row := range rows {
		for x, ch := range row {
			if ch != '.' {
				g.Set(x, y, core.ColorRed)
			}
		}
	}
	return g
}

func TestBuildIsPure(t *testing.T) {
	locked := NewLockedMap()
	locked.Set(0, 19, core.ColorRed)
	locked.Set(9, 10, core.ColorBlue)
	locked.Set(3, -2, core.ColorGreen) // above the board, skipped

	a := Build(locked, 20, 10)
	b := Build(locked, 20, 10)

	assert.Equal(t, a, b)
	assert.Equal(t, 3, locked.Len())
	assert.Equal(t, core.ColorRed, a.At(0, 19))
	assert.Equal(t, core.ColorBlue, a.At(9, 10))
	assert.Equal(t, Empty, a.At(3, 0))
	assert.Len(t, a.Cells, 200)
}

func TestGridAccessors(t *testing.T) {
	g := NewGrid(4, 3)
	g.Set(5, 5, core.ColorRed) // ignored
	assert.Equal(t, Empty, g.At(-1, 0))
	assert.True(t, g.IsEmpty(1, 1))

	g.Set(1, 1, core.ColorRed)
	c := g.Clone()
	g.Set(1, 1, Empty)
	assert.Equal(t, core.ColorRed, c.At(1, 1), "clone must not share cells")
}

func TestIsValid(t *testing.T) {
	g := gridFrom(
		"..........",
		"..........",
		"..........",
		"....#.....",
	)

	tests := []struct {
		name  string
		piece Piece
		want  bool
	}{
		{"spawn above board", Piece{Kind: KindO, X: 5}, true},
		{"past left wall", Piece{Kind: KindO, X: 0, Y: 2}, false},
		{"touching left wall", Piece{Kind: KindO, X: 1, Y: 2}, true},
		{"past right wall", Piece{Kind: KindO, X: 10, Y: 2}, false},
		{"touching right wall", Piece{Kind: KindO, X: 9, Y: 2}, true},
		{"below floor", Piece{Kind: KindO, X: 1, Y: 5}, false},
		{"resting on floor", Piece{Kind: KindO, X: 1, Y: 4}, true},
		{"overlapping block", Piece{Kind: KindO, X: 5, Y: 4}, false},
		{"resting on block", Piece{Kind: KindO, X: 5, Y: 3}, true},
		{"walls apply above board", Piece{Kind: KindO, X: 0, Y: -3}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValid(tc.piece, g))
		})
	}
}

func TestFullRowsBottomUp(t *testing.T) {
	g := gridFrom(
		"....",
		"####",
		"#.##",
		"####",
	)
	assert.Equal(t, []int{3, 1}, g.FullRows())
	assert.False(t, g.RowFull(2))
	assert.False(t, g.RowFull(-1))
}

func TestOverlayClipsAboveBoard(t *testing.T) {
	g := NewGrid(4, 4)
	g.Overlay(Piece{Kind: KindO, X: 2, Y: 1}) // rows -1 and 0
	assert.Equal(t, KindO.Color(), g.At(1, 0))
	assert.Equal(t, KindO.Color(), g.At(2, 0))
	require.Equal(t, Empty, g.At(1, 1))
}
