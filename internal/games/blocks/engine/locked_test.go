package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

func TestPackCoordRoundTrip(t *testing.T) {
	for _, c := range []Coord{C(0, 0), C(9, 19), C(3, -2), C(14, -4), C(0, -1)} {
		assert.Equal(t, c, unpackCoord(packCoord(c.X, c.Y)))
	}
	assert.NotEqual(t, packCoord(1, 0), packCoord(0, 1))
}

func fillRow(m *LockedMap, y, cols int) {
	for x := range cols {
		m.Set(x, y, core.ColorGreen)
	}
}

func TestClearRowsShiftsByRowsBelow(t *testing.T) {
	m := NewLockedMap()
	fillRow(m, 19, 10)
	fillRow(m, 17, 10)
	m.Set(0, 18, core.ColorRed)
	m.Set(1, 16, core.ColorBlue)
	m.Set(2, 15, core.ColorCyan)
	before := m.Len()

	g := Build(m, 20, 10)
	rows := g.FullRows()
	require.Equal(t, []int{19, 17}, rows)

	n := m.ClearRows(rows)
	assert.Equal(t, 2, n)
	assert.Equal(t, before-n*10, m.Len())

	// Between the cleared rows: moves down by one.
	c, ok := m.Get(0, 19)
	assert.True(t, ok)
	assert.Equal(t, core.ColorRed, c)

	// Above both cleared rows: moves down by two.
	c, ok = m.Get(1, 18)
	assert.True(t, ok)
	assert.Equal(t, core.ColorBlue, c)
	c, ok = m.Get(2, 17)
	assert.True(t, ok)
	assert.Equal(t, core.ColorCyan, c)

	m.ForEach(func(c Coord, _ core.Color) {
		assert.True(t, c.Y >= 0 && c.Y < 20, "cell %v left the board", c)
	})
}

func TestClearRowsNothing(t *testing.T) {
	m := NewLockedMap()
	m.Set(0, 19, core.ColorRed)
	assert.Equal(t, 0, m.ClearRows(nil))
	assert.Equal(t, 1, m.Len())
}

func TestIsGameOver(t *testing.T) {
	m := NewLockedMap()
	assert.False(t, m.IsGameOver())

	m.Set(4, 1, core.ColorRed)
	assert.False(t, m.IsGameOver(), "row 1 is still playable")

	m.Set(4, 0, core.ColorRed)
	assert.True(t, m.IsGameOver())

	above := NewLockedMap()
	above.Lock(Piece{Kind: KindO, X: 5, Y: 1}) // rows -1 and 0
	assert.True(t, above.IsGameOver())
}

func TestLockedMapClone(t *testing.T) {
	m := NewLockedMap()
	m.Lock(Piece{Kind: KindT, X: 4, Y: 10})
	c := m.Clone()
	fillRow(m, 19, 10)
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, 14, m.Len())
}

func TestOneGapRowCompletes(t *testing.T) {
	m := NewLockedMap()
	for x := range 9 {
		m.Set(x, 19, core.ColorRed)
	}
	require.False(t, m.IsGameOver())

	g := Build(m, 20, 10)
	p := Piece{Kind: KindI, X: 10, Y: 0} // vertical I in column 9
	landed, ok := SimulateDrop(p, g, Move{Rotations: 0, Column: 10})
	require.True(t, ok)
	assert.Equal(t, 20, landed.Y)

	m.Lock(landed)
	rows := Build(m, 20, 10).FullRows()
	require.Equal(t, []int{19}, rows)
	gained := LineClearScore(m.ClearRows(rows))

	assert.Equal(t, 100, gained)
	assert.Equal(t, 3, m.Len())
	for y := 17; y <= 19; y++ {
		_, ok := m.Get(9, y)
		assert.True(t, ok, "column 9 row %d", y)
	}
	_, ok = m.Get(0, 19)
	assert.False(t, ok)
}
