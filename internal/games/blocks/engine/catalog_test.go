package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

func countCells(m Mask) int {
	n := 0
	for i := range MaskSize {
		for j := range MaskSize {
			if m[i][j] {
				n++
			}
		}
	}
	return n
}

func TestCatalogShapes(t *testing.T) {
	tests := []struct {
		kind      Kind
		rotations int
		cells     int
	}{
		{KindI, 2, 4},
		{KindL, 4, 4},
		{KindJ, 4, 4},
		{KindO, 1, 4},
		{KindS, 2, 4},
		{KindT, 4, 4},
		{KindZ, 2, 4},
		{KindSmallI, 2, 3},
		{KindSmallL, 4, 3},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			require.Equal(t, tc.rotations, tc.kind.Rotations())
			for r := range tc.rotations {
				assert.Equal(t, tc.cells, countCells(tc.kind.Mask(r)), "rotation %d", r)
			}
		})
	}
}

func TestCatalogColorsDistinct(t *testing.T) {
	seen := make(map[core.Color]Kind)
	for _, k := range AllKinds() {
		c := k.Color()
		assert.NotEqual(t, Empty, c, "%s uses the empty color", k)
		if prev, dup := seen[c]; dup {
			t.Errorf("%s and %s share color %d", prev, k, c)
		}
		seen[c] = k
	}
	assert.Len(t, seen, 9)
}

func TestMaskWrapsModuloRotations(t *testing.T) {
	assert.Equal(t, KindT.Mask(1), KindT.Mask(5))
	assert.Equal(t, KindT.Mask(3), KindT.Mask(-1))
	assert.Equal(t, KindO.Mask(0), KindO.Mask(3))
	assert.Equal(t, KindS.Mask(0), KindS.Mask(2))
}

func TestKinds(t *testing.T) {
	assert.Len(t, Kinds(false), 7)
	assert.Len(t, Kinds(true), 9)
	assert.NotContains(t, Kinds(false), KindSmallI)
}

func TestUnknownKindPanics(t *testing.T) {
	assert.Panics(t, func() { Kind(42).Rotations() })
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestParseMaskRejectsBadInput(t *testing.T) {
	assert.Panics(t, func() {
		parseMask([MaskSize]string{"*****", "**X**", "*****", "*****", "*****"})
	})
	assert.Panics(t, func() {
		parseMask([MaskSize]string{"****", "*****", "*****", "*****", "*****"})
	})
}

func TestSpawnCellsUseMaskOffsets(t *testing.T) {
	p := Spawn(KindO, StandardCols)
	assert.Equal(t, Piece{Kind: KindO, Rotation: 0, X: 5, Y: 0}, p)

	// O occupies mask rows 2-3, columns 1-2.
	want := []Coord{C(4, -2), C(5, -2), C(4, -1), C(5, -1)}
	assert.Equal(t, want, p.Cells())

	// Vertical I sits in mask column 1, rows 0-3.
	i := Spawn(KindI, StandardCols)
	assert.Equal(t, []Coord{C(4, -4), C(4, -3), C(4, -2), C(4, -1)}, i.Cells())
}

func TestSequenceDeterministic(t *testing.T) {
	a := NewSequence(7, AllKinds())
	b := NewSequence(7, AllKinds())
	for range 50 {
		ka, kb := a.Next(), b.Next()
		require.Equal(t, ka, kb)
		require.Less(t, ka, kindCount)
	}

	std := NewSequence(1, nil)
	for range 100 {
		assert.Contains(t, StandardKinds(), std.Next())
	}
}
