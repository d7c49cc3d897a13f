package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

func TestShiftRejectsAtWall(t *testing.T) {
	g := NewGrid(StandardRows, StandardCols)
	p := Piece{Kind: KindO, X: 1, Y: 10}

	assert.False(t, Shift(&p, g, Left))
	assert.Equal(t, 1, p.X)

	assert.True(t, Shift(&p, g, Right))
	assert.Equal(t, 2, p.X)
}

func TestShiftRotateRollback(t *testing.T) {
	g := NewGrid(StandardRows, StandardCols)
	// Vertical I in column 0; horizontal would stick out of the left wall.
	p := Piece{Kind: KindI, X: 1, Y: 10}
	require.True(t, IsValid(p, g))

	assert.False(t, Shift(&p, g, Rotate))
	assert.Equal(t, 0, p.Rotation)
}

func TestShiftDownStopsOnFloor(t *testing.T) {
	g := NewGrid(StandardRows, StandardCols)
	p := Spawn(KindO, StandardCols)
	steps := 0
	for Shift(&p, g, Down) {
		steps++
	}
	// O occupies rows Y-2 and Y-1, so it rests with Y-1 on the last row.
	assert.Equal(t, 20, p.Y)
	assert.Equal(t, 20, steps)
}

func TestRotationCycles(t *testing.T) {
	g := NewGrid(StandardRows, StandardCols)
	for _, k := range AllKinds() {
		p := Piece{Kind: k, X: 5, Y: 10}
		for range k.Rotations() {
			require.True(t, Shift(&p, g, Rotate), "%s", k)
		}
		assert.Equal(t, 0, p.Rotation, "%s should return to rotation 0", k)
	}
}

func TestShiftKeepsPieceValid(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	dirs := []Direction{Left, Right, Down, Rotate}

	for round := range 200 {
		locked := NewLockedMap()
		for range rng.Intn(60) {
			locked.Set(rng.Intn(StandardCols), 8+rng.Intn(12), core.ColorRed)
		}
		g := Build(locked, StandardRows, StandardCols)
		p := Spawn(AllKinds()[rng.Intn(9)], StandardCols)
		require.True(t, IsValid(p, g))

		for range 40 {
			before := p
			d := dirs[rng.Intn(len(dirs))]
			if !Shift(&p, g, d) {
				require.Equal(t, before, p, "round %d: rejected %s must roll back", round, d)
			}
			require.True(t, IsValid(p, g), "round %d: piece left valid state", round)
			require.GreaterOrEqual(t, p.Rotation, 0)
			require.Less(t, p.Rotation, p.Kind.Rotations())
		}
	}
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "rotate", Rotate.String())
	assert.Equal(t, "unknown", Direction(9).String())
}
