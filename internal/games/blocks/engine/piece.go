package engine

import (
	"math/rand"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Coord is a board position: X is the column, Y the row (0 at the top).
type Coord struct {
	X, Y int
}

// C is a shorthand constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Piece is a placed instance of a catalog shape. Rotation is always kept
// in [0, Kind.Rotations()).
type Piece struct {
	Kind     Kind
	Rotation int
	X, Y     int
}

// Spawn creates a piece centered horizontally at row 0, rotation 0.
// With the mask offsets applied its cells start above the visible board.
func Spawn(k Kind, cols int) Piece {
	return Piece{Kind: k, X: cols / 2}
}

// Color returns the piece's color.
func (p Piece) Color() core.Color {
	return p.Kind.Color()
}

// Mask returns the occupancy mask for the current rotation.
func (p Piece) Mask() Mask {
	return p.Kind.Mask(p.Rotation)
}

// Cells returns the absolute board coordinates occupied by the piece,
// in mask scan order (row-major).
func (p Piece) Cells() []Coord {
	m := p.Mask()
	cells := make([]Coord, 0, 4)
	for i := range MaskSize {
		for j := range MaskSize {
			if m[i][j] {
				cells = append(cells, C(p.X+j-maskOffsetX, p.Y+i-maskOffsetY))
			}
		}
	}
	return cells
}

// rotate advances the rotation index by one, wrapping.
func (p *Piece) rotate() {
	p.Rotation = (p.Rotation + 1) % p.Kind.Rotations()
}

// Sequence draws piece kinds uniformly at random from a fixed set.
type Sequence struct {
	rng   *rand.Rand
	kinds []Kind
}

// NewSequence creates a sequence seeded for reproducible games.
func NewSequence(seed int64, kinds []Kind) *Sequence {
	if len(kinds) == 0 {
		kinds = StandardKinds()
	}
	return &Sequence{
		rng:   rand.New(rand.NewSource(seed)),
		kinds: kinds,
	}
}

// Next returns the next piece kind.
func (s *Sequence) Next() Kind {
	return s.kinds[s.rng.Intn(len(s.kinds))]
}
