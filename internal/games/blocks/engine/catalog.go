// Package engine holds the rules of the falling-block game: the piece
// catalog, the board model, piece movement, progression and the move search.
// It is pure logic with no I/O, no clocks other than search timing, and no
// shared state.
package engine

import (
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// MaskSize is the side length of every rotation mask.
const MaskSize = 5

// Mask offsets that map a mask cell (i, j) to board coordinates
// (x + j - maskOffsetX, y + i - maskOffsetY).
const (
	maskOffsetX = 2
	maskOffsetY = 4
)

// Kind identifies a piece shape.
type Kind uint8

// Standard pieces first, then the two extended (three-cell) pieces.
const (
	KindI Kind = iota
	KindL
	KindJ
	KindO
	KindS
	KindT
	KindZ
	KindSmallI
	KindSmallL
	kindCount
)

// Mask is one rotation state of a piece.
type Mask [MaskSize][MaskSize]bool

type shape struct {
	name      string
	color     core.Color
	rotations []Mask
}

var catalog [kindCount]shape

// StandardKinds lists the seven classic pieces.
func StandardKinds() []Kind {
	return []Kind{KindI, KindL, KindJ, KindO, KindS, KindT, KindZ}
}

// AllKinds lists the standard pieces followed by the extended ones.
func AllKinds() []Kind {
	return append(StandardKinds(), KindSmallI, KindSmallL)
}

// Kinds returns the piece set for a game with or without extended pieces.
func Kinds(extended bool) []Kind {
	if extended {
		return AllKinds()
	}
	return StandardKinds()
}

func (k Kind) shape() *shape {
	if k >= kindCount {
		panic(fmt.Sprintf("engine: unknown piece kind %d", k))
	}
	return &catalog[k]
}

// String returns the short piece name ("I", "L", ..., "i", "l").
func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return catalog[k].name
}

// Color returns the fixed color of the piece.
func (k Kind) Color() core.Color {
	return k.shape().color
}

// Rotations returns the number of distinct rotation states.
func (k Kind) Rotations() int {
	return len(k.shape().rotations)
}

// Mask returns the occupancy mask for rotation index i, wrapped modulo
// the number of rotation states.
func (k Kind) Mask(i int) Mask {
	rots := k.shape().rotations
	n := len(rots)
	return rots[((i%n)+n)%n]
}

// span returns the first and last occupied mask columns.
func (m Mask) span() (lo, hi int) {
	lo, hi = MaskSize, -1
	for i := range MaskSize {
		for j := range MaskSize {
			if m[i][j] {
				lo = min(lo, j)
				hi = max(hi, j)
			}
		}
	}
	return lo, hi
}

// parseMask reads a 5-line pattern where 'O' is occupied and '*' is empty.
func parseMask(rows [MaskSize]string) Mask {
	var m Mask
	for i, row := range rows {
		if len(row) != MaskSize {
			panic(fmt.Sprintf("engine: mask row %q has length %d", row, len(row)))
		}
		for j, ch := range row {
			switch ch {
			case 'O':
				m[i][j] = true
			case '*':
			default:
				panic(fmt.Sprintf("engine: bad mask character %q", ch))
			}
		}
	}
	return m
}

func define(k Kind, name string, color core.Color, patterns ...[MaskSize]string) {
	s := shape{name: name, color: color}
	for _, p := range patterns {
		s.rotations = append(s.rotations, parseMask(p))
	}
	catalog[k] = s
}

func init() {
	define(KindI, "I", core.ColorCyan,
		[MaskSize]string{"*O***", "*O***", "*O***", "*O***", "*****"},
		[MaskSize]string{"OOOO*", "*****", "*****", "*****", "*****"},
	)
	define(KindL, "L", core.ColorBlue,
		[MaskSize]string{"*****", "***O*", "*OOO*", "*****", "*****"},
		[MaskSize]string{"*****", "**O**", "**O**", "**OO*", "*****"},
		[MaskSize]string{"*****", "*****", "*OOO*", "*O***", "*****"},
		[MaskSize]string{"*****", "*OO**", "**O**", "**O**", "*****"},
	)
	define(KindJ, "J", core.ColorOrange,
		[MaskSize]string{"*****", "*O***", "*OOO*", "*****", "*****"},
		[MaskSize]string{"*****", "**OO*", "**O**", "**O**", "*****"},
		[MaskSize]string{"*****", "*****", "*OOO*", "***O*", "*****"},
		[MaskSize]string{"*****", "**O**", "**O**", "*OO**", "*****"},
	)
	define(KindO, "O", core.ColorYellow,
		[MaskSize]string{"*****", "*****", "*OO**", "*OO**", "*****"},
	)
	define(KindS, "S", core.ColorGreen,
		[MaskSize]string{"*****", "*****", "**OO*", "*OO**", "*****"},
		[MaskSize]string{"*****", "**O**", "**OO*", "***O*", "*****"},
	)
	define(KindT, "T", core.ColorMagenta,
		[MaskSize]string{"*****", "**O**", "*OOO*", "*****", "*****"},
		[MaskSize]string{"*****", "**O**", "**OO*", "**O**", "*****"},
		[MaskSize]string{"*****", "*****", "*OOO*", "**O**", "*****"},
		[MaskSize]string{"*****", "**O**", "*OO**", "**O**", "*****"},
	)
	define(KindZ, "Z", core.ColorRed,
		[MaskSize]string{"*****", "*****", "*OO**", "**OO*", "*****"},
		[MaskSize]string{"*****", "**O**", "*OO**", "*O***", "*****"},
	)
	define(KindSmallI, "i", core.ColorBrightCyan,
		[MaskSize]string{"*****", "**O**", "**O**", "**O**", "*****"},
		[MaskSize]string{"*****", "*OOO*", "*****", "*****", "*****"},
	)
	define(KindSmallL, "l", core.ColorBrightBlue,
		[MaskSize]string{"*****", "***O*", "**OO*", "*****", "*****"},
		[MaskSize]string{"*****", "*****", "**O**", "**OO*", "*****"},
		[MaskSize]string{"*****", "*****", "*OO**", "*O***", "*****"},
		[MaskSize]string{"*****", "*OO**", "**O**", "*****", "*****"},
	)
}
