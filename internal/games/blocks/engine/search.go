package engine

import (
	"errors"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Search errors. These indicate a caller bug, not a lost game.
var (
	ErrNoGrid  = errors.New("engine: search needs a grid")
	ErrNoPiece = errors.New("engine: search needs a piece with a known kind")
)

// searchRotations is the number of rotation counts tried for every piece.
const searchRotations = 4

// Move is a candidate placement: rotate the piece Rotations times, then
// slide it to Column and drop it.
type Move struct {
	Rotations int
	Column    int
}

// Weights scales the board features. Lines is a reward; the rest are
// penalties and are subtracted.
type Weights struct {
	Lines     int `yaml:"lines"`
	Height    int `yaml:"height"`
	Holes     int `yaml:"holes"`
	Bumpiness int `yaml:"bumpiness"`
}

// DefaultWeights are the tuned heuristic weights.
var DefaultWeights = Weights{Lines: 1000, Height: 500, Holes: 100, Bumpiness: 300}

// Features are the measured properties of a board.
type Features struct {
	Lines     int // fully occupied rows
	Height    int // rows from the topmost occupied row to the floor
	Holes     int // empty cells under an occupied cell
	Bumpiness int // sum of height differences between neighbouring columns
}

// Score combines the features with the weights. Higher is better.
func (f Features) Score(w Weights) int {
	return w.Lines*f.Lines - w.Height*f.Height - w.Holes*f.Holes - w.Bumpiness*f.Bumpiness
}

// Measure computes the heuristic features of a board.
func Measure(g *Grid) Features {
	var f Features
	f.Lines = len(g.FullRows())

	top := g.Rows
	heights := make([]int, g.Cols)
	for x := 0; x < g.Cols; x++ {
		covered := false
		for y := 0; y < g.Rows; y++ {
			if g.IsEmpty(x, y) {
				if covered {
					f.Holes++
				}
				continue
			}
			if !covered {
				covered = true
				heights[x] = g.Rows - y
				top = min(top, y)
			}
		}
	}
	f.Height = g.Rows - top

	for x := 1; x < g.Cols; x++ {
		f.Bumpiness += core.Abs(heights[x] - heights[x-1])
	}
	return f
}

// Evaluate scores a board after a piece has been placed on it.
func Evaluate(g *Grid, w Weights) int {
	return Measure(g).Score(w)
}

// columnRange returns the anchor columns at which the mask stays inside
// a board of the given width.
func columnRange(m Mask, cols int) (lo, hi int) {
	first, last := m.span()
	return maskOffsetX - first, cols - 1 + maskOffsetX - last
}

// SimulateDrop rotates the piece, moves it to the target column and drops
// it as far as it goes. It returns false when a rotation step is rejected
// or the piece does not fit at the target column.
func SimulateDrop(p Piece, g *Grid, m Move) (Piece, bool) {
	for range m.Rotations {
		if !Shift(&p, g, Rotate) {
			return p, false
		}
	}
	p.X = m.Column
	if !IsValid(p, g) {
		return p, false
	}
	for IsValid(p, g) {
		p.Y++
	}
	p.Y--
	return p, true
}

// EnumerateMoves lists every legal placement, ordered by rotation count
// and then by column.
func EnumerateMoves(p Piece, g *Grid) []Move {
	var moves []Move
	for r := range searchRotations {
		lo, hi := columnRange(p.Kind.Mask(p.Rotation+r), g.Cols)
		for x := lo; x <= hi; x++ {
			m := Move{Rotations: r, Column: x}
			if _, ok := SimulateDrop(p, g, m); ok {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

// Outcome classifies a search result.
type Outcome int

const (
	OutcomeFound Outcome = iota
	OutcomeNoMove
	OutcomeError
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeNoMove:
		return "no_move"
	default:
		return "error"
	}
}

// Result is the outcome of BestMove.
type Result struct {
	Outcome   Outcome
	Move      Move
	Landing   Piece // where the chosen move puts the piece
	Score     int
	Features  Features
	Evaluated int
	Elapsed   time.Duration
	Err       error
}

// TargetRotation returns the rotation index the piece ends up with.
func (r Result) TargetRotation(p Piece) int {
	return (p.Rotation + r.Move.Rotations) % p.Kind.Rotations()
}

// BestMove evaluates every legal placement and returns the highest scoring
// one. Ties keep the first move in enumeration order. The search is
// synchronous and cannot be cancelled; Elapsed reports how long it took.
func BestMove(p Piece, g *Grid, w Weights) Result {
	start := time.Now()
	if g == nil {
		return Result{Outcome: OutcomeError, Err: ErrNoGrid}
	}
	if p.Kind >= kindCount {
		return Result{Outcome: OutcomeError, Err: ErrNoPiece}
	}

	best := Result{Outcome: OutcomeNoMove}
	scratch := g.Clone()
	for _, m := range EnumerateMoves(p, g) {
		landed, _ := SimulateDrop(p, g, m)
		copy(scratch.Cells, g.Cells)
		scratch.Overlay(landed)
		f := Measure(scratch)
		score := f.Score(w)
		best.Evaluated++
		if best.Outcome == OutcomeNoMove || score > best.Score {
			best.Outcome = OutcomeFound
			best.Move = m
			best.Landing = landed
			best.Score = score
			best.Features = f
		}
	}
	best.Elapsed = time.Since(start)
	return best
}
