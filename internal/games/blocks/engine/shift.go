package engine

// Direction is a single piece move.
type Direction int

const (
	Left Direction = iota
	Right
	Down
	Rotate
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Down:
		return "down"
	case Rotate:
		return "rotate"
	default:
		return "unknown"
	}
}

// Shift applies one move to the piece and keeps it only if the result is
// valid on the grid. On rejection the changed field is restored and Shift
// returns false.
func Shift(p *Piece, g *Grid, d Direction) bool {
	prev := *p
	switch d {
	case Left:
		p.X--
	case Right:
		p.X++
	case Down:
		p.Y++
	case Rotate:
		p.rotate()
	default:
		return false
	}
	if IsValid(*p, g) {
		return true
	}
	*p = prev
	return false
}
