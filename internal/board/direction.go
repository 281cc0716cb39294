package board

// Direction is one of the eight compass directions used by sliding pieces
// and by ray scans. Opposite directions are four apart.
type Direction uint8

const (
	East Direction = iota
	NorthEast
	North
	NorthWest
	West
	SouthWest
	South
	SouthEast
)

// Direction groups.
var (
	AllDirections = [8]Direction{East, NorthEast, North, NorthWest, West, SouthWest, South, SouthEast}
	Orthogonals   = []Direction{East, North, West, South}
	Diagonals     = []Direction{NorthEast, NorthWest, SouthWest, SouthEast}
)

var directionDelta = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// Delta returns the file and rank step of the direction.
func (d Direction) Delta() (dx, dy int) {
	return directionDelta[d][0], directionDelta[d][1]
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return (d + 4) & 7
}

// IsDiagonal reports whether d is one of the four diagonals.
func (d Direction) IsDiagonal() bool {
	return d&1 == 1
}

// String returns the compass abbreviation.
func (d Direction) String() string {
	return [8]string{"E", "NE", "N", "NW", "W", "SW", "S", "SE"}[d&7]
}

// DirectionBetween returns the direction leading from one square to another
// when both share a rank, file or diagonal.
func DirectionBetween(from, to Square) (Direction, bool) {
	dx, dy := to.X()-from.X(), to.Y()-from.Y()
	if from == to || (dx != 0 && dy != 0 && abs(dx) != abs(dy)) {
		return 0, false
	}
	sx, sy := sign(dx), sign(dy)
	for d, delta := range directionDelta {
		if delta[0] == sx && delta[1] == sy {
			return Direction(d), true
		}
	}
	return 0, false
}

// Ray returns the squares strictly after from in direction d up to the board
// edge, ignoring occupancy.
func Ray(from Square, d Direction) Bitboard {
	var bb Bitboard
	for sq, ok := from.Step(d); ok; sq, ok = sq.Step(d) {
		bb |= SquareBB(sq)
	}
	return bb
}

// Between returns the squares strictly between two aligned squares, or an
// empty set when they are not aligned.
func Between(a, b Square) Bitboard {
	d, ok := DirectionBetween(a, b)
	if !ok {
		return EmptyBB
	}
	var bb Bitboard
	for sq, _ := a.Step(d); sq != b; sq, _ = sq.Step(d) {
		bb |= SquareBB(sq)
	}
	return bb
}

// RayMask is a set of directions, one bit per Direction.
type RayMask uint8

// Has reports whether d is in the set.
func (m RayMask) Has(d Direction) bool {
	return m&(1<<d) != 0
}

// With returns the set with d added.
func (m RayMask) With(d Direction) RayMask {
	return m | 1<<d
}

// Without returns the set with d removed.
func (m RayMask) Without(d Direction) RayMask {
	return m &^ (1 << d)
}

// Count returns the number of directions in the set.
func (m RayMask) Count() int {
	n := 0
	for ; m != 0; m &= m - 1 {
		n++
	}
	return n
}

// Directions lists the directions in the set in compass order.
func (m RayMask) Directions() []Direction {
	var out []Direction
	for _, d := range AllDirections {
		if m.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
