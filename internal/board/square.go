// Package board holds the static vocabulary of the engine: squares,
// directions, piece kinds, the piece catalog, square grids and FEN input.
package board

import (
	"errors"
	"fmt"
)

// ErrInvalidSquare is returned when a square name cannot be parsed.
var ErrInvalidSquare = errors.New("invalid square")

// Square is a board index 0-63 with a1 = 0, h1 = 7, a8 = 56, h8 = 63.
type Square uint8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// X returns the file of the square (0 = a).
func (sq Square) X() int {
	return int(sq) % 8
}

// Y returns the rank of the square (0 = rank 1).
func (sq Square) Y() int {
	return int(sq) / 8
}

// String returns the algebraic name of the square, e.g. "e4".
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.X(), '1'+sq.Y())
}

// IsValid reports whether sq is on the board.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// TryFromXY returns the square at file x and rank y, or false when the
// coordinates are off the board.
func TryFromXY(x, y int) (Square, bool) {
	if x < 0 || x > 7 || y < 0 || y > 7 {
		return NoSquare, false
	}
	return Square(y*8 + x), true
}

// MustXY is TryFromXY for coordinates known to be on the board.
func MustXY(x, y int) Square {
	sq, ok := TryFromXY(x, y)
	if !ok {
		panic(fmt.Sprintf("board: coordinates (%d,%d) off the board", x, y))
	}
	return sq
}

// Offset returns the square dx files and dy ranks away. Results that would
// leave the board are rejected instead of wrapping around an edge.
func (sq Square) Offset(dx, dy int) (Square, bool) {
	return TryFromXY(sq.X()+dx, sq.Y()+dy)
}

// Step moves one square in direction d.
func (sq Square) Step(d Direction) (Square, bool) {
	dx, dy := d.Delta()
	return sq.Offset(dx, dy)
}

// Mirror flips the square vertically (a1 <-> a8).
func (sq Square) Mirror() Square {
	return sq ^ 56
}

// RelativeY returns the rank counted from the given team's back rank.
func (sq Square) RelativeY(t Team) int {
	if t == White {
		return sq.Y()
	}
	return 7 - sq.Y()
}

// ParseSquare parses algebraic notation (e.g. "e4").
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	sq, ok := TryFromXY(int(s[0])-'a', int(s[1])-'1')
	if !ok {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return sq, nil
}
