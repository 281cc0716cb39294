package game

import (
	"fmt"

	"github.com/aspiringLich/oxide-gambit/internal/board"
)

// Move is a from/to pair with an optional promotion kind.
type Move struct {
	From      board.Square
	To        board.Square
	Promotion board.Kind
}

// NoMove is the zero move, returned when there is nothing to play.
var NoMove = Move{From: board.NoSquare, To: board.NoSquare}

// IsNone reports whether m is NoMove.
func (m Move) IsNone() bool {
	return m.From == board.NoSquare
}

// String returns the move in coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m.IsNone() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.Promotion != board.Empty {
		s += string("-pnbrqk"[m.Promotion])
	}
	return s
}

// ParseMove parses coordinate notation. It only checks syntax; use
// State.IsLegal to check the move against a position.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("parse move %q: want 4 or 5 characters", s)
	}
	from, err := board.ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("parse move %q: %w", s, err)
	}
	to, err := board.ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("parse move %q: %w", s, err)
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		m.Promotion = board.KindFromChar(s[4])
		switch m.Promotion {
		case board.Queen, board.Rook, board.Bishop, board.Knight:
		default:
			return NoMove, fmt.Errorf("parse move %q: invalid promotion %q", s, s[4])
		}
	}
	return m, nil
}
