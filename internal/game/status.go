package game

import "github.com/aspiringLich/oxide-gambit/internal/board"

// Status classifies a position for the side to move.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	FiftyMoveRule
	InsufficientMaterial
	// Repetition needs a position history, so State.Status never
	// reports it.
	Repetition
)

func (st Status) String() string {
	switch st {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case FiftyMoveRule:
		return "draw by fifty-move rule"
	case InsufficientMaterial:
		return "draw by insufficient material"
	case Repetition:
		return "draw by threefold repetition"
	default:
		return "ongoing"
	}
}

// IsOver reports whether the game has ended.
func (st Status) IsOver() bool {
	return st != Ongoing
}

// Status reports whether the game is over and why.
func (s *State) Status() Status {
	if !s.HasLegalMove() {
		if s.InCheck() {
			return Checkmate
		}
		return Stalemate
	}
	if s.halfMove >= 100 {
		return FiftyMoveRule
	}
	if s.insufficientMaterial() {
		return InsufficientMaterial
	}
	return Ongoing
}

// insufficientMaterial covers king against king and king with one minor
// piece against king.
func (s *State) insufficientMaterial() bool {
	minors := 0
	for _, t := range []board.Team{board.White, board.Black} {
		for _, slot := range s.Slots(t) {
			switch s.pieces[slot].Kind {
			case board.King:
			case board.Knight, board.Bishop:
				minors++
			default:
				return false
			}
		}
	}
	return minors <= 1
}
