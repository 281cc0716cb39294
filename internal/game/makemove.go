package game

import "github.com/aspiringLich/oxide-gambit/internal/board"

// MakeMove plays a legal move, updating placement, attack maps, move sets,
// score, hash and counters incrementally. Moves that do not start from a
// piece of the side to move are rejected as invariant violations.
func (s *State) MakeMove(m Move) {
	if !Invariant(m.From.IsValid() && m.To.IsValid(), "move %v off the board", m) {
		return
	}
	slot := s.squares.Get(m.From)
	if !Invariant(slot != NoSlot && s.pieces[slot].Team == s.turn, "no %v piece on %v for %v", s.turn, m.From, m) {
		return
	}
	p := s.pieces[slot]
	us := s.turn
	oldEP := s.enPassant

	var changed [4]board.Square
	changed[0], changed[1] = m.From, m.To
	n := 2

	victim := s.squares.Get(m.To)
	if !Invariant(victim == NoSlot || s.pieces[victim].Team != us, "%v captures own piece on %v", m, m.To) {
		return
	}
	resetClock := p.Kind == board.Pawn || victim != NoSlot

	s.unscore(slot)
	switch {
	case p.Kind == board.King && abs(m.To.X()-m.From.X()) == 2:
		rookFrom, rookTo := castleRookSquares(m)
		rook := s.squares.Get(rookFrom)
		if !Invariant(rook != NoSlot && s.pieces[rook].Kind == board.Rook, "castling %v without rook on %v", m, rookFrom) {
			s.score(slot)
			return
		}
		s.unscore(rook)
		s.lift(slot)
		s.lift(rook)
		s.drop(slot, m.To)
		s.drop(rook, rookTo)
		s.score(rook)
		changed[2], changed[3] = rookFrom, rookTo
		n = 4

	case p.Kind == board.Pawn && m.To == oldEP && victim == NoSlot:
		captured, _ := m.To.Offset(0, -us.Forward())
		cslot := s.squares.Get(captured)
		if !Invariant(cslot != NoSlot, "en passant %v without a pawn on %v", m, captured) {
			s.score(slot)
			return
		}
		s.unscore(cslot)
		s.lift(slot)
		s.lift(cslot)
		s.kill(cslot)
		s.drop(slot, m.To)
		changed[2] = captured
		n = 3

	default:
		s.lift(slot)
		if m.Promotion != board.Empty {
			Invariant(p.Kind == board.Pawn && m.To.RelativeY(us) == 7, "promotion %v by %v", m, p.Kind)
			s.pieces[slot].Kind = m.Promotion
		}
		if victim != NoSlot {
			s.unscore(victim)
			s.capture(slot, m.To)
		} else {
			s.drop(slot, m.To)
		}
	}
	s.score(slot)

	cr := s.castling
	if p.Kind == board.King {
		cr &^= board.Right(us, true) | board.Right(us, false)
	}
	cr &^= rookHomeRight(m.From) | rookHomeRight(m.To)
	s.setCastling(cr)

	newEP := board.NoSquare
	if p.Kind == board.Pawn && abs(m.To.Y()-m.From.Y()) == 2 {
		newEP, _ = m.From.Offset(0, us.Forward())
	}
	s.setEnPassant(newEP)

	if resetClock {
		s.halfMove = 0
	} else {
		s.halfMove++
	}
	if us == board.Black {
		s.fullMove++
	}
	s.turn = us.Other()
	s.key.Turn = s.turn
	s.hash ^= board.ZobristTurn(board.Black)

	s.refreshMoves(changed[:n], [2]board.Square{oldEP, newEP})
}

// Play returns a copy of the position with m played, leaving s untouched.
func (s *State) Play(m Move) *State {
	next := *s
	next.MakeMove(m)
	return &next
}

func castleRookSquares(m Move) (from, to board.Square) {
	y := m.From.Y()
	if m.To.X() > m.From.X() {
		return board.MustXY(7, y), board.MustXY(5, y)
	}
	return board.MustXY(0, y), board.MustXY(3, y)
}

func rookHomeRight(sq board.Square) board.CastlingRights {
	switch sq {
	case board.H1:
		return board.WhiteKingSide
	case board.A1:
		return board.WhiteQueenSide
	case board.H8:
		return board.BlackKingSide
	case board.A8:
		return board.BlackQueenSide
	}
	return board.NoCastling
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
