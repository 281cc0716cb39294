package game

import (
	"math/bits"

	"github.com/aspiringLich/oxide-gambit/internal/board"
)

// LegalTargets returns the legal target squares of one piece of the side to
// move. Pieces of the other side have none.
func (s *State) LegalTargets(slot Slot) board.Bitboard {
	if slot == NoSlot || s.pieces[slot].Kind == board.Empty || s.pieces[slot].Team != s.turn {
		return board.EmptyBB
	}
	pins, check := CheckPins(s)
	return s.legalTargets(slot, &pins, check)
}

func (s *State) legalTargets(slot Slot, pins *Pins, check CheckConstraint) board.Bitboard {
	p := s.pieces[slot]
	targets := s.moves.Targets(slot)
	if p.Kind == board.King {
		return targets
	}
	if check.Checkers > 1 {
		return board.EmptyBB
	}

	var ep board.Bitboard
	if p.Kind == board.Pawn && s.enPassant != board.NoSquare && targets.Has(s.enPassant) {
		targets = targets.Without(s.enPassant)
		if s.enPassantSafe(p) {
			ep = board.SquareBB(s.enPassant)
		}
	}
	if check.Active {
		targets &= check.Squares
	}
	if pins[slot].Pinned {
		targets &= pins[slot].Mask
	}
	return targets | ep
}

// enPassantSafe replays an en passant capture on the occupancy and reports
// whether the mover's king would be left attacked.
func (s *State) enPassantSafe(p Piece) bool {
	captured, _ := s.enPassant.Offset(0, -p.Team.Forward())
	removed := board.SquareBB(p.Square).With(captured)
	added := board.SquareBB(s.enPassant)
	return !s.attackedAfter(s.KingSquare(p.Team), p.Team.Other(), removed, added)
}

// LegalMoves lists every legal move of the side to move, piece by piece in
// slot order and target by target in square order. Promotions expand to
// queen, rook, bishop and knight.
func (s *State) LegalMoves() []Move {
	pins, check := CheckPins(s)
	moves := make([]Move, 0, 48)
	for m := s.live[s.turn]; m != 0; m &= m - 1 {
		slot := Slot(bits.TrailingZeros64(m))
		p := s.pieces[slot]
		promotes := p.Kind == board.Pawn && p.Square.RelativeY(p.Team) == 6
		for targets := s.legalTargets(slot, &pins, check); targets != 0; {
			to := targets.PopLSB()
			if promotes {
				for _, k := range board.PromotionKinds {
					moves = append(moves, Move{From: p.Square, To: to, Promotion: k})
				}
				continue
			}
			moves = append(moves, Move{From: p.Square, To: to})
		}
	}
	return moves
}

// HasLegalMove reports whether the side to move can move at all.
func (s *State) HasLegalMove() bool {
	pins, check := CheckPins(s)
	for m := s.live[s.turn]; m != 0; m &= m - 1 {
		if s.legalTargets(Slot(bits.TrailingZeros64(m)), &pins, check) != 0 {
			return true
		}
	}
	return false
}

// MoveFromTo returns the legal move from one square to another, promoting to
// a queen when a pawn reaches the last rank.
func (s *State) MoveFromTo(from, to board.Square) (Move, bool) {
	if !from.IsValid() || !to.IsValid() {
		return NoMove, false
	}
	slot := s.squares.Get(from)
	if !s.LegalTargets(slot).Has(to) {
		return NoMove, false
	}
	m := Move{From: from, To: to}
	p := s.pieces[slot]
	if p.Kind == board.Pawn && from.RelativeY(p.Team) == 6 {
		m.Promotion = board.Queen
	}
	return m, true
}

// IsLegal reports whether m is legal in the position, including its
// promotion choice.
func (s *State) IsLegal(m Move) bool {
	if !m.From.IsValid() || !m.To.IsValid() {
		return false
	}
	slot := s.squares.Get(m.From)
	if !s.LegalTargets(slot).Has(m.To) {
		return false
	}
	p := s.pieces[slot]
	promotes := p.Kind == board.Pawn && m.From.RelativeY(p.Team) == 6
	switch m.Promotion {
	case board.Empty:
		return !promotes
	case board.Queen, board.Rook, board.Bishop, board.Knight:
		return promotes
	}
	return false
}
