package game

import "github.com/aspiringLich/oxide-gambit/internal/board"

// PinState restricts a pinned piece to the line between its king and the
// pinner. Dir and Dir.Opposite() are the only directions it may travel.
type PinState struct {
	Pinned bool
	Dir    board.Direction
	Mask   board.Bitboard
}

// Pins holds the pin state of every slot.
type Pins [MaxSlots]PinState

// CheckConstraint limits non-king moves while in check. Squares holds the
// checker and the squares between it and the king; it is empty on double
// check.
type CheckConstraint struct {
	Active   bool
	Checkers int
	Squares  board.Bitboard
}

// CheckPins computes pins and the check constraint for the side to move.
func CheckPins(s *State) (Pins, CheckConstraint) {
	var pins Pins
	us := s.turn
	them := us.Other()
	ksq := s.KingSquare(us)

	for _, d := range board.AllDirections {
		candidate := NoSlot
		for sq, ok := ksq.Step(d); ok; sq, ok = sq.Step(d) {
			slot := s.squares.Get(sq)
			if slot == NoSlot {
				continue
			}
			p := s.pieces[slot]
			if candidate == NoSlot {
				if p.Team != us {
					break
				}
				candidate = slot
				continue
			}
			if p.Team == them && p.Kind.SlidesAlong(d) {
				pins[candidate] = PinState{
					Pinned: true,
					Dir:    d,
					Mask:   board.Between(ksq, sq).With(sq),
				}
			}
			break
		}
	}

	var check CheckConstraint
	rays := s.attacks.sets[them].Sliding.Get(ksq)
	for _, d := range board.AllDirections {
		if !rays.Has(d) {
			continue
		}
		checker := s.nearest(ksq, d.Opposite())
		if !Invariant(checker != NoSlot, "%v ray %v on king %v has no source", them, d, ksq) {
			continue
		}
		csq := s.pieces[checker].Square
		check.Squares |= board.Between(ksq, csq).With(csq)
		check.Checkers++
	}
	knight := s.catalog.Rule(board.Knight, them)
	for _, o := range knight.Jumps {
		if sq, ok := ksq.Offset(o.DX, o.DY); ok {
			if p, ok := s.PieceAt(sq); ok && p.Team == them && p.Kind == board.Knight {
				check.Squares = check.Squares.With(sq)
				check.Checkers++
			}
		}
	}
	for _, dx := range []int{-1, 1} {
		if sq, ok := ksq.Offset(dx, us.Forward()); ok {
			if p, ok := s.PieceAt(sq); ok && p.Team == them && p.Kind == board.Pawn {
				check.Squares = check.Squares.With(sq)
				check.Checkers++
			}
		}
	}
	check.Active = check.Checkers > 0
	if check.Checkers > 1 {
		check.Squares = board.EmptyBB
	}
	return pins, check
}

// attackedAfter reports whether team by would attack sq if the squares in
// removed were emptied and the squares in added were filled by pieces of the
// other team. Used to verify en passant, which moves two pieces off a line at
// once.
func (s *State) attackedAfter(sq board.Square, by board.Team, removed, added board.Bitboard) bool {
	occ := (s.occupied[board.White] | s.occupied[board.Black]) &^ removed | added
	enemy := func(at board.Square, kinds ...board.Kind) bool {
		if removed.Has(at) || added.Has(at) {
			return false
		}
		p, ok := s.PieceAt(at)
		if !ok || p.Team != by {
			return false
		}
		for _, k := range kinds {
			if p.Kind == k {
				return true
			}
		}
		return false
	}

	for _, d := range board.AllDirections {
		for to, ok := sq.Step(d); ok; to, ok = to.Step(d) {
			if !occ.Has(to) {
				continue
			}
			if p, ok := s.PieceAt(to); ok && !removed.Has(to) && !added.Has(to) && p.Team == by && p.Kind.SlidesAlong(d) {
				return true
			}
			break
		}
	}
	for _, o := range s.catalog.Rule(board.Knight, by).Jumps {
		if to, ok := sq.Offset(o.DX, o.DY); ok && enemy(to, board.Knight) {
			return true
		}
	}
	for _, o := range s.catalog.Rule(board.King, by).Jumps {
		if to, ok := sq.Offset(o.DX, o.DY); ok && enemy(to, board.King) {
			return true
		}
	}
	for _, dx := range []int{-1, 1} {
		if to, ok := sq.Offset(dx, -by.Forward()); ok && enemy(to, board.Pawn) {
			return true
		}
	}
	return false
}
