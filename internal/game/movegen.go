package game

import (
	"math/bits"

	"github.com/aspiringLich/oxide-gambit/internal/board"
)

// MoveSet stores, per slot, the set of target squares of that piece. A
// (piece, target) pair is one element; promotions are expanded only when
// moves are listed.
type MoveSet struct {
	targets [MaxSlots]board.Bitboard
}

// Targets returns the stored targets of a slot.
func (ms *MoveSet) Targets(slot Slot) board.Bitboard {
	return ms.targets[slot]
}

// Len returns the number of stored (piece, target) elements.
func (ms *MoveSet) Len() int {
	n := 0
	for _, t := range ms.targets {
		n += t.PopCount()
	}
	return n
}

func (ms *MoveSet) insert(slot Slot, targets board.Bitboard) {
	if !Invariant(ms.targets[slot]&targets == 0, "duplicate move insert for slot %d: %v", slot, (ms.targets[slot] & targets).Squares()) {
		targets &^= ms.targets[slot]
	}
	ms.targets[slot] |= targets
}

func (ms *MoveSet) clear(slot Slot) {
	ms.targets[slot] = board.EmptyBB
}

// GenerateMoves regenerates every piece's targets from scratch. Attack maps
// must be current.
func GenerateMoves(s *State) MoveSet {
	var ms MoveSet
	for _, t := range []board.Team{board.White, board.Black} {
		for m := s.live[t]; m != 0; m &= m - 1 {
			slot := Slot(bits.TrailingZeros64(m))
			ms.insert(slot, s.pieceTargets(slot))
		}
	}
	return ms
}

// AddPieceMoves generates the targets of one piece into the move set.
func (s *State) AddPieceMoves(slot Slot) {
	s.moves.insert(slot, s.pieceTargets(slot))
}

// RemovePieceMoves drops every stored target of one piece.
func (s *State) RemovePieceMoves(slot Slot) {
	s.moves.clear(slot)
}

// pieceTargets computes the pseudo-legal targets of a piece. King targets
// are fully legal.
func (s *State) pieceTargets(slot Slot) board.Bitboard {
	p := s.pieces[slot]
	rule := s.catalog.Rule(p.Kind, p.Team)
	switch {
	case rule.Pawn:
		return s.pawnTargets(p, rule)
	case p.Kind == board.King:
		return s.kingTargets(p, rule)
	}

	own := s.occupied[p.Team]
	var bb board.Bitboard
	for _, o := range rule.Jumps {
		if to, ok := p.Square.Offset(o.DX, o.DY); ok && !own.Has(to) {
			bb = bb.With(to)
		}
	}
	for _, d := range rule.Slides {
		for to, ok := p.Square.Step(d); ok; to, ok = to.Step(d) {
			if own.Has(to) {
				break
			}
			bb = bb.With(to)
			if s.squares.Get(to) != NoSlot {
				break
			}
		}
	}
	return bb
}

func (s *State) pawnTargets(p Piece, rule *board.Rule) board.Bitboard {
	var bb board.Bitboard
	f := p.Team.Forward()
	if one, ok := p.Square.Offset(0, f); ok && s.squares.Get(one) == NoSlot {
		bb = bb.With(one)
		if p.Square.RelativeY(p.Team) == 1 {
			if two, ok := one.Offset(0, f); ok && s.squares.Get(two) == NoSlot {
				bb = bb.With(two)
			}
		}
	}
	enemy := s.occupied[p.Team.Other()]
	for _, o := range rule.Jumps {
		to, ok := p.Square.Offset(o.DX, o.DY)
		if !ok {
			continue
		}
		if enemy.Has(to) || (to == s.enPassant && s.turn == p.Team) {
			bb = bb.With(to)
		}
	}
	return bb
}

func (s *State) kingTargets(p Piece, rule *board.Rule) board.Bitboard {
	them := p.Team.Other()
	own := s.occupied[p.Team]

	// Squares behind the king on an enemy ray stay attacked once it steps
	// off the ray.
	var xray board.Bitboard
	rays := s.attacks.sets[them].Sliding.Get(p.Square)
	for _, d := range board.AllDirections {
		if rays.Has(d) {
			if behind, ok := p.Square.Step(d); ok {
				xray = xray.With(behind)
			}
		}
	}

	var bb board.Bitboard
	for _, o := range rule.Jumps {
		to, ok := p.Square.Offset(o.DX, o.DY)
		if !ok || own.Has(to) || xray.Has(to) || s.attacks.IsAttacked(to, them) {
			continue
		}
		bb = bb.With(to)
	}
	return bb | s.castlingTargets(p)
}

func (s *State) castlingTargets(p Piece) board.Bitboard {
	them := p.Team.Other()
	y := 0
	if p.Team == board.Black {
		y = 7
	}
	if p.Square != board.MustXY(4, y) || s.attacks.IsAttacked(p.Square, them) {
		return board.EmptyBB
	}

	var bb board.Bitboard
	for _, kingSide := range []bool{true, false} {
		if !s.castling.Has(p.Team, kingSide) {
			continue
		}
		rookX, transit, landing, empty := 0, 3, 2, []int{1, 2, 3}
		if kingSide {
			rookX, transit, landing, empty = 7, 5, 6, []int{5, 6}
		}
		rook, ok := s.PieceAt(board.MustXY(rookX, y))
		if !ok || rook.Kind != board.Rook || rook.Team != p.Team {
			continue
		}
		free := true
		for _, x := range empty {
			if s.squares.Get(board.MustXY(x, y)) != NoSlot {
				free = false
				break
			}
		}
		if !free ||
			s.attacks.IsAttacked(board.MustXY(transit, y), them) ||
			s.attacks.IsAttacked(board.MustXY(landing, y), them) {
			continue
		}
		bb = bb.With(board.MustXY(landing, y))
	}
	return bb
}

// nearest returns the first piece from sq in direction d, or NoSlot.
func (s *State) nearest(sq board.Square, d board.Direction) Slot {
	for to, ok := sq.Step(d); ok; to, ok = to.Step(d) {
		if slot := s.squares.Get(to); slot != NoSlot {
			return slot
		}
	}
	return NoSlot
}

// refreshMoves regenerates the pieces whose targets can depend on the
// changed squares or on the en passant targets: the occupants, the nearest
// piece on every ray, knights a jump away, pawns diagonal to an en passant
// square, and both kings.
func (s *State) refreshMoves(changed []board.Square, epSquares [2]board.Square) {
	var dirty uint64
	mark := func(slot Slot) {
		if slot != NoSlot {
			dirty |= 1 << slot
		}
	}
	knight := s.catalog.Rule(board.Knight, board.White)
	for _, c := range changed {
		mark(s.squares.Get(c))
		for _, d := range board.AllDirections {
			mark(s.nearest(c, d))
		}
		for _, o := range knight.Jumps {
			if sq, ok := c.Offset(o.DX, o.DY); ok {
				if p, ok := s.PieceAt(sq); ok && p.Kind == board.Knight {
					mark(s.squares.Get(sq))
				}
			}
		}
	}
	for _, ep := range epSquares {
		if ep == board.NoSquare {
			continue
		}
		for _, dx := range []int{-1, 1} {
			for _, dy := range []int{-1, 1} {
				if sq, ok := ep.Offset(dx, dy); ok {
					if p, ok := s.PieceAt(sq); ok && p.Kind == board.Pawn {
						mark(s.squares.Get(sq))
					}
				}
			}
		}
	}
	mark(s.kings[board.White])
	mark(s.kings[board.Black])

	for ; dirty != 0; dirty &= dirty - 1 {
		slot := Slot(bits.TrailingZeros64(dirty))
		s.RemovePieceMoves(slot)
		s.AddPieceMoves(slot)
	}
}
