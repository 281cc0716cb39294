package engine

import (
	"github.com/aspiringLich/oxide-gambit/internal/board"
	"github.com/aspiringLich/oxide-gambit/internal/game"
)

// OrderMoves puts the hash move first, then captures, promotions and checks,
// then quiet moves. Each bucket keeps generation order so the result is
// deterministic.
func OrderMoves(s *game.State, moves []game.Move, hashMove game.Move) []game.Move {
	ordered := make([]game.Move, 0, len(moves))
	quiet := make([]game.Move, 0, len(moves))
	for _, m := range moves {
		switch {
		case m == hashMove:
			ordered = append([]game.Move{m}, ordered...)
		case IsTactical(s, m) || GivesCheck(s, m):
			ordered = append(ordered, m)
		default:
			quiet = append(quiet, m)
		}
	}
	return append(ordered, quiet...)
}

// IsTactical reports whether m captures (including en passant) or promotes.
func IsTactical(s *game.State, m game.Move) bool {
	return m.Promotion != board.Empty || IsCapture(s, m)
}

// IsCapture reports whether m removes an enemy piece.
func IsCapture(s *game.State, m game.Move) bool {
	if _, ok := s.PieceAt(m.To); ok {
		return true
	}
	p, ok := s.PieceAt(m.From)
	return ok && p.Kind == board.Pawn && m.To == s.EnPassant()
}

// GivesCheck reports whether the piece landing on m.To attacks the enemy
// king directly. Discovered checks and the rook of a castling move are not
// detected.
func GivesCheck(s *game.State, m game.Move) bool {
	p, ok := s.PieceAt(m.From)
	if !ok {
		return false
	}
	kind := p.Kind
	if m.Promotion != board.Empty {
		kind = m.Promotion
	}
	king := s.KingSquare(p.Team.Other())
	rule := s.Catalog().Rule(kind, p.Team)
	for _, o := range rule.Jumps {
		if sq, ok := board.TryFromXY(m.To.X()+o.DX, m.To.Y()+o.DY); ok && sq == king {
			return true
		}
	}
	d, ok := board.DirectionBetween(m.To, king)
	if !ok {
		return false
	}
	occupied := (s.Occupied(board.White) | s.Occupied(board.Black)).Without(m.From)
	for _, slide := range rule.Slides {
		if slide == d {
			return board.Between(m.To, king)&occupied == 0
		}
	}
	return false
}
