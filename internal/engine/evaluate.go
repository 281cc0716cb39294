package engine

import (
	"github.com/aspiringLich/oxide-gambit/internal/board"
	"github.com/aspiringLich/oxide-gambit/internal/eval"
	"github.com/aspiringLich/oxide-gambit/internal/game"
)

// Evaluate returns the static score of a position in centipawns from the
// side to move's point of view. Material and piece-square sums come from the
// state's running totals; kings and threats are scored here.
func Evaluate(s *game.State) int {
	endgame := s.IsEndgame()
	var score [2]int
	for _, t := range []board.Team{board.White, board.Black} {
		score[t] = s.Material(t) + s.Positional(t) +
			eval.King(t, s.KingSquare(t), endgame) +
			threatScore(s, t)
	}
	us := s.Turn()
	return score[us] - score[us.Other()]
}

// threatScore penalises hanging pieces and rewards quietly defended ones.
func threatScore(s *game.State, t board.Team) int {
	attacks := s.Attacks()
	c := s.Catalog()
	total := 0
	for _, slot := range s.Slots(t) {
		p := s.Piece(slot)
		if p.Kind == board.King {
			continue
		}
		attacked := attacks.IsAttacked(p.Square, t.Other())
		defended := attacks.IsAttacked(p.Square, t)
		switch {
		case attacked && !defended:
			total -= c.Value(p.Kind) / eval.HangingDivisor
		case defended && !attacked:
			total += eval.ProtectedBonus
		}
	}
	return total
}

// Terminal scores a position with no legal moves: mated at ply scores
// -MateScore+ply so shorter mates rank higher, stalemate is exactly 0.
func Terminal(s *game.State, ply int) int {
	if s.InCheck() {
		return -MateScore + ply
	}
	return 0
}
