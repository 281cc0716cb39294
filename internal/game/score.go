package game

import (
	"github.com/aspiringLich/oxide-gambit/internal/board"
	"github.com/aspiringLich/oxide-gambit/internal/eval"
)

// Material returns the running material sum of a team in centipawns.
func (s *State) Material(t board.Team) int { return s.material[t] }

// Positional returns the running piece-square sum of a team, kings excluded.
func (s *State) Positional(t board.Team) int { return s.positional[t] }

func (s *State) score(slot Slot) {
	p := s.pieces[slot]
	s.material[p.Team] += s.catalog.Value(p.Kind)
	s.positional[p.Team] += eval.Square(p.Kind, p.Team, p.Square)
}

func (s *State) unscore(slot Slot) {
	p := s.pieces[slot]
	s.material[p.Team] -= s.catalog.Value(p.Kind)
	s.positional[p.Team] -= eval.Square(p.Kind, p.Team, p.Square)
}

// RecomputeScore sums material and piece-square values from scratch.
func (s *State) RecomputeScore() (material, positional [2]int) {
	for _, t := range []board.Team{board.White, board.Black} {
		for _, slot := range s.Slots(t) {
			p := s.pieces[slot]
			material[t] += s.catalog.Value(p.Kind)
			positional[t] += eval.Square(p.Kind, p.Team, p.Square)
		}
	}
	return material, positional
}

// IsEndgame reports whether kings should use the endgame table: little
// material besides pawns is left on the board.
func (s *State) IsEndgame() bool {
	pieces := s.material[board.White] + s.material[board.Black]
	for _, t := range []board.Team{board.White, board.Black} {
		pieces -= s.catalog.Value(board.Pawn) * s.pawns(t)
	}
	return pieces <= eval.EndgameMaterial
}

func (s *State) pawns(t board.Team) int {
	n := 0
	for _, slot := range s.Slots(t) {
		if s.pieces[slot].Kind == board.Pawn {
			n++
		}
	}
	return n
}
