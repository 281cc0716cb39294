package game

import (
	"fmt"

	"github.com/aspiringLich/oxide-gambit/internal/board"
)

// Verify recomputes every incrementally maintained structure from the
// placement and reports the first difference.
func (s *State) Verify() error {
	fresh := GenerateAttacks(s)
	for _, t := range []board.Team{board.White, board.Black} {
		got, want := s.attacks.Set(t), fresh.Set(t)
		for sq := board.A1; sq <= board.H8; sq++ {
			if got.NonSliding.Get(sq) != want.NonSliding.Get(sq) {
				return fmt.Errorf("%v static attacks on %v: have %d, want %d", t, sq, got.NonSliding.Get(sq), want.NonSliding.Get(sq))
			}
			if got.Sliding.Get(sq) != want.Sliding.Get(sq) {
				return fmt.Errorf("%v sliding attacks on %v: have %v, want %v", t, sq, got.Sliding.Get(sq).Directions(), want.Sliding.Get(sq).Directions())
			}
		}
	}

	moves := GenerateMoves(s)
	for slot := Slot(1); slot < MaxSlots; slot++ {
		if got, want := s.moves.Targets(slot), moves.Targets(slot); got != want {
			p := s.pieces[slot]
			return fmt.Errorf("%v %v on %v targets: have %v, want %v", p.Team, p.Kind, p.Square, got.Squares(), want.Squares())
		}
	}

	material, positional := s.RecomputeScore()
	if material != s.material || positional != s.positional {
		return fmt.Errorf("score: have %v/%v, want %v/%v", s.material, s.positional, material, positional)
	}
	if h := s.ComputeHash(); h != s.hash {
		return fmt.Errorf("hash: have %016x, want %016x", s.hash, h)
	}
	return nil
}
