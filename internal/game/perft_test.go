package game

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/aspiringLich/oxide-gambit/internal/board"
	"github.com/dylhunn/dragontoothmg"
)

const (
	kiwipeteFEN  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	position3FEN = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	position4FEN = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
)

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
		want  int64
	}{
		{"start", board.StartFEN, 1, 20},
		{"start", board.StartFEN, 2, 400},
		{"start", board.StartFEN, 3, 8902},
		{"start", board.StartFEN, 4, 197281},
		{"kiwipete", kiwipeteFEN, 1, 48},
		{"kiwipete", kiwipeteFEN, 2, 2039},
		{"kiwipete", kiwipeteFEN, 3, 97862},
		{"position3", position3FEN, 1, 14},
		{"position3", position3FEN, 2, 191},
		{"position3", position3FEN, 3, 2812},
		{"position3", position3FEN, 4, 43238},
		{"position4", position4FEN, 1, 6},
		{"position4", position4FEN, 2, 264},
		{"position4", position4FEN, 3, 9467},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if testing.Short() && tc.want > 50000 {
				t.Skip("skipping deep perft in short mode")
			}
			s := mustFEN(t, tc.fen)
			if got := perft(s, tc.depth); got != tc.want {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.want)
			}
		})
	}
}

// TestRandomPlayoutsStayConsistent plays random games and rebuilds every
// incremental structure from scratch after each move.
func TestRandomPlayoutsStayConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, fen := range []string{board.StartFEN, kiwipeteFEN, position3FEN, position4FEN} {
		for game := 0; game < 20; game++ {
			s := mustFEN(t, fen)
			for ply := 0; ply < 120; ply++ {
				moves := s.LegalMoves()
				if len(moves) == 0 {
					break
				}
				m := moves[rng.Intn(len(moves))]
				s.MakeMove(m)
				if err := s.Verify(); err != nil {
					t.Fatalf("after %v in game %d ply %d (%s): %v", m, game, ply, s.FEN(), err)
				}
			}
		}
	}
}

// TestLegalMovesMatchDragontooth compares legal move lists against an
// independent generator along random games.
func TestLegalMovesMatchDragontooth(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, fen := range []string{board.StartFEN, kiwipeteFEN, position3FEN, position4FEN} {
		for game := 0; game < 10; game++ {
			s := mustFEN(t, fen)
			for ply := 0; ply < 80; ply++ {
				ours := moveStrings(s.LegalMoves())
				theirs := dragontoothMoves(s.FEN())
				if strings.Join(ours, " ") != strings.Join(theirs, " ") {
					t.Fatalf("%s:\n have %v\n want %v", s.FEN(), ours, theirs)
				}
				if len(ours) == 0 {
					break
				}
				m, _ := ParseMove(ours[rng.Intn(len(ours))])
				s.MakeMove(m)
			}
		}
	}
}

func moveStrings(moves []Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}

func dragontoothMoves(fen string) []string {
	b := dragontoothmg.ParseFen(fen)
	moves := b.GenerateLegalMoves()
	out := make([]string, len(moves))
	for i := range moves {
		out[i] = strings.ToLower(moves[i].String())
	}
	sort.Strings(out)
	return out
}
