package game

import (
	"os"
	"testing"

	"github.com/aspiringLich/oxide-gambit/internal/board"
)

var catalog = board.NewCatalog()

func TestMain(m *testing.M) {
	DebugInvariants = true
	os.Exit(m.Run())
}

func mustFEN(t testing.TB, fen string) *State {
	t.Helper()
	s, err := FromFEN(catalog, fen)
	if err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	return s
}

func mustMove(t testing.TB, s *State, uci string) Move {
	t.Helper()
	m, err := ParseMove(uci)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", uci, err)
	}
	if !s.IsLegal(m) {
		t.Fatalf("%s is not legal in %s", uci, s.FEN())
	}
	return m
}

func perft(s *State, depth int) int64 {
	if depth == 0 {
		return 1
	}
	moves := s.LegalMoves()
	if depth == 1 {
		return int64(len(moves))
	}
	var nodes int64
	for _, m := range moves {
		nodes += perft(s.Play(m), depth-1)
	}
	return nodes
}
