package engine

import (
	"sort"

	"github.com/aspiringLich/oxide-gambit/internal/game"
)

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(s *game.State, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := s.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		nodes += Perft(s.Play(m), depth-1)
	}
	return nodes
}

// DivideEntry is the perft count below one root move.
type DivideEntry struct {
	Move  game.Move
	Nodes uint64
}

// Divide runs perft below each root move, sorted by move string.
func Divide(s *game.State, depth int) []DivideEntry {
	if depth < 1 {
		return nil
	}
	moves := s.LegalMoves()
	out := make([]DivideEntry, 0, len(moves))
	for _, m := range moves {
		out = append(out, DivideEntry{Move: m, Nodes: Perft(s.Play(m), depth-1)})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Move.String() < out[j].Move.String()
	})
	return out
}
