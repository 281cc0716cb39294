package main

import (
	"sort"
	"strings"

	"github.com/aspiringLich/oxide-gambit/internal/engine"
	"github.com/aspiringLich/oxide-gambit/internal/game"
	"github.com/dylhunn/dragontoothmg"
)

// Mismatch is a root move whose subtree counts differ between generators.
// A move missing from one side has a count of 0 there.
type Mismatch struct {
	Move   string
	Ours   uint64
	Theirs uint64
}

// Verify compares divide counts with dragontoothmg and returns the root
// moves that disagree, sorted by move.
func Verify(s *game.State, depth int) []Mismatch {
	ours := make(map[string]uint64)
	for _, e := range engine.Divide(s, depth) {
		ours[e.Move.String()] = e.Nodes
	}
	theirs := dragontoothDivide(s.FEN(), depth)

	var out []Mismatch
	for mv, n := range ours {
		if theirs[mv] != n {
			out = append(out, Mismatch{Move: mv, Ours: n, Theirs: theirs[mv]})
		}
	}
	for mv, n := range theirs {
		if _, ok := ours[mv]; !ok {
			out = append(out, Mismatch{Move: mv, Theirs: n})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Move < out[j].Move })
	return out
}

func dragontoothDivide(fen string, depth int) map[string]uint64 {
	b := dragontoothmg.ParseFen(fen)
	out := make(map[string]uint64)
	for _, m := range b.GenerateLegalMoves() {
		undo := b.Apply(m)
		out[strings.ToLower(m.String())] = dragontoothPerft(&b, depth-1)
		undo()
	}
	return out
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		undo := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		undo()
	}
	return nodes
}
