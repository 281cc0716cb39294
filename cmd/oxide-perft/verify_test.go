package main

import (
	"testing"

	"github.com/aspiringLich/oxide-gambit/internal/board"
	"github.com/aspiringLich/oxide-gambit/internal/game"
)

func TestVerify(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
	}{
		{"Start", board.StartFEN, 3},
		{"Kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2},
		{"Position3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3},
		{"Promotions", "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := game.FromFEN(board.NewCatalog(), tt.fen)
			if err != nil {
				t.Fatalf("FromFEN: %v", err)
			}
			for _, m := range Verify(s, tt.depth) {
				t.Errorf("%s: ours %d, dragontoothmg %d", m.Move, m.Ours, m.Theirs)
			}
		})
	}
}
