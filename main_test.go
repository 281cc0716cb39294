package main

import (
	"testing"

	"github.com/aspiringLich/oxide-gambit/internal/board"
	"github.com/aspiringLich/oxide-gambit/internal/engine"
)

func TestCheckFlags(t *testing.T) {
	tests := []struct {
		name       string
		fen        string
		difficulty string
		want       *engine.Difficulty
		wantErr    bool
	}{
		{"defaults", "", "", nil, false},
		{"hard", "", "hard", ptr(engine.Hard), false},
		{"custom start", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", "Easy", ptr(engine.Easy), false},
		{"standard start", board.StartFEN, "", nil, false},
		{"unknown difficulty", "", "impossible", nil, true},
		{"malformed fen", "4k3/8/8/8/8/8/8/4K3 x - - 0 1", "", nil, true},
		{"king capturable", "4k3/4R3/8/8/8/8/8/4K3 w - - 0 1", "", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checkFlags(tt.fen, tt.difficulty)
			if (err != nil) != tt.wantErr {
				t.Fatalf("checkFlags error = %v, wantErr %v", err, tt.wantErr)
			}
			if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
				t.Errorf("checkFlags difficulty = %v, want %v", got, tt.want)
			}
		})
	}
}

func ptr(d engine.Difficulty) *engine.Difficulty { return &d }
