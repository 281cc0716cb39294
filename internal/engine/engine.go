// Package engine searches chess positions: static evaluation, negamax
// alpha-beta with a transposition table, perft, and background search tasks.
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/aspiringLich/oxide-gambit/internal/game"
	"github.com/charmbracelet/log"
)

var logger = log.WithPrefix("engine")

// SearchLimits specifies constraints on the search.
type SearchLimits struct {
	Depth int
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// DifficultySettings maps difficulty to search limits.
var DifficultySettings = map[Difficulty]SearchLimits{
	Easy:   {Depth: 2},
	Medium: {Depth: 3},
	Hard:   {Depth: 4},
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// ParseDifficulty parses "easy", "medium" or "hard".
func ParseDifficulty(s string) (Difficulty, error) {
	for d := range DifficultySettings {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return Medium, fmt.Errorf("unknown difficulty %q", s)
}

// Engine is the chess AI: a transposition table shared by the searches it
// starts, and the current difficulty.
type Engine struct {
	tt         *TranspositionTable
	difficulty Difficulty
}

// NewEngine creates an engine with a transposition table of the given size
// in MB. A size of 0 disables the table.
func NewEngine(ttSizeMB int) *Engine {
	e := &Engine{difficulty: Medium}
	if ttSizeMB > 0 {
		e.tt = NewTranspositionTable(ttSizeMB)
	}
	return e
}

// SetDifficulty sets the engine difficulty.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
}

// Difficulty returns the current difficulty.
func (e *Engine) Difficulty() Difficulty {
	return e.difficulty
}

// Depth returns the search depth of the current difficulty.
func (e *Engine) Depth() int {
	return DifficultySettings[e.difficulty].Depth
}

// Search finds the best move synchronously at the current difficulty.
func (e *Engine) Search(ctx context.Context, s *game.State) Result {
	return e.SearchDepth(ctx, s, e.Depth())
}

// SearchDepth finds the best move synchronously at the given depth.
func (e *Engine) SearchDepth(ctx context.Context, s *game.State, depth int) Result {
	r := NewSearcher(e.tt).Run(ctx, s, depth)
	logger.Debug("search finished", "move", r.Move, "score", ScoreToString(r.Score),
		"depth", r.Depth, "nodes", r.Nodes, "pruned", r.Pruned, "elapsed", r.Elapsed)
	return r
}

// Spawn starts a background search at the current difficulty.
func (e *Engine) Spawn(ctx context.Context, s *game.State) *Task {
	return spawn(ctx, NewSearcher(e.tt), s, e.Depth())
}

// Clear empties the transposition table.
func (e *Engine) Clear() {
	if e.tt != nil {
		e.tt.Clear()
	}
}

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score int) string {
	if score > MateScore-MaxPly {
		return fmt.Sprintf("mate in %d", (MateScore-score+1)/2)
	}
	if score < -MateScore+MaxPly {
		return fmt.Sprintf("mated in %d", (MateScore+score+1)/2)
	}
	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	return fmt.Sprintf("%s%d.%02d", sign, score/100, score%100)
}
