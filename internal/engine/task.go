package engine

import (
	"context"

	"github.com/aspiringLich/oxide-gambit/internal/game"
)

// Task is a search running on its own goroutine over a private copy of the
// position. Poll never blocks.
type Task struct {
	result chan Result
	cancel context.CancelFunc
	done   bool
}

// SpawnSearch starts a background search without a transposition table.
func SpawnSearch(ctx context.Context, s *game.State, depth int) *Task {
	return spawn(ctx, NewSearcher(nil), s, depth)
}

func spawn(ctx context.Context, sr *Searcher, s *game.State, depth int) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		result: make(chan Result, 1),
		cancel: cancel,
	}
	root := s.Clone()
	logger.Debug("search started", "depth", depth, "fen", root.FEN())
	go func() {
		defer cancel()
		r := sr.Run(ctx, root, depth)
		if sr.Aborted() || ctx.Err() != nil {
			logger.Debug("search discarded", "nodes", r.Nodes)
			return
		}
		logger.Debug("search finished", "move", r.Move, "score", ScoreToString(r.Score),
			"nodes", r.Nodes, "pruned", r.Pruned, "elapsed", r.Elapsed)
		t.result <- r
	}()
	return t
}

// Poll returns the result once the search has finished. It reports false
// while the search is running, after cancellation, and after the result has
// already been taken.
func (t *Task) Poll() (Result, bool) {
	if t.done {
		return Result{}, false
	}
	select {
	case r := <-t.result:
		t.done = true
		return r, true
	default:
		return Result{}, false
	}
}

// Cancel stops the search. It does not wait for the goroutine to exit.
func (t *Task) Cancel() {
	t.cancel()
}
