package engine

import (
	"context"
	"time"

	"github.com/aspiringLich/oxide-gambit/internal/game"
)

// Search constants
const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = 128
)

// cancellation is checked every this many nodes
const pollInterval = 1024

// Result is the outcome of a search.
type Result struct {
	Move    game.Move
	Score   int
	Depth   int
	Nodes   uint64
	Pruned  uint64
	Elapsed time.Duration
}

// Searcher runs a negamax alpha-beta search. It is not safe for concurrent
// use; the transposition table it probes is.
type Searcher struct {
	tt      *TranspositionTable
	ctx     context.Context
	nodes   uint64
	pruned  uint64
	aborted bool
}

// NewSearcher creates a searcher. tt may be nil to search without a
// transposition table.
func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{tt: tt}
}

// Run searches the position to the given depth and returns the best move
// for the side to move. The caller's state is never modified. A cancelled
// context ends the search early; the partial result is then meaningless.
func (sr *Searcher) Run(ctx context.Context, s *game.State, depth int) Result {
	start := time.Now()
	sr.ctx = ctx
	sr.nodes, sr.pruned, sr.aborted = 0, 0, false
	if depth < 1 {
		depth = 1
	}
	if sr.tt != nil {
		sr.tt.NewSearch()
	}

	root := s.Clone()
	moves := root.LegalMoves()
	if len(moves) == 0 {
		return Result{Move: game.NoMove, Score: Terminal(root, 0), Depth: depth, Elapsed: time.Since(start)}
	}
	moves = OrderMoves(root, moves, game.NoMove)

	best := game.NoMove
	alpha, beta := -Infinity, Infinity
	for _, m := range moves {
		score := -sr.negamax(root.Play(m), depth-1, 1, -beta, -alpha)
		if sr.aborted {
			break
		}
		if score > alpha {
			alpha = score
			best = m
		}
	}
	if best.IsNone() {
		best = moves[0]
	}
	return Result{
		Move:    best,
		Score:   alpha,
		Depth:   depth,
		Nodes:   sr.nodes,
		Pruned:  sr.pruned,
		Elapsed: time.Since(start),
	}
}

// Aborted reports whether the last Run stopped on cancellation.
func (sr *Searcher) Aborted() bool {
	return sr.aborted
}

func (sr *Searcher) negamax(s *game.State, depth, ply, alpha, beta int) int {
	sr.nodes++
	if sr.nodes%pollInterval == 0 && sr.ctx.Err() != nil {
		sr.aborted = true
	}
	if sr.aborted {
		return 0
	}

	origAlpha := alpha
	hashMove := game.NoMove
	if sr.tt != nil {
		if e, ok := sr.tt.Probe(s.Hash(), s.Key()); ok {
			hashMove = e.Move
			if int(e.Depth) >= depth {
				score := AdjustScoreFromTT(int(e.Score), ply)
				switch {
				case e.Flag == TTExact,
					e.Flag == TTLowerBound && score >= beta,
					e.Flag == TTUpperBound && score <= alpha:
					return score
				}
			}
		}
	}

	if depth == 0 {
		if !s.HasLegalMove() {
			return Terminal(s, ply)
		}
		return Evaluate(s)
	}
	moves := s.LegalMoves()
	if len(moves) == 0 {
		return Terminal(s, ply)
	}
	moves = OrderMoves(s, moves, hashMove)

	best, bestMove := -Infinity, game.NoMove
	for i, m := range moves {
		score := -sr.negamax(s.Play(m), depth-1, ply+1, -beta, -alpha)
		if sr.aborted {
			return 0
		}
		if score > best {
			best, bestMove = score, m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			sr.pruned += uint64(len(moves) - i - 1)
			break
		}
	}

	if sr.tt != nil {
		flag := TTExact
		switch {
		case best <= origAlpha:
			flag = TTUpperBound
		case best >= beta:
			flag = TTLowerBound
		}
		sr.tt.Store(s.Hash(), s.Key(), depth, AdjustScoreToTT(best, ply), flag, bestMove)
	}
	return best
}

// PlainMinimax searches every node without pruning or transposition table.
// It exists to check that alpha-beta picks the same move and score.
func PlainMinimax(s *game.State, depth int) Result {
	if depth < 1 {
		depth = 1
	}
	var nodes uint64
	var visit func(s *game.State, depth, ply int) int
	visit = func(s *game.State, depth, ply int) int {
		nodes++
		moves := s.LegalMoves()
		if len(moves) == 0 {
			return Terminal(s, ply)
		}
		if depth == 0 {
			return Evaluate(s)
		}
		best := -Infinity
		for _, m := range OrderMoves(s, moves, game.NoMove) {
			if score := -visit(s.Play(m), depth-1, ply+1); score > best {
				best = score
			}
		}
		return best
	}

	root := s.Clone()
	moves := root.LegalMoves()
	if len(moves) == 0 {
		return Result{Move: game.NoMove, Score: Terminal(root, 0), Depth: depth}
	}
	best, bestScore := game.NoMove, -Infinity
	for _, m := range OrderMoves(root, moves, game.NoMove) {
		if score := -visit(root.Play(m), depth-1, 1); score > bestScore {
			best, bestScore = m, score
		}
	}
	return Result{Move: best, Score: bestScore, Depth: depth, Nodes: nodes}
}
