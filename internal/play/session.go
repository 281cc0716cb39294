// Package play runs one game between a human and the engine: it owns the
// authoritative position, turns Select and Move events into state changes,
// and drives the background search for the computer's replies.
package play

import (
	"context"
	"fmt"
	"time"

	"github.com/aspiringLich/oxide-gambit/internal/board"
	"github.com/aspiringLich/oxide-gambit/internal/engine"
	"github.com/aspiringLich/oxide-gambit/internal/game"
	"github.com/aspiringLich/oxide-gambit/internal/storage"
	"github.com/charmbracelet/log"
)

var logger = log.WithPrefix("play")

// Mode selects who plays the two sides.
type Mode int

const (
	HumanVsComputer Mode = iota
	HumanVsHuman
)

// Recorder stores finished games. *storage.Storage implements it.
type Recorder interface {
	SaveGame(rec *storage.GameRecord) error
}

// Config configures a new Session.
type Config struct {
	Catalog *board.Catalog
	Engine  *engine.Engine
	// FEN is the start position; empty means the standard start.
	FEN      string
	Mode     Mode
	Human    board.Team
	Recorder Recorder
}

// Session is the foreground game loop. It is not safe for concurrent use;
// the only concurrency is the background search task it owns.
type Session struct {
	ctx      context.Context
	catalog  *board.Catalog
	engine   *engine.Engine
	recorder Recorder

	mode  Mode
	human board.Team

	startFEN  string
	startTurn board.Team
	state     *game.State
	history  []game.Move
	hashes   []uint64
	lastMove game.Move
	status   game.Status
	started  time.Time
	recorded bool

	selected board.Square
	targets  board.Bitboard

	task *engine.Task
}

// NewSession starts a game. If the computer is to move first its search
// starts immediately.
func NewSession(ctx context.Context, cfg Config) (*Session, error) {
	if cfg.Catalog == nil {
		cfg.Catalog = board.NewCatalog()
	}
	if cfg.Engine == nil {
		cfg.Engine = engine.NewEngine(0)
	}
	s := &Session{
		ctx:      ctx,
		catalog:  cfg.Catalog,
		engine:   cfg.Engine,
		recorder: cfg.Recorder,
		mode:     cfg.Mode,
		human:    cfg.Human,
	}
	if err := s.Reset(cfg.FEN); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset abandons the current game and starts a new one from fen.
func (s *Session) Reset(fen string) error {
	if fen == "" {
		fen = board.StartFEN
	}
	st, err := game.FromFEN(s.catalog, fen)
	if err != nil {
		return fmt.Errorf("new game: %w", err)
	}
	s.dropTask()
	s.startFEN = st.FEN()
	s.startTurn = st.Turn()
	s.state = st
	s.history = nil
	s.hashes = []uint64{st.Hash()}
	s.lastMove = game.NoMove
	s.started = time.Now()
	s.recorded = false
	s.clearSelection()
	s.updateStatus()
	s.maybeStartSearch()
	return nil
}

// State returns the current position. Callers must not mutate it.
func (s *Session) State() *game.State { return s.state }

// History returns the moves played so far.
func (s *Session) History() []game.Move { return s.history }

// LastMove returns the most recent move, or NoMove.
func (s *Session) LastMove() game.Move { return s.lastMove }

// Status returns the game status, including threefold repetition.
func (s *Session) Status() game.Status { return s.status }

// Human returns the side the human plays.
func (s *Session) Human() board.Team { return s.human }

// Mode returns who plays the two sides.
func (s *Session) Mode() Mode { return s.mode }

// Engine returns the engine playing the computer side.
func (s *Session) Engine() *engine.Engine { return s.engine }

// Selected returns the selected square and its legal targets.
func (s *Session) Selected() (board.Square, board.Bitboard) {
	return s.selected, s.targets
}

// Thinking reports whether a search for the computer's move is running.
func (s *Session) Thinking() bool { return s.task != nil }

// HumanToMove reports whether the side to move takes input from the view.
func (s *Session) HumanToMove() bool {
	if s.status.IsOver() {
		return false
	}
	return s.mode == HumanVsHuman || s.state.Turn() == s.human
}

// Select is the Select event. It selects a piece of the side to move and
// reports whether a piece is now selected; anything else clears the
// selection.
func (s *Session) Select(sq board.Square) bool {
	s.clearSelection()
	if !s.HumanToMove() {
		return false
	}
	p, ok := s.state.PieceAt(sq)
	if !ok || p.Team != s.state.Turn() {
		return false
	}
	s.selected = sq
	s.targets = s.state.LegalTargets(s.state.SlotAt(sq))
	return true
}

// Move is the Move event. Illegal requests return false and leave the
// session unchanged. A pawn reaching the last rank promotes to a queen.
func (s *Session) Move(from, to board.Square) bool {
	if !s.HumanToMove() {
		return false
	}
	m, ok := s.state.MoveFromTo(from, to)
	if !ok {
		return false
	}
	s.apply(m)
	return true
}

// Play applies a fully specified move from the view, such as an
// under-promotion.
func (s *Session) Play(m game.Move) bool {
	if !s.HumanToMove() || !s.state.IsLegal(m) {
		return false
	}
	s.apply(m)
	return true
}

// Click combines the two events the way a board view uses them: a click on a
// legal target of the selected piece moves it, any other click selects.
func (s *Session) Click(sq board.Square) bool {
	if s.selected != board.NoSquare && s.targets.Has(sq) {
		return s.Move(s.selected, sq)
	}
	return s.Select(sq)
}

// Poll checks the background search without blocking and plays its move
// once it is ready. It reports whether a move was played.
func (s *Session) Poll() bool {
	if s.task == nil {
		return false
	}
	r, ok := s.task.Poll()
	if !ok {
		return false
	}
	s.task = nil
	if r.Move.IsNone() || !s.state.IsLegal(r.Move) {
		logger.Warn("discarding engine move", "move", r.Move, "fen", s.state.FEN())
		return false
	}
	s.apply(r.Move)
	return true
}

// Wait blocks until the computer has moved, for callers without a frame
// loop. It reports false if there was no search or ctx ended first.
func (s *Session) Wait(ctx context.Context) bool {
	tick := time.NewTicker(5 * time.Millisecond)
	defer tick.Stop()
	for s.task != nil {
		if s.Poll() {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-tick.C:
		}
	}
	return false
}

// Undo takes back moves until the human is to move again, restarting from
// the start position and replaying the rest of the history.
func (s *Session) Undo() bool {
	n := len(s.history)
	if n == 0 {
		return false
	}
	keep := n - 1
	if s.mode == HumanVsComputer {
		// unwind to the last position where the human was to move
		for keep > 0 && s.turnAfter(keep) != s.human {
			keep--
		}
		if s.turnAfter(keep) != s.human {
			return false
		}
	}
	moves := append([]game.Move(nil), s.history[:keep]...)
	if err := s.replay(moves); err != nil {
		logger.Error("undo failed", "err", err)
		return false
	}
	return true
}

func (s *Session) turnAfter(plies int) board.Team {
	if plies%2 == 0 {
		return s.startTurn
	}
	return s.startTurn.Other()
}

func (s *Session) replay(moves []game.Move) error {
	s.dropTask()
	st, err := game.FromFEN(s.catalog, s.startFEN)
	if err != nil {
		return err
	}
	s.state = st
	s.history = nil
	s.hashes = []uint64{st.Hash()}
	s.lastMove = game.NoMove
	s.recorded = false
	s.clearSelection()
	for _, m := range moves {
		if !s.state.IsLegal(m) {
			return fmt.Errorf("replay %s: illegal in %s", m, s.state.FEN())
		}
		s.push(m)
	}
	s.updateStatus()
	s.maybeStartSearch()
	return nil
}

// SetDifficulty changes the engine strength. A running search is replaced.
func (s *Session) SetDifficulty(d engine.Difficulty) {
	s.engine.SetDifficulty(d)
	if s.task != nil {
		s.dropTask()
		s.maybeStartSearch()
	}
}

// SetHuman changes the side the human plays; the computer starts thinking
// if it is now to move.
func (s *Session) SetHuman(t board.Team) {
	s.human = t
	s.clearSelection()
	s.dropTask()
	s.maybeStartSearch()
}

// SetMode switches between playing the computer and two humans.
func (s *Session) SetMode(m Mode) {
	s.mode = m
	s.dropTask()
	s.maybeStartSearch()
}

// Hint searches the current position synchronously for the side to move.
func (s *Session) Hint(ctx context.Context) engine.Result {
	return s.engine.SearchDepth(ctx, s.state, engine.DifficultySettings[engine.Easy].Depth)
}

// Close cancels any running search.
func (s *Session) Close() {
	s.dropTask()
}

func (s *Session) apply(m game.Move) {
	s.push(m)
	s.clearSelection()
	s.updateStatus()
	if s.status.IsOver() {
		logger.Info("game over", "status", s.status, "moves", len(s.history))
		s.record()
		return
	}
	s.maybeStartSearch()
}

func (s *Session) push(m game.Move) {
	s.state.MakeMove(m)
	s.history = append(s.history, m)
	s.hashes = append(s.hashes, s.state.Hash())
	s.lastMove = m
}

func (s *Session) updateStatus() {
	s.status = s.state.Status()
	if s.status == game.Ongoing && s.repeated() {
		s.status = game.Repetition
	}
}

// repeated reports whether the current position occurred three times. Only
// positions since the last irreversible move can repeat.
func (s *Session) repeated() bool {
	cur := s.hashes[len(s.hashes)-1]
	count := 0
	for i := len(s.hashes) - 1; i >= 0 && i >= len(s.hashes)-1-s.state.HalfMove(); i-- {
		if s.hashes[i] == cur {
			count++
		}
	}
	return count >= 3
}

func (s *Session) maybeStartSearch() {
	if s.task != nil || s.status.IsOver() || s.mode != HumanVsComputer || s.state.Turn() == s.human {
		return
	}
	s.task = s.engine.Spawn(s.ctx, s.state)
}

// dropTask cancels the outstanding search without waiting for it.
func (s *Session) dropTask() {
	if s.task != nil {
		s.task.Cancel()
		s.task = nil
	}
}

func (s *Session) clearSelection() {
	s.selected = board.NoSquare
	s.targets = board.EmptyBB
}

func (s *Session) record() {
	if s.recorder == nil || s.recorded {
		return
	}
	rec := &storage.GameRecord{
		StartFEN:   s.startFEN,
		Result:     storage.ResultFor(s.status == game.Checkmate, s.state.Turn()),
		Reason:     s.status.String(),
		Human:      s.human,
		Difficulty: s.engine.Difficulty(),
		Started:    s.started,
		Finished:   time.Now(),
	}
	for _, m := range s.history {
		rec.Moves = append(rec.Moves, m.String())
	}
	if err := s.recorder.SaveGame(rec); err != nil {
		logger.Error("failed to record game", "err", err)
		return
	}
	s.recorded = true
	logger.Debug("game recorded", "id", rec.ID, "result", rec.Result)
}
