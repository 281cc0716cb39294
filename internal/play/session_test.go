package play

import (
	"context"
	"testing"
	"time"

	"github.com/aspiringLich/oxide-gambit/internal/board"
	"github.com/aspiringLich/oxide-gambit/internal/engine"
	"github.com/aspiringLich/oxide-gambit/internal/game"
	"github.com/aspiringLich/oxide-gambit/internal/storage"
)

type fakeRecorder struct {
	games []*storage.GameRecord
}

func (f *fakeRecorder) SaveGame(rec *storage.GameRecord) error {
	rec.ID = uint64(len(f.games) + 1)
	f.games = append(f.games, rec)
	return nil
}

func newSession(t *testing.T, cfg Config) *Session {
	t.Helper()
	if cfg.Engine == nil {
		cfg.Engine = engine.NewEngine(1)
		cfg.Engine.SetDifficulty(engine.Easy)
	}
	s, err := NewSession(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func sq(t *testing.T, name string) board.Square {
	t.Helper()
	s, err := board.ParseSquare(name)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", name, err)
	}
	return s
}

func play(t *testing.T, s *Session, moves ...string) {
	t.Helper()
	for _, mv := range moves {
		if !s.Move(sq(t, mv[:2]), sq(t, mv[2:4])) {
			t.Fatalf("Move %s rejected in %s", mv, s.State().FEN())
		}
	}
}

func waitForReply(t *testing.T, s *Session) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if !s.Wait(ctx) {
		t.Fatalf("engine did not reply in %s", s.State().FEN())
	}
}

func TestSelect(t *testing.T) {
	s := newSession(t, Config{Mode: HumanVsHuman})

	if !s.Select(sq(t, "e2")) {
		t.Fatalf("Select(e2) = false")
	}
	selected, targets := s.Selected()
	if selected != sq(t, "e2") {
		t.Errorf("selected %v, want e2", selected)
	}
	want := board.SquareBB(sq(t, "e3")).With(sq(t, "e4"))
	if targets != want {
		t.Errorf("targets %v, want %v", targets, want)
	}

	for _, name := range []string{"e7", "e4"} {
		if s.Select(sq(t, name)) {
			t.Errorf("Select(%s) = true", name)
		}
		if selected, _ := s.Selected(); selected != board.NoSquare {
			t.Errorf("Select(%s) left %v selected", name, selected)
		}
	}
}

func TestMoveRejectsIllegal(t *testing.T) {
	s := newSession(t, Config{Mode: HumanVsHuman})
	before := s.State().FEN()

	tests := []struct{ from, to string }{
		{"e2", "e5"},
		{"e7", "e5"},
		{"e1", "e2"},
		{"a3", "a4"},
	}
	for _, tt := range tests {
		if s.Move(sq(t, tt.from), sq(t, tt.to)) {
			t.Errorf("Move(%s, %s) = true", tt.from, tt.to)
		}
	}
	if s.State().FEN() != before || len(s.History()) != 0 {
		t.Errorf("illegal moves changed the session: %s", s.State().FEN())
	}
}

func TestClick(t *testing.T) {
	s := newSession(t, Config{Mode: HumanVsHuman})
	if !s.Click(sq(t, "g1")) {
		t.Fatalf("Click(g1) did not select")
	}
	if !s.Click(sq(t, "f3")) {
		t.Fatalf("Click(f3) did not move")
	}
	if got := s.LastMove().String(); got != "g1f3" {
		t.Errorf("last move %s, want g1f3", got)
	}
	if s.State().Turn() != board.Black {
		t.Errorf("expected black to move")
	}
}

func TestPromotionDefaultsToQueen(t *testing.T) {
	s := newSession(t, Config{Mode: HumanVsHuman, FEN: "8/4P1k1/8/8/8/8/8/4K3 w - - 0 1"})
	play(t, s, "e7e8")
	p, ok := s.State().PieceAt(sq(t, "e8"))
	if !ok || p.Kind != board.Queen {
		t.Errorf("e8 holds %+v, want a queen", p)
	}

	s2 := newSession(t, Config{Mode: HumanVsHuman, FEN: "8/4P1k1/8/8/8/8/8/4K3 w - - 0 1"})
	m, _ := game.ParseMove("e7e8n")
	if !s2.Play(m) {
		t.Fatalf("Play(e7e8n) rejected")
	}
	if p, _ := s2.State().PieceAt(sq(t, "e8")); p.Kind != board.Knight {
		t.Errorf("e8 holds %v, want a knight", p.Kind)
	}
}

func TestComputerReplies(t *testing.T) {
	s := newSession(t, Config{Mode: HumanVsComputer, Human: board.White})
	if s.Thinking() {
		t.Fatalf("computer thinking on the human's turn")
	}
	play(t, s, "e2e4")
	if !s.Thinking() {
		t.Fatalf("no search started after the human moved")
	}
	if s.Move(sq(t, "d2"), sq(t, "d4")) {
		t.Errorf("human moved during the computer's turn")
	}
	waitForReply(t, s)
	if s.Thinking() {
		t.Errorf("still thinking after the reply")
	}
	if len(s.History()) != 2 || s.State().Turn() != board.White {
		t.Errorf("history %v, turn %v", s.History(), s.State().Turn())
	}
}

func TestComputerMovesFirstAsWhite(t *testing.T) {
	s := newSession(t, Config{Mode: HumanVsComputer, Human: board.Black})
	if !s.Thinking() {
		t.Fatalf("computer should start thinking as white")
	}
	waitForReply(t, s)
	if s.State().Turn() != board.Black {
		t.Errorf("expected black to move after the computer's opening move")
	}
}

func TestDropAndReplace(t *testing.T) {
	s := newSession(t, Config{Mode: HumanVsComputer, Human: board.White})
	play(t, s, "d2d4")
	first := s.task

	s.SetDifficulty(engine.Easy)
	if s.task == first || s.task == nil {
		t.Fatalf("search was not replaced")
	}
	waitForReply(t, s)
	if len(s.History()) != 2 {
		t.Errorf("history %v, want exactly one reply", s.History())
	}

	play(t, s, "c2c4")
	if err := s.Reset(""); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if s.Thinking() || len(s.History()) != 0 {
		t.Errorf("Reset kept the search or history")
	}
	if s.Poll() {
		t.Errorf("Poll after Reset played a move")
	}
}

func TestUndo(t *testing.T) {
	t.Run("HumanVsHuman", func(t *testing.T) {
		s := newSession(t, Config{Mode: HumanVsHuman})
		play(t, s, "e2e4", "e7e5")
		if !s.Undo() {
			t.Fatalf("Undo failed")
		}
		if got := s.State().FEN(); got != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1" {
			t.Errorf("after undo: %s", got)
		}
	})

	t.Run("HumanVsComputer", func(t *testing.T) {
		s := newSession(t, Config{Mode: HumanVsComputer, Human: board.White})
		play(t, s, "e2e4")
		waitForReply(t, s)
		if !s.Undo() {
			t.Fatalf("Undo failed")
		}
		if len(s.History()) != 0 || s.State().FEN() != board.StartFEN || s.Thinking() {
			t.Errorf("after undo: %v %s thinking=%v", s.History(), s.State().FEN(), s.Thinking())
		}
		if s.Undo() {
			t.Errorf("Undo with no history succeeded")
		}
	})
}

func TestGameOverIsRecorded(t *testing.T) {
	rec := &fakeRecorder{}
	s := newSession(t, Config{Mode: HumanVsHuman, Recorder: rec})
	play(t, s, "f2f3", "e7e5", "g2g4", "d8h4")

	if s.Status() != game.Checkmate {
		t.Fatalf("status %v, want checkmate", s.Status())
	}
	if s.HumanToMove() || s.Select(sq(t, "e1")) {
		t.Errorf("input accepted after the game ended")
	}
	if len(rec.games) != 1 {
		t.Fatalf("recorded %d games, want 1", len(rec.games))
	}
	g := rec.games[0]
	if g.Result != storage.BlackWins || len(g.Moves) != 4 || g.Moves[3] != "d8h4" {
		t.Errorf("record %+v", g)
	}
	if _, err := g.PGN(); err != nil {
		t.Errorf("recorded game does not export: %v", err)
	}
}

func TestRepetition(t *testing.T) {
	rec := &fakeRecorder{}
	s := newSession(t, Config{Mode: HumanVsHuman, Recorder: rec})
	play(t, s, "g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1")
	if s.Status() != game.Ongoing {
		t.Fatalf("status %v before the third occurrence", s.Status())
	}
	play(t, s, "f6g8")
	if s.Status() != game.Repetition {
		t.Fatalf("status %v, want repetition", s.Status())
	}
	if len(rec.games) != 1 || rec.games[0].Result != storage.DrawResult {
		t.Errorf("recorded %+v", rec.games)
	}
	if _, err := rec.games[0].PGN(); err != nil {
		t.Errorf("repetition draw does not export: %v", err)
	}
}

func TestRecordsToStorage(t *testing.T) {
	store, err := storage.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	defer store.Close()

	s := newSession(t, Config{Mode: HumanVsHuman, Recorder: store, FEN: "6k1/5ppp/8/8/8/8/8/3R2K1 w - - 0 1"})
	play(t, s, "d1d8")

	games, err := store.ListGames()
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(games) != 1 || games[0].Result != storage.WhiteWins {
		t.Fatalf("stored %+v", games)
	}
}

func TestNewSessionRejectsBadFEN(t *testing.T) {
	if _, err := NewSession(context.Background(), Config{FEN: "not a fen"}); err == nil {
		t.Errorf("expected an error")
	}
}
