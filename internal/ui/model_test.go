package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aspiringLich/oxide-gambit/internal/board"
	"github.com/aspiringLich/oxide-gambit/internal/engine"
	"github.com/aspiringLich/oxide-gambit/internal/play"
	"github.com/aspiringLich/oxide-gambit/internal/storage"
	tea "github.com/charmbracelet/bubbletea"
)

type prefsRecorder struct {
	saved []storage.Preferences
}

func (p *prefsRecorder) SavePreferences(prefs *storage.Preferences) error {
	p.saved = append(p.saved, *prefs)
	return nil
}

func newModel(t *testing.T, mode play.Mode, human board.Team) (Model, *prefsRecorder) {
	t.Helper()
	e := engine.NewEngine(1)
	e.SetDifficulty(engine.Easy)
	s, err := play.NewSession(context.Background(), play.Config{Engine: e, Mode: mode, Human: human})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	t.Cleanup(s.Close)
	store := &prefsRecorder{}
	return New(s, store, storage.DefaultPreferences()), store
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEscape}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestCursorMovement(t *testing.T) {
	tests := []struct {
		name  string
		human board.Team
		keys  []string
		want  board.Square
	}{
		{"Up", board.White, []string{"up", "up"}, board.E4},
		{"Vim", board.White, []string{"h", "k"}, board.D3},
		{"StopsAtEdge", board.White, []string{"down", "down", "down"}, board.E1},
		{"Flipped", board.Black, []string{"up", "left"}, board.F6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newModel(t, play.HumanVsHuman, tt.human)
			m = press(t, m, tt.keys...)
			if m.cursor != tt.want {
				t.Errorf("cursor %v, want %v", m.cursor, tt.want)
			}
		})
	}
}

func TestSelectAndMove(t *testing.T) {
	m, _ := newModel(t, play.HumanVsHuman, board.White)

	m = press(t, m, "enter")
	if sel, _ := m.Session().Selected(); sel != board.E2 {
		t.Fatalf("selected %v, want e2", sel)
	}
	m = press(t, m, "up", "up", "enter")
	if got := m.Session().LastMove().String(); got != "e2e4" {
		t.Fatalf("last move %s, want e2e4", got)
	}

	// enter on the selected square deselects
	m = press(t, m, "up", "up", "up", "enter", "enter")
	if sel, _ := m.Session().Selected(); sel != board.NoSquare {
		t.Errorf("selection %v not cleared", sel)
	}
}

func TestIllegalTargetShowsMessage(t *testing.T) {
	m, _ := newModel(t, play.HumanVsHuman, board.White)
	m = press(t, m, "enter", "up", "up", "up", "enter")
	if !strings.Contains(m.message, "e2e5") {
		t.Errorf("message %q", m.message)
	}
	if len(m.Session().History()) != 0 {
		t.Errorf("illegal move was played")
	}
}

func TestPreferencesSaved(t *testing.T) {
	m, store := newModel(t, play.HumanVsHuman, board.White)
	m = press(t, m, "d", "t", "s")
	if len(store.saved) != 3 {
		t.Fatalf("saved %d times, want 3", len(store.saved))
	}
	last := store.saved[2]
	if last.Difficulty != engine.Medium || last.ShowHints || last.Team != board.Black {
		t.Errorf("saved %+v", last)
	}
	if !m.flipped {
		t.Errorf("board not flipped after switching to black")
	}
}

func TestPollPlaysComputerMove(t *testing.T) {
	m, _ := newModel(t, play.HumanVsComputer, board.White)
	m = press(t, m, "enter", "up", "up", "enter")
	if !m.Session().Thinking() {
		t.Fatalf("computer not thinking after e2e4")
	}
	deadline := time.Now().Add(30 * time.Second)
	for m.Session().Thinking() && time.Now().Before(deadline) {
		next, cmd := m.Update(pollMsg{})
		m = next.(Model)
		if cmd == nil {
			t.Fatalf("poll did not reschedule")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if len(m.Session().History()) != 2 {
		t.Errorf("history %v, want the computer's reply", m.Session().History())
	}
}

func TestView(t *testing.T) {
	m, _ := newModel(t, play.HumanVsHuman, board.White)
	m = press(t, m, "enter", "up", "up", "enter")
	v := m.View()
	for _, want := range []string{"oxide-gambit", "GAME INFO", "Turn:       Black", "1. e2e4", "a  b  c"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = press(t, m, "f")
	if !strings.Contains(m.View(), "h  g  f") {
		t.Errorf("flipped view does not reverse files")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t, play.HumanVsHuman, board.White)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q did not quit")
	}
}
