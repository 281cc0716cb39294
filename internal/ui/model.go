// Package ui is the terminal front end: a bubbletea model that renders a
// play.Session and turns key presses into its Select and Move events.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/aspiringLich/oxide-gambit/internal/board"
	"github.com/aspiringLich/oxide-gambit/internal/engine"
	"github.com/aspiringLich/oxide-gambit/internal/game"
	"github.com/aspiringLich/oxide-gambit/internal/play"
	"github.com/aspiringLich/oxide-gambit/internal/storage"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var logger = log.WithPrefix("ui")

// PollInterval is how often the model checks the background search.
const PollInterval = 50 * time.Millisecond

type pollMsg time.Time

// PreferenceStore persists preference changes. *storage.Storage implements
// it.
type PreferenceStore interface {
	SavePreferences(prefs *storage.Preferences) error
}

// Model is the bubbletea model for one game.
type Model struct {
	session *play.Session
	store   PreferenceStore
	prefs   *storage.Preferences

	cursor  board.Square
	flipped bool
	message string
	title   string
}

// New creates a model over session. store may be nil, in which case
// preference changes are not saved.
func New(session *play.Session, store PreferenceStore, prefs *storage.Preferences) Model {
	if prefs == nil {
		prefs = storage.DefaultPreferences()
	}
	m := Model{
		session: session,
		store:   store,
		prefs:   prefs,
		cursor:  board.E2,
		flipped: session.Human() == board.Black,
		title:   "oxide-gambit",
	}
	if m.flipped {
		m.cursor = board.E7
	}
	return m
}

// WithTitle sets the heading shown above the board.
func (m Model) WithTitle(title string) Model {
	m.title = title
	return m
}

// Session returns the game the model renders.
func (m Model) Session() *play.Session { return m.session }

func poll() tea.Cmd {
	return tea.Tick(PollInterval, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return poll()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pollMsg:
		if m.session.Poll() {
			m.message = ""
		}
		return m, poll()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.session.Close()
			return m, tea.Quit
		case tea.KeyEscape:
			m.session.Select(board.NoSquare)
			return m, nil
		}

		switch msg.String() {
		case "q":
			m.session.Close()
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(0, 1)
		case "down", "j":
			m.moveCursor(0, -1)
		case "left", "h":
			m.moveCursor(-1, 0)
		case "right", "l":
			m.moveCursor(1, 0)
		case "enter", " ":
			m.activate()
		case "n":
			if err := m.session.Reset(""); err != nil {
				m.message = err.Error()
			} else {
				m.message = "new game"
			}
		case "u":
			if !m.session.Undo() {
				m.message = "nothing to undo"
			} else {
				m.message = ""
			}
		case "d":
			m.cycleDifficulty()
		case "s":
			m.switchSides()
		case "f":
			m.flipped = !m.flipped
		case "t":
			m.prefs.ShowHints = !m.prefs.ShowHints
			m.savePreferences()
		}
	}
	return m, nil
}

// moveCursor steps the cursor in board orientation as seen on screen.
func (m *Model) moveCursor(dx, dy int) {
	if m.flipped {
		dx, dy = -dx, -dy
	}
	if sq, ok := m.cursor.Offset(dx, dy); ok {
		m.cursor = sq
	}
}

func (m *Model) activate() {
	s := m.session
	if s.Status().IsOver() {
		m.message = "game over: press n for a new game"
		return
	}
	if !s.HumanToMove() {
		m.message = "computer is thinking"
		return
	}
	selected, targets := s.Selected()
	switch {
	case selected == m.cursor:
		s.Select(board.NoSquare)
		m.message = ""
	case selected != board.NoSquare && targets.Has(m.cursor):
		s.Move(selected, m.cursor)
		m.message = ""
	default:
		if !s.Select(m.cursor) && selected != board.NoSquare {
			m.message = fmt.Sprintf("%s%s is not a legal move", selected, m.cursor)
		}
	}
}

func (m *Model) cycleDifficulty() {
	d := (m.session.Engine().Difficulty() + 1) % engine.Difficulty(len(engine.DifficultySettings))
	m.session.SetDifficulty(d)
	m.prefs.Difficulty = d
	m.message = "difficulty: " + d.String()
	m.savePreferences()
}

func (m *Model) switchSides() {
	t := m.session.Human().Other()
	m.session.SetHuman(t)
	m.flipped = t == board.Black
	m.prefs.Team = t
	m.message = "you play " + t.String()
	m.savePreferences()
}

func (m *Model) savePreferences() {
	if m.store == nil {
		return
	}
	if err := m.store.SavePreferences(m.prefs); err != nil {
		logger.Warn("failed to save preferences", "err", err)
	}
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(m.title))
	s.WriteString("\n\n")
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderBoard(), m.renderInfo()))
	s.WriteString("\n")
	if m.message != "" {
		s.WriteString(m.message)
		s.WriteString("\n")
	}
	s.WriteString(helpStyle.Render("arrows/hjkl move • enter select/move • esc deselect • u undo • n new • d difficulty • s switch sides • f flip • t hints • q quit"))
	s.WriteString("\n")
	return s.String()
}

func (m Model) renderBoard() string {
	st := m.session.State()
	selected, targets := m.session.Selected()
	last := m.session.LastMove()
	if !m.prefs.ShowHints {
		targets = board.EmptyBB
	}

	files := "   a  b  c  d  e  f  g  h"
	if m.flipped {
		files = "   h  g  f  e  d  c  b  a"
	}

	var b strings.Builder
	b.WriteString(coordStyle.Render(files))
	b.WriteString("\n")
	for row := 0; row < 8; row++ {
		y := 7 - row
		if m.flipped {
			y = row
		}
		b.WriteString(coordStyle.Render(fmt.Sprintf("%d ", y+1)))
		for col := 0; col < 8; col++ {
			x := col
			if m.flipped {
				x = 7 - col
			}
			sq := board.MustXY(x, y)

			cell := " "
			if p, ok := st.PieceAt(sq); ok {
				cell = string(st.Catalog().DisplayRune(p.Kind, p.Team))
			}

			style := squareStyle.Background(darkSquare)
			if (x+y)%2 == 1 {
				style = squareStyle.Background(lightSquare)
			}
			switch {
			case sq == m.cursor:
				style = cursorStyle
			case sq == selected:
				style = selectedStyle
			case targets.Has(sq):
				style = targetStyle
			case !last.IsNone() && (sq == last.From || sq == last.To):
				style = lastMoveStyle
			}
			b.WriteString(style.Render(" " + cell + " "))
		}
		b.WriteString(coordStyle.Render(fmt.Sprintf(" %d", y+1)))
		b.WriteString("\n")
	}
	b.WriteString(coordStyle.Render(files))
	return b.String()
}

func (m Model) renderInfo() string {
	s := m.session
	st := s.State()

	lines := []string{
		titleStyle.Render("GAME INFO"),
		fmt.Sprintf("Turn:       %s", st.Turn()),
		fmt.Sprintf("You play:   %s", s.Human()),
		fmt.Sprintf("Difficulty: %s", s.Engine().Difficulty()),
		fmt.Sprintf("Cursor:     %s", m.cursor),
	}
	if p, ok := st.PieceAt(m.cursor); ok {
		lines = append(lines, fmt.Sprintf("Piece:      %s %s", p.Team, st.Catalog().Name(p.Kind)))
	} else {
		lines = append(lines, "Piece:      -")
	}
	lines = append(lines, "")

	switch {
	case s.Status().IsOver():
		lines = append(lines, statusStyle.Render(gameOverText(s)))
	case s.Thinking():
		lines = append(lines, "Computer is thinking...")
	case st.InCheck():
		lines = append(lines, statusStyle.Render("Check!"))
	}

	if h := s.History(); len(h) > 0 {
		lines = append(lines, "", "Moves:")
		start := 0
		if len(h) > 12 {
			start = len(h) - 12
		}
		// pairs of plies, numbered from the start of the game
		for i := start - start%2; i < len(h); i += 2 {
			line := fmt.Sprintf("%3d. %s", i/2+1, h[i])
			if i+1 < len(h) {
				line += "  " + h[i+1].String()
			}
			lines = append(lines, line)
		}
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func gameOverText(s *play.Session) string {
	st := s.Status()
	if st == game.Checkmate {
		return fmt.Sprintf("Checkmate: %s wins", s.State().Turn().Other())
	}
	return strings.ToUpper(st.String()[:1]) + st.String()[1:]
}
