package ui

import "github.com/charmbracelet/lipgloss"

var (
	lightSquare = lipgloss.Color("#d7b98e")
	darkSquare  = lipgloss.Color("#a47449")

	squareStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000"))
	cursorStyle   = squareStyle.Background(lipgloss.Color("#e05c5c"))
	selectedStyle = squareStyle.Background(lipgloss.Color("#e8d24a"))
	targetStyle   = squareStyle.Background(lipgloss.Color("#7fb45a"))
	lastMoveStyle = squareStyle.Background(lipgloss.Color("#c9c37a"))

	coordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e8d24a"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#666666")).
			Padding(0, 1).
			MarginLeft(2)
	statusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e05c5c"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)
