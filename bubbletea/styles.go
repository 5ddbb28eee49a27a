package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/fwojciec/compass"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	UserMsg  lipgloss.Style
	Typing   lipgloss.Style
	Phase    lipgloss.Style
	PhaseDim lipgloss.Style
	Crisis   lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Panel    lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t compass.Theme) Styles {
	return Styles{
		UserMsg:  lipgloss.NewStyle().Foreground(ansiColor(t.UserMsg)).Bold(true),
		Typing:   lipgloss.NewStyle().Foreground(ansiColor(t.Typing)).Faint(true),
		Phase:    lipgloss.NewStyle().Foreground(ansiColor(t.Phase)).Bold(true),
		PhaseDim: lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Crisis:   lipgloss.NewStyle().Foreground(ansiColor(t.Crisis)).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Success:  lipgloss.NewStyle().Foreground(ansiColor(t.Success)),
		Muted:    lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:   lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
