package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fwojciec/compass"
)

// RitualSelector lists the closure rituals offered when a memory session
// enters the release phase. Purely presentational: the choice arrives via
// the /ritual command and the root model hides the selector the moment a
// ritual is chosen.
type RitualSelector struct {
	styles Styles
}

// NewRitualSelector creates a RitualSelector.
func NewRitualSelector(styles Styles) RitualSelector {
	return RitualSelector{styles: styles}
}

// View renders the selector panel.
func (s RitualSelector) View(width int) string {
	var sb strings.Builder
	sb.WriteString(s.styles.Accent.Render("Choose how to let this memory go"))
	sb.WriteString("\n\n")
	for _, r := range compass.Rituals {
		info, ok := r.Info()
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s %s", info.Glyph, s.styles.Phase.Render(info.Label)))
		sb.WriteString(s.styles.Muted.Render(fmt.Sprintf("  /ritual %s", r)))
		sb.WriteString("\n  ")
		sb.WriteString(s.styles.Muted.Render(info.Description))
		sb.WriteString("\n")
	}

	innerWidth := max(width-4, 20)
	return s.styles.Panel.Width(innerWidth).Render(
		lipgloss.NewStyle().Width(innerWidth).Render(sb.String()))
}
