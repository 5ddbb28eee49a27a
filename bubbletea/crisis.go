package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// crisisResources are the static help listings shown by the modal. The
// modal never talks to the backend: showing and dismissing it is purely a
// client-side affair.
var crisisResources = []struct {
	Name    string
	Contact string
}{
	{"988 Suicide & Crisis Lifeline", "call or text 988 (US)"},
	{"Crisis Text Line", "text HOME to 741741"},
	{"International helplines", "findahelpline.com"},
}

// CrisisModal shows professional-help resources whenever the most recent
// send response carries the crisis flag. It is stateless: visibility is
// owned by the root model and tracks exactly the latest response's flag,
// with no de-duplication across the session.
type CrisisModal struct {
	styles Styles
}

// NewCrisisModal creates a CrisisModal.
func NewCrisisModal(styles Styles) CrisisModal {
	return CrisisModal{styles: styles}
}

// View renders the modal centered in the given area.
func (c CrisisModal) View(width, height int) string {
	var sb strings.Builder
	sb.WriteString(c.styles.Crisis.Render("You deserve real support"))
	sb.WriteString("\n\n")
	sb.WriteString("What you're sharing sounds serious. Please consider\nreaching out to someone who can help right now:")
	sb.WriteString("\n\n")
	for _, r := range crisisResources {
		sb.WriteString(c.styles.Accent.Render(r.Name))
		sb.WriteString("\n  ")
		sb.WriteString(r.Contact)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(c.styles.Muted.Render("esc to return to the conversation"))

	box := c.styles.Panel.BorderForeground(c.styles.Crisis.GetForeground()).Render(sb.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
