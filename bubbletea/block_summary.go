package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fwojciec/compass"
)

var _ MessageBlock = (*SummaryBlock)(nil)

// SummaryBlock renders the end-of-session summary card.
type SummaryBlock struct {
	summary compass.Summary
	styles  Styles
}

// NewSummaryBlock creates a SummaryBlock.
func NewSummaryBlock(summary compass.Summary, styles Styles) *SummaryBlock {
	return &SummaryBlock{summary: summary, styles: styles}
}

func (b *SummaryBlock) View(width int) string {
	var sb strings.Builder
	sb.WriteString(b.styles.Success.Render("Session summary"))
	if b.summary.Date != "" {
		sb.WriteString(b.styles.Muted.Render(" · " + b.summary.Date))
	}
	sb.WriteString("\n")
	sb.WriteString(b.summary.Text)
	if b.summary.PrimaryEmotion != "" {
		sb.WriteString("\n")
		line := fmt.Sprintf("Primary emotion: %s", b.summary.PrimaryEmotion)
		if b.summary.Intensity > 0 {
			line += fmt.Sprintf(" (%d/10)", b.summary.Intensity)
		}
		sb.WriteString(b.styles.Accent.Render(line))
	}

	innerWidth := max(width-4, 10) // panel border and padding
	return b.styles.Panel.Width(innerWidth).Render(
		lipgloss.NewStyle().Width(innerWidth).Render(sb.String()))
}
