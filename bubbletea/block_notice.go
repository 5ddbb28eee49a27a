package bubbletea

import "github.com/charmbracelet/lipgloss"

var _ MessageBlock = (*NoticeBlock)(nil)

// NoticeBlock renders a muted system line (session boundaries, prompts to
// start a fresh session).
type NoticeBlock struct {
	text   string
	styles Styles
}

// NewNoticeBlock creates a NoticeBlock.
func NewNoticeBlock(text string, styles Styles) *NoticeBlock {
	return &NoticeBlock{text: text, styles: styles}
}

func (b *NoticeBlock) View(width int) string {
	return lipgloss.NewStyle().Width(width).Render(b.styles.Muted.Render(b.text))
}
