package bubbletea

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*ErrorBlock)(nil)

// ErrorBlock renders a transient failure inline in the transcript. The
// message stays in place so the user can resend manually; there is no
// automatic retry.
type ErrorBlock struct {
	err    error
	styles Styles
}

// NewErrorBlock creates an ErrorBlock.
func NewErrorBlock(err error, styles Styles) *ErrorBlock {
	return &ErrorBlock{err: err, styles: styles}
}

func (b *ErrorBlock) View(width int) string {
	content := b.styles.Error.Render(fmt.Sprintf("Error: %v", b.err))
	return lipgloss.NewStyle().Width(width).Render(content)
}
