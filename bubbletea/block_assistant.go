package bubbletea

import (
	"github.com/fwojciec/compass"
	"github.com/fwojciec/compass/markdown"
)

var _ MessageBlock = (*AssistantBlock)(nil)

// AssistantBlock renders one revealed assistant chunk with markdown
// formatting. Chunks arrive whole (reveal timing is the playback engine's
// job), so the render is cached per width.
type AssistantBlock struct {
	content string
	theme   compass.Theme
	byWidth map[int]string
}

// NewAssistantBlock creates an AssistantBlock for a revealed chunk.
func NewAssistantBlock(content string, theme compass.Theme) *AssistantBlock {
	return &AssistantBlock{
		content: content,
		theme:   theme,
		byWidth: make(map[int]string),
	}
}

func (b *AssistantBlock) View(width int) string {
	if width <= 0 {
		return ""
	}
	if cached, ok := b.byWidth[width]; ok {
		return cached
	}
	rendered := markdown.Render(b.content, width, b.theme)
	b.byWidth[width] = rendered
	return rendered
}
