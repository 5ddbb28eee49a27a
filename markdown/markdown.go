// Package markdown renders assistant message text to ANSI-styled terminal
// output using goldmark for parsing and lipgloss for styling. Chunks arrive
// as whole short conversational messages, so the renderer covers the
// conversational subset: paragraphs, emphasis, and lists. Code blocks and
// headings fall back to plain wrapped text.
package markdown

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/fwojciec/compass"
)

// Render parses markdown source and returns ANSI-styled, word-wrapped
// terminal output.
func Render(source string, width int, theme compass.Theme) string {
	if source == "" {
		return ""
	}
	r := newRenderer(theme)
	return r.render([]byte(source), width)
}

type ansiRenderer struct {
	bold   lipgloss.Style
	italic lipgloss.Style
	muted  lipgloss.Style
}

func newRenderer(theme compass.Theme) *ansiRenderer {
	return &ansiRenderer{
		bold:   lipgloss.NewStyle().Bold(true),
		italic: lipgloss.NewStyle().Italic(true),
		muted:  lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (r *ansiRenderer) render(source []byte, width int) string {
	p := goldmark.DefaultParser()
	doc := p.Parse(text.NewReader(source))

	var buf bytes.Buffer
	r.walkBlock(doc, source, width, &buf)
	return strings.TrimRight(buf.String(), "\n")
}

func (r *ansiRenderer) walkBlock(node ast.Node, source []byte, width int, buf *bytes.Buffer) {
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.renderBlock(c, source, width, buf)
	}
}

func (r *ansiRenderer) renderBlock(node ast.Node, source []byte, width int, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.Heading, *ast.TextBlock:
		inline := r.collectInline(n, source)
		buf.WriteString(lipgloss.NewStyle().Width(width).Render(inline))
		buf.WriteString("\n")
		if n.NextSibling() != nil {
			buf.WriteString("\n")
		}

	case *ast.List:
		r.renderList(n, source, width, buf)
		if n.NextSibling() != nil {
			buf.WriteString("\n")
		}

	default:
		// Code blocks, blockquotes and anything else exotic for a
		// texting-style assistant: recurse and render as plain text.
		r.walkBlock(node, source, width, buf)
	}
}

func (r *ansiRenderer) renderList(node *ast.List, source []byte, width int, buf *bytes.Buffer) {
	ordered := node.IsOrdered()
	itemNum := 0

	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := "- "
		if ordered {
			itemNum++
			marker = fmt.Sprintf("%d. ", node.Start+itemNum-1)
		}

		var itemBuf bytes.Buffer
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			itemBuf.WriteString(r.collectInline(ic, source))
		}
		r.writeListItem(buf, marker, itemBuf.String(), width)
	}
}

// writeListItem writes a list item with continuation-line indentation.
func (r *ansiRenderer) writeListItem(buf *bytes.Buffer, marker, content string, width int) {
	itemWidth := max(width-len(marker), 10)
	wrapped := lipgloss.NewStyle().Width(itemWidth).Render(content)
	continuation := strings.Repeat(" ", len(marker))
	for i, line := range strings.Split(wrapped, "\n") {
		if i == 0 {
			buf.WriteString(marker + line + "\n")
		} else {
			buf.WriteString(continuation + line + "\n")
		}
	}
}

// collectInline recursively collects styled inline text from a node's children.
func (r *ansiRenderer) collectInline(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.renderInline(c, source, &buf)
	}
	return buf.String()
}

func (r *ansiRenderer) renderInline(node ast.Node, source []byte, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Segment.Value(source))
		if n.SoftLineBreak() {
			buf.WriteByte(' ')
		}
		if n.HardLineBreak() {
			buf.WriteByte('\n')
		}

	case *ast.String:
		buf.Write(n.Value)

	case *ast.Emphasis:
		inner := r.collectInline(n, source)
		if n.Level == 1 {
			buf.WriteString(r.italic.Render(inner))
		} else {
			buf.WriteString(r.bold.Render(inner))
		}

	case *ast.CodeSpan:
		buf.WriteString(r.bold.Render(r.collectInline(n, source)))

	case *ast.AutoLink:
		buf.WriteString(r.muted.Render(string(n.URL(source))))

	case *ast.Link:
		buf.WriteString(r.collectInline(n, source))
		buf.WriteString(" ")
		buf.WriteString(r.muted.Render("(" + string(n.Destination) + ")"))

	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.renderInline(c, source, buf)
		}
	}
}
