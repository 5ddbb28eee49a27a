package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	rw "github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/fwojciec/compass"
)

// emotionGlyphs decorates trend rows. Unlisted emotions fall back to a
// plain dot.
var emotionGlyphs = map[string]string{
	"joy":         "😊",
	"sadness":     "😢",
	"anxiety":     "😰",
	"stress":      "😖",
	"anger":       "😠",
	"overwhelm":   "🥴",
	"calm":        "😌",
	"excitement":  "🤩",
	"loneliness":  "🥺",
	"frustration": "😤",
}

// HistoryView renders emotion trends and recent session digests fetched
// from the backend. It is read-only; refreshing means reopening the view.
type HistoryView struct {
	entries []compass.EmotionEntry
	digests []compass.SessionDigest
	days    int
	styles  Styles
}

// NewHistoryView creates a HistoryView over fetched data.
func NewHistoryView(entries []compass.EmotionEntry, digests []compass.SessionDigest, days int, styles Styles) *HistoryView {
	return &HistoryView{entries: entries, digests: digests, days: days, styles: styles}
}

// View renders the trends and digests stacked vertically.
func (h *HistoryView) View(width int) string {
	var sb strings.Builder

	sb.WriteString(h.styles.Accent.Render(fmt.Sprintf("Emotion trends · last %d days", h.days)))
	sb.WriteString("\n\n")
	if len(h.entries) == 0 {
		sb.WriteString(h.styles.Muted.Render("No completed check-ins yet."))
		sb.WriteString("\n")
	} else {
		labelWidth := 0
		for _, e := range h.entries {
			labelWidth = max(labelWidth, uniseg.StringWidth(h.label(e)))
		}
		for _, e := range h.entries {
			label := h.label(e)
			// Emoji glyphs are double-width; pad by display width, not
			// rune count, to keep the bars aligned.
			pad := strings.Repeat(" ", labelWidth-uniseg.StringWidth(label))
			bar := h.styles.Phase.Render(strings.Repeat("█", max(e.Intensity, 1)))
			sb.WriteString(fmt.Sprintf("%s %s%s %s %s\n",
				h.styles.Muted.Render(e.Date), label, pad, bar,
				h.styles.Muted.Render(fmt.Sprintf("%d/10", e.Intensity))))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(h.styles.Accent.Render("Recent sessions"))
	sb.WriteString("\n\n")
	if len(h.digests) == 0 {
		sb.WriteString(h.styles.Muted.Render("Nothing here yet."))
		sb.WriteString("\n")
	} else {
		for _, d := range h.digests {
			summaryWidth := max(width-len(d.Date)-3, 10)
			sb.WriteString(h.styles.Muted.Render(d.Date))
			sb.WriteString("  ")
			sb.WriteString(rw.Truncate(d.Summary, summaryWidth, "…"))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(h.styles.Muted.Render("esc to return"))
	return lipgloss.NewStyle().Width(width).Render(sb.String())
}

func (h *HistoryView) label(e compass.EmotionEntry) string {
	glyph, ok := emotionGlyphs[e.Emotion]
	if !ok {
		glyph = "·"
	}
	return glyph + " " + e.Emotion
}
