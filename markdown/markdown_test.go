package markdown_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fwojciec/compass"
	"github.com/fwojciec/compass/markdown"
)

// noColorTheme disables ANSI colors so assertions can match plain text.
func noColorTheme() compass.Theme {
	return compass.Theme{UserMsg: -1, Typing: -1, Phase: -1, Crisis: -1, Error: -1, Success: -1, Muted: -1, Accent: -1}
}

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("empty input renders empty", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, markdown.Render("", 40, noColorTheme()))
	})

	t.Run("plain sentence passes through", func(t *testing.T) {
		t.Parallel()

		out := markdown.Render("That sounds really overwhelming.", 80, noColorTheme())
		assert.Contains(t, out, "That sounds really overwhelming.")
	})

	t.Run("emoji markers survive rendering", func(t *testing.T) {
		t.Parallel()

		out := markdown.Render("The flames have taken what you released. 🔥", 80, noColorTheme())
		assert.Contains(t, out, "🔥")
	})

	t.Run("paragraphs are word-wrapped to width", func(t *testing.T) {
		t.Parallel()

		long := "one two three four five six seven eight nine ten eleven twelve"
		out := markdown.Render(long, 20, noColorTheme())
		for _, line := range strings.Split(out, "\n") {
			assert.LessOrEqual(t, len(line), 20)
		}
		assert.Contains(t, out, "twelve", "wrapped text keeps all words")
	})

	t.Run("paragraph break preserved", func(t *testing.T) {
		t.Parallel()

		out := markdown.Render("First thought.\n\nSecond thought.", 80, noColorTheme())
		assert.Contains(t, out, "First thought.\n\nSecond thought.")
	})

	t.Run("list items get markers", func(t *testing.T) {
		t.Parallel()

		out := markdown.Render("- breathe\n- rest", 80, noColorTheme())
		assert.Contains(t, out, "- breathe")
		assert.Contains(t, out, "- rest")
	})

	t.Run("emphasis does not leak markers", func(t *testing.T) {
		t.Parallel()

		out := markdown.Render("that is *really* hard", 80, noColorTheme())
		assert.NotContains(t, out, "*")
		assert.Contains(t, out, "really")
	})
}
