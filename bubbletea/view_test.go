package bubbletea_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/compass"
	bt "github.com/fwojciec/compass/bubbletea"
)

func testStyles() bt.Styles {
	return bt.NewStyles(compass.DefaultTheme())
}

func TestCrisisModalView(t *testing.T) {
	t.Parallel()

	out := bt.NewCrisisModal(testStyles()).View(80, 24)
	assert.Contains(t, out, "988")
	assert.Contains(t, out, "741741")
	assert.Contains(t, out, "findahelpline.com")
	assert.Contains(t, out, "esc to return")
}

func TestRitualSelectorView(t *testing.T) {
	t.Parallel()

	out := bt.NewRitualSelector(testStyles()).View(80)
	for _, r := range compass.Rituals {
		info, ok := r.Info()
		require.True(t, ok)
		assert.Contains(t, out, info.Label)
		assert.Contains(t, out, "/ritual "+string(r))
	}
}

func TestRitualOverlay(t *testing.T) {
	t.Parallel()

	t.Run("every ritual has a completion message", func(t *testing.T) {
		t.Parallel()
		for _, r := range compass.Rituals {
			o := bt.NewRitualOverlay(r, testStyles())
			assert.NotEmpty(t, o.Completion(), "ritual %s", r)
			assert.Equal(t, r, o.Ritual())
		}
	})

	t.Run("animation holds on the last frame", func(t *testing.T) {
		t.Parallel()
		o := bt.NewRitualOverlay(compass.RitualFire, testStyles())
		for range 20 {
			o.Advance()
		}
		out := o.View(80, 24)
		assert.NotEmpty(t, strings.TrimSpace(out))
	})
}

func TestHistoryViewRender(t *testing.T) {
	t.Parallel()

	t.Run("empty states", func(t *testing.T) {
		t.Parallel()
		out := bt.NewHistoryView(nil, nil, 14, testStyles()).View(80)
		assert.Contains(t, out, "No completed check-ins yet.")
		assert.Contains(t, out, "Nothing here yet.")
	})

	t.Run("rows carry intensity bars and glyph fallback", func(t *testing.T) {
		t.Parallel()
		entries := []compass.EmotionEntry{
			{Date: "2026-08-24", Emotion: "joy", Intensity: 3},
			{Date: "2026-08-23", Emotion: "ennui", Intensity: 5},
		}
		digests := []compass.SessionDigest{
			{Date: "2026-08-24", Summary: "Settled into the new routine."},
		}
		out := bt.NewHistoryView(entries, digests, 14, testStyles()).View(80)
		assert.Contains(t, out, "last 14 days")
		assert.Contains(t, out, "███")
		assert.Contains(t, out, "· ennui") // unlisted emotion falls back to a dot
		assert.Contains(t, out, "Settled into the new routine.")
	})
}

func TestSummaryBlockView(t *testing.T) {
	t.Parallel()

	out := bt.NewSummaryBlock(compass.Summary{
		SessionID:      "s1",
		Date:           "2026-08-25",
		Text:           "You worked through a tense standup.",
		PrimaryEmotion: "frustration",
		Intensity:      5,
	}, testStyles()).View(80)

	assert.Contains(t, out, "Session summary")
	assert.Contains(t, out, "2026-08-25")
	assert.Contains(t, out, "frustration")
	assert.Contains(t, out, "(5/10)")
}
