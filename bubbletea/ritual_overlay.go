package bubbletea

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/fwojciec/compass"
)

// ritualDuration is the fixed length of every closure animation. The root
// model owns the single completion timer and guards it with a generation
// counter, so a timer surviving a teardown can never fire into a newer
// state.
const ritualDuration = 5000 * time.Millisecond

// ritualFrameInterval paces the cosmetic frame animation.
const ritualFrameInterval = 800 * time.Millisecond

// RitualOverlay renders the closure animation for a chosen ritual. It is a
// pure presentational unit parameterized by ritual kind: no backend
// knowledge, no completion state of its own.
type RitualOverlay struct {
	ritual compass.Ritual
	info   compass.RitualInfo
	frame  int
	styles Styles
}

// NewRitualOverlay creates an overlay for r. Unknown rituals are rejected
// upstream by Session.ChooseRitual, so the info lookup always succeeds
// here.
func NewRitualOverlay(r compass.Ritual, styles Styles) *RitualOverlay {
	info, _ := r.Info()
	return &RitualOverlay{ritual: r, info: info, styles: styles}
}

// Ritual returns the overlay's ritual kind.
func (o *RitualOverlay) Ritual() compass.Ritual {
	return o.ritual
}

// Completion returns the synthetic message appended when the ritual ends.
func (o *RitualOverlay) Completion() string {
	return o.info.Completion
}

// Advance moves to the next animation frame, holding on the last one.
func (o *RitualOverlay) Advance() {
	if o.frame < len(o.info.Frames)-1 {
		o.frame++
	}
}

// View renders the current frame centered in the given area.
func (o *RitualOverlay) View(width, height int) string {
	frame := ""
	if len(o.info.Frames) > 0 {
		frame = o.info.Frames[o.frame]
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		o.styles.Accent.Render(o.info.Label),
		"",
		frame,
		"",
		o.styles.Muted.Render(o.info.Description),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
