package compass

import "fmt"

// Ritual is a user-chosen symbolic closure animation ending a
// memory-processing session. At most one ritual is chosen per session, and
// the choice is immutable once made.
type Ritual string

const (
	RitualFire    Ritual = "fire"
	RitualWater   Ritual = "water"
	RitualEarth   Ritual = "earth"
	RitualAir     Ritual = "air"
	RitualArchive Ritual = "archive"
)

// Rituals lists the variants in selector order.
var Rituals = []Ritual{RitualFire, RitualWater, RitualEarth, RitualAir, RitualArchive}

// RitualInfo is the static presentation content for one ritual variant.
// Rendering dispatches through the Info lookup rather than branching on the
// tag, so adding a variant touches exactly one table.
type RitualInfo struct {
	Label       string
	Glyph       string
	Description string
	// Frames are the overlay animation frames, cycled for the fixed
	// duration of the ritual.
	Frames []string
	// Completion is the synthetic message appended exactly once when the
	// ritual finishes.
	Completion string
}

var ritualInfo = map[Ritual]RitualInfo{
	RitualFire: {
		Label:       "Burn",
		Glyph:       "🔥",
		Description: "Watch the memory turn to embers and drift away",
		Frames:      []string{"🕯️", "🔥", "🔥🔥", "🔥🔥🔥", "✨", "·"},
		Completion:  "The flames have taken what you released. The warmth stays with you. 🔥",
	},
	RitualWater: {
		Label:       "Dissolve",
		Glyph:       "💧",
		Description: "Let the memory dissolve and flow downstream",
		Frames:      []string{"💧", "💧💧", "🌊", "🌊🌊", "💫", "·"},
		Completion:  "The water has carried it away. You can breathe again. 💧",
	},
	RitualEarth: {
		Label:       "Bury",
		Glyph:       "🌍",
		Description: "Return the memory to the earth, where it can become something new",
		Frames:      []string{"🌍", "🪨", "🌱", "🌿", "🌳", "·"},
		Completion:  "The earth holds it now. Something new can grow here. 🌍",
	},
	RitualAir: {
		Label:       "Release",
		Glyph:       "💨",
		Description: "Let the wind carry the memory beyond the horizon",
		Frames:      []string{"🍃", "💨", "💨💨", "🌬️", "☁️", "·"},
		Completion:  "The wind has carried it beyond the horizon. You are lighter now. 💨",
	},
	RitualArchive: {
		Label:       "Archive",
		Glyph:       "📦",
		Description: "Place the memory in a box, kept but no longer carried",
		Frames:      []string{"📄", "📁", "📦", "🔒", "🗄️", "·"},
		Completion:  "It is safely put away. You know where it lives, and it no longer lives in you. 📦",
	},
}

// Info returns the static content for r. ok is false for unknown variants.
func (r Ritual) Info() (RitualInfo, bool) {
	info, ok := ritualInfo[r]
	return info, ok
}

// ParseRitual converts a wire value into a Ritual.
func ParseRitual(s string) (Ritual, error) {
	r := Ritual(s)
	if _, ok := r.Info(); !ok {
		return "", fmt.Errorf("unknown ritual %q: %w", s, ErrValidation)
	}
	return r, nil
}
