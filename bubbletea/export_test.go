package bubbletea

import tea "github.com/charmbracelet/bubbletea"

// PlayTick returns the playback timer message for the model's current
// generation, letting tests advance the sequence without waiting.
func PlayTick(m Model) tea.Msg { return playTickMsg{gen: m.playGen} }

// StalePlayTick returns a playback timer message from a retired
// generation.
func StalePlayTick(m Model) tea.Msg { return playTickMsg{gen: m.playGen - 1} }

// RitualDone returns the ritual completion timer message for the current
// overlay generation.
func RitualDone(m Model) tea.Msg { return ritualDoneMsg{gen: m.overlayGen} }

// StaleRitualDone returns a completion timer message from a retired
// overlay generation.
func StaleRitualDone(m Model) tea.Msg { return ritualDoneMsg{gen: m.overlayGen - 1} }

// OverlayActive reports whether a ritual overlay is on screen.
func OverlayActive(m Model) bool { return m.overlay != nil }

// BlockCount returns the number of transcript blocks.
func BlockCount(m Model) int { return len(m.blocks) }

// SelectorVisible reports whether the ritual selector renders in the
// transcript.
func SelectorVisible(m Model) bool {
	return m.session != nil && m.session.RitualOffered() && !m.playing && !m.requesting
}
