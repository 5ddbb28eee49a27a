// Package bubbletea provides the Bubble Tea TUI for the compass client.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fwojciec/compass"
)

// Config carries UI configuration resolved by the caller.
type Config struct {
	HistoryDays int // emotion history window; 0 means 14
	RecentLimit int // recent session listing size; 0 means 7
}

func (c Config) historyDays() int {
	if c.HistoryDays <= 0 {
		return 14
	}
	return c.HistoryDays
}

func (c Config) recentLimit() int {
	if c.RecentLimit <= 0 {
		return 7
	}
	return c.RecentLimit
}

// Run creates and runs the Bubble Tea TUI program. It blocks until the
// program exits and returns the final model so the caller can inspect
// Err() — an unauthenticated exit routes back to login, not to a generic
// failure message. The context is used for graceful shutdown.
func Run(ctx context.Context, m Model) (Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	final, err := p.Run()
	fm, ok := final.(Model)
	if !ok {
		return m, err
	}
	return fm, err
}

// SessionStartedMsg carries the result of a session-start call.
type SessionStartedMsg struct {
	Kind   compass.SessionKind
	Topic  string // memory topic; empty for check-ins
	Result compass.StartResult
	Err    error
}

// ResponseMsg carries the result of a message send.
type ResponseMsg struct {
	Result compass.SendResult
	Err    error
}

// CompletedMsg carries the summary of a completed check-in.
type CompletedMsg struct {
	Summary compass.Summary
	Err     error
}

// PhaseSavedMsg acknowledges an update-phase call. Data echoes what was
// persisted so the model can tell a ritual choice from a completion.
type PhaseSavedMsg struct {
	Data compass.PhaseData
	Err  error
}

// HistoryMsg carries the emotion trend data for the history view.
type HistoryMsg struct {
	Entries []compass.EmotionEntry
	Digests []compass.SessionDigest
	Err     error
}

// playTickMsg advances the playback sequence. The generation guard drops
// ticks scheduled before a reset so a stale timer can never mutate a newer
// sequence.
type playTickMsg struct {
	gen int
}

// ritualDoneMsg fires the one-shot ritual completion.
type ritualDoneMsg struct {
	gen int
}

// ritualFrameMsg advances the overlay animation.
type ritualFrameMsg struct {
	gen int
}
