package compass

import "context"

// StartResult is the backend's reply to a session-start call.
type StartResult struct {
	SessionID string
	Phase     Phase   // empty for check-ins
	Chunks    []Chunk // greeting, pre-chunked by the backend
}

// SendResult is the backend's reply to a message send.
type SendResult struct {
	Chunks []Chunk
	// Phase is the reported phase for memory sessions; empty means
	// unchanged or not applicable.
	Phase Phase
	// CrisisDetected routes to the escalation gate. It is a first-class
	// signal, not an error.
	CrisisDetected  bool
	SessionComplete bool
}

// PhaseData carries phase metadata merged server-side by UpdatePhase.
// Zero-valued fields are omitted from the merge.
type PhaseData struct {
	RitualChosen    Ritual
	RitualCompleted bool
	ClosureAchieved bool
}

// Backend is the session transport: a thin, kind-preserving wrapper over the
// Daily Mood Compass HTTP API. Implementations must surface the error
// taxonomy in errors.go unchanged — in particular an unauthenticated
// session-start must arrive as ErrUnauthenticated, never as a generic
// failure. Every method blocks until the backend replies; the UI keeps at
// most one call in flight per user action.
type Backend interface {
	StartCheckin(ctx context.Context, userID string) (StartResult, error)
	SendCheckin(ctx context.Context, sessionID, userID, text string) (SendResult, error)
	CompleteCheckin(ctx context.Context, sessionID, userID string) (Summary, error)

	StartMemory(ctx context.Context, userID, topic string) (StartResult, error)
	SendMemory(ctx context.Context, sessionID, userID, text string) (SendResult, error)
	// UpdatePhase persists phase metadata (ritual chosen/completed, closure
	// achieved). Callers await the ack before advancing UI state that
	// depends on it.
	UpdatePhase(ctx context.Context, sessionID, userID string, data PhaseData) error

	EmotionHistory(ctx context.Context, userID string, days int) ([]EmotionEntry, error)
	RecentSessions(ctx context.Context, userID string, limit int) ([]SessionDigest, error)
}
