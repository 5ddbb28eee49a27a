package compass

import "fmt"

// SessionKind separates daily check-ins from memory-processing sessions.
type SessionKind string

const (
	KindCheckin SessionKind = "checkin"
	KindMemory  SessionKind = "memory"
)

// Session is the client-side view of one conversation session. The backend
// owns the authoritative state; nothing here is persisted locally. The
// session id is opaque and issued by the backend at start.
type Session struct {
	ID       string
	UserID   string
	Kind     SessionKind
	Phase    Phase
	Messages []Message
	Ritual   Ritual // empty until chosen
	// Crisis mirrors the most recent send response's crisis flag. It is not
	// de-duplicated: every qualifying response re-raises it.
	Crisis    bool
	Completed bool
}

// CanSend returns nil while the session accepts another message, and
// ErrSessionComplete once it has ended. The completed state is tracked
// locally, distinct from the backend's 404 for an unknown session id.
func (s *Session) CanSend() error {
	if s.Completed {
		return fmt.Errorf("session %s: %w", s.ID, ErrSessionComplete)
	}
	return nil
}

// Append adds a message to the transcript.
func (s *Session) Append(m Message) {
	s.Messages = append(s.Messages, m)
}

// AdvancePhase mirrors a backend-reported phase. A later phase is adopted;
// an earlier or unknown value never overrides the current one, so a stale
// cached response cannot regress the flow.
func (s *Session) AdvancePhase(p Phase) {
	if p.Rank() > s.Phase.Rank() {
		s.Phase = p
	}
}

// ChooseRitual records the session's ritual. The first choice wins; any
// later call fails with ErrRitualChosen regardless of the kind passed.
func (s *Session) ChooseRitual(r Ritual) error {
	if s.Ritual != "" {
		return fmt.Errorf("session %s already chose %s: %w", s.ID, s.Ritual, ErrRitualChosen)
	}
	if _, ok := r.Info(); !ok {
		return fmt.Errorf("unknown ritual %q: %w", r, ErrValidation)
	}
	s.Ritual = r
	return nil
}

// RitualOffered reports whether the ritual selector should be visible:
// a memory session in the release phase with no ritual chosen yet.
func (s *Session) RitualOffered() bool {
	return s.Kind == KindMemory && s.Phase == PhaseRelease && s.Ritual == "" && !s.Completed
}
