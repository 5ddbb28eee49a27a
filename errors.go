package compass

import "errors"

// Sentinel errors for the transport taxonomy. Error kinds are preserved end
// to end — callers branch with errors.Is, never on message text. Collapsing
// an auth failure into a generic error at the session-start boundary is the
// exact failure mode this taxonomy exists to prevent.
var (
	// ErrUnauthenticated indicates a missing or expired session cookie.
	// Surfaced by returning to the login flow, never as an in-chat error.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrSessionNotFound indicates a stale or unknown session id, distinct
	// from an auth failure. The UI prompts a fresh session start.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionComplete indicates an operation on a completed session.
	ErrSessionComplete = errors.New("session already complete")

	// ErrRitualChosen indicates a second ritual choice within one session.
	ErrRitualChosen = errors.New("ritual already chosen")

	// ErrValidation indicates a request or wire value failed validation.
	ErrValidation = errors.New("validation error")
)
