// Package api implements the Daily Mood Compass HTTP+JSON transport.
//
// The backend owns the wire schema; this package converts it to and from
// the domain types in the root package and maps HTTP failures onto the
// sentinel error taxonomy, preserving error kinds end to end: 401/403
// arrive as compass.ErrUnauthenticated, 404 as compass.ErrSessionNotFound,
// and everything else stays a wrapped transient error carrying the
// backend's detail.
package api

import (
	"time"

	"github.com/fwojciec/compass"
)

const (
	chatStartPath    = "/api/chat/session/start"
	chatMessagePath  = "/api/chat/message"
	chatCompletePath = "/api/chat/session/complete"

	memoryStartPath   = "/api/memory/start"
	memoryMessagePath = "/api/memory/message"
	memoryPhasePath   = "/api/memory/update-phase"

	emotionHistoryPath = "/api/emotions/history"
	recentSessionsPath = "/api/sessions/recent"

	authMePath      = "/api/auth/me"
	authSessionPath = "/api/auth/session-data"
	authLogoutPath  = "/api/auth/logout"
)

// chunkPayload is one message chunk on the wire. Delays are integer
// milliseconds; absent fields decode to zero and take their defaults in the
// domain type.
type chunkPayload struct {
	Content     string `json:"content"`
	TypingDelay int    `json:"typing_delay"`
	PauseAfter  int    `json:"pause_after"`
}

func (p chunkPayload) toChunk() compass.Chunk {
	return compass.Chunk{
		Content:     p.Content,
		TypingDelay: time.Duration(p.TypingDelay) * time.Millisecond,
		PauseAfter:  time.Duration(p.PauseAfter) * time.Millisecond,
	}
}

func toChunks(payloads []chunkPayload) []compass.Chunk {
	if len(payloads) == 0 {
		return nil
	}
	chunks := make([]compass.Chunk, len(payloads))
	for i, p := range payloads {
		chunks[i] = p.toChunk()
	}
	return chunks
}

type startRequest struct {
	UserID string `json:"user_id"`
}

// startResponse covers both session-start shapes: a plain greeting string
// or a pre-chunked messages list. Memory starts additionally carry a phase.
type startResponse struct {
	SessionID string         `json:"session_id"`
	Greeting  string         `json:"greeting"`
	Messages  []chunkPayload `json:"messages"`
	Phase     string         `json:"phase"`
}

type messageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	UserID    string `json:"user_id"`
}

type messageResponse struct {
	Messages        []chunkPayload `json:"messages"`
	Phase           string         `json:"phase"`
	CrisisDetected  bool           `json:"crisis_detected"`
	SessionComplete bool           `json:"session_complete"`
}

type completeRequest struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
}

type summaryResponse struct {
	SessionID      string `json:"session_id"`
	Summary        string `json:"summary"`
	PrimaryEmotion string `json:"primary_emotion"`
	Intensity      int    `json:"intensity"`
	Date           string `json:"date"`
}

type memoryStartRequest struct {
	UserID      string `json:"user_id"`
	MemoryTopic string `json:"memory_topic"`
}

type phaseUpdateRequest struct {
	SessionID string           `json:"session_id"`
	UserID    string           `json:"user_id"`
	PhaseData phaseDataPayload `json:"phase_data"`
}

// phaseDataPayload is a partial merge: zero-valued fields are omitted so
// the backend only touches the keys the client actually set.
type phaseDataPayload struct {
	RitualChosen    string `json:"ritual_chosen,omitempty"`
	RitualCompleted bool   `json:"ritual_completed,omitempty"`
	ClosureAchieved bool   `json:"closure_achieved,omitempty"`
}

type emotionPayload struct {
	Date      string `json:"date"`
	Emotion   string `json:"emotion"`
	Intensity int    `json:"intensity"`
	SessionID string `json:"session_id"`
}

type sessionPayload struct {
	ID             string `json:"id"`
	Date           string `json:"date"`
	Summary        string `json:"summary"`
	PrimaryEmotion string `json:"primary_emotion"`
	Intensity      int    `json:"intensity"`
}

type userPayload struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// errorBody is the JSON body returned on non-2xx HTTP responses.
type errorBody struct {
	Detail string `json:"detail"`
}
