package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/compass"
	"github.com/fwojciec/compass/api"
)

func TestClient_StartCheckin(t *testing.T) {
	t.Parallel()

	t.Run("request format", func(t *testing.T) {
		t.Parallel()

		var captured []byte
		var header http.Header
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured, _ = io.ReadAll(r.Body)
			header = r.Header.Clone()

			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/chat/session/start", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"session_id":"s1","greeting":"Welcome back. How are you feeling right now?"}`))
		}))
		defer srv.Close()

		client := api.New(srv.URL)
		res, err := client.StartCheckin(context.Background(), "u1")
		require.NoError(t, err)

		assert.Equal(t, "application/json", header.Get("Content-Type"))
		assert.NotEmpty(t, header.Get("X-Request-Id"))

		var body map[string]any
		require.NoError(t, json.Unmarshal(captured, &body))
		assert.Equal(t, "u1", body["user_id"])

		assert.Equal(t, "s1", res.SessionID)
		require.Len(t, res.Chunks, 1)
		assert.Equal(t, "Welcome back. How are you feeling right now?", res.Chunks[0].Content)
		// Greeting fallback carries no wire delay; the default applies.
		assert.Equal(t, compass.DefaultTypingDelay, res.Chunks[0].Delay())
	})

	t.Run("chunked greeting", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"session_id":"s1","messages":[{"content":"Hi","typing_delay":500}]}`))
		}))
		defer srv.Close()

		res, err := api.New(srv.URL).StartCheckin(context.Background(), "u1")
		require.NoError(t, err)
		require.Len(t, res.Chunks, 1)
		assert.Equal(t, "Hi", res.Chunks[0].Content)
		assert.Equal(t, 500*time.Millisecond, res.Chunks[0].TypingDelay)
		assert.Zero(t, res.Chunks[0].PauseAfter)
	})

	t.Run("unauthenticated is never a generic failure", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Not authenticated"}`))
		}))
		defer srv.Close()

		_, err := api.New(srv.URL).StartCheckin(context.Background(), "u1")
		require.Error(t, err)
		assert.ErrorIs(t, err, compass.ErrUnauthenticated)
		assert.NotErrorIs(t, err, compass.ErrSessionNotFound)
		assert.Contains(t, err.Error(), "Not authenticated")
	})
}

func TestClient_SendCheckin(t *testing.T) {
	t.Parallel()

	t.Run("chunks phase and crisis flag", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/chat/message", r.URL.Path)

			body, _ := io.ReadAll(r.Body)
			var req map[string]any
			require.NoError(t, json.Unmarshal(body, &req))
			assert.Equal(t, "s1", req["session_id"])
			assert.Equal(t, "I feel heavy today", req["message"])
			assert.Equal(t, "u1", req["user_id"])

			_, _ = w.Write([]byte(`{
				"messages":[
					{"content":"A","typing_delay":100,"pause_after":200},
					{"content":"B","typing_delay":100}
				],
				"crisis_detected":true
			}`))
		}))
		defer srv.Close()

		res, err := api.New(srv.URL).SendCheckin(context.Background(), "s1", "u1", "I feel heavy today")
		require.NoError(t, err)

		require.Len(t, res.Chunks, 2)
		assert.Equal(t, compass.Chunk{Content: "A", TypingDelay: 100 * time.Millisecond, PauseAfter: 200 * time.Millisecond}, res.Chunks[0])
		assert.Equal(t, compass.Chunk{Content: "B", TypingDelay: 100 * time.Millisecond}, res.Chunks[1])
		assert.True(t, res.CrisisDetected)
		assert.Empty(t, res.Phase)
	})

	t.Run("unknown session is distinct from auth failure", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Session not found"}`))
		}))
		defer srv.Close()

		_, err := api.New(srv.URL).SendCheckin(context.Background(), "stale", "u1", "hello")
		require.Error(t, err)
		assert.ErrorIs(t, err, compass.ErrSessionNotFound)
		assert.NotErrorIs(t, err, compass.ErrUnauthenticated)
	})

	t.Run("server error stays transient", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"Failed to process message"}`))
		}))
		defer srv.Close()

		_, err := api.New(srv.URL).SendCheckin(context.Background(), "s1", "u1", "hello")
		require.Error(t, err)
		assert.NotErrorIs(t, err, compass.ErrUnauthenticated)
		assert.NotErrorIs(t, err, compass.ErrSessionNotFound)
		assert.Contains(t, err.Error(), "Failed to process message")
	})
}

func TestClient_CompleteCheckin(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat/session/complete", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"session_id":"s1",
			"summary":"Today you shared your feelings.",
			"primary_emotion":"stress",
			"intensity":7,
			"date":"2026-08-25"
		}`))
	}))
	defer srv.Close()

	summary, err := api.New(srv.URL).CompleteCheckin(context.Background(), "s1", "u1")
	require.NoError(t, err)
	assert.Equal(t, compass.Summary{
		SessionID:      "s1",
		Date:           "2026-08-25",
		Text:           "Today you shared your feelings.",
		PrimaryEmotion: "stress",
		Intensity:      7,
	}, summary)
}

func TestClient_StartMemory(t *testing.T) {
	t.Parallel()

	t.Run("topic phase and chunks", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/memory/start", r.URL.Path)

			body, _ := io.ReadAll(r.Body)
			var req map[string]any
			require.NoError(t, json.Unmarshal(body, &req))
			assert.Equal(t, "the argument with my sister", req["memory_topic"])

			_, _ = w.Write([]byte(`{
				"session_id":"m1",
				"phase":"externalize",
				"messages":[{"content":"Tell me about it.","typing_delay":800}]
			}`))
		}))
		defer srv.Close()

		res, err := api.New(srv.URL).StartMemory(context.Background(), "u1", "the argument with my sister")
		require.NoError(t, err)
		assert.Equal(t, "m1", res.SessionID)
		assert.Equal(t, compass.PhaseExternalize, res.Phase)
		require.Len(t, res.Chunks, 1)
	})

	t.Run("unknown phase is rejected", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"session_id":"m1","phase":"limbo","messages":[]}`))
		}))
		defer srv.Close()

		_, err := api.New(srv.URL).StartMemory(context.Background(), "u1", "topic")
		assert.ErrorIs(t, err, compass.ErrValidation)
	})
}

func TestClient_SendMemory_PhaseAdvance(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/memory/message", r.URL.Path)
		_, _ = w.Write([]byte(`{"messages":[{"content":"Good.","typing_delay":300}],"phase":"reframe"}`))
	}))
	defer srv.Close()

	res, err := api.New(srv.URL).SendMemory(context.Background(), "m1", "u1", "It hurt")
	require.NoError(t, err)
	assert.Equal(t, compass.PhaseReframe, res.Phase)
}

func TestClient_UpdatePhase(t *testing.T) {
	t.Parallel()

	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/memory/update-phase", r.URL.Path)
		captured, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	err := api.New(srv.URL).UpdatePhase(context.Background(), "m1", "u1", compass.PhaseData{
		RitualChosen: compass.RitualFire,
	})
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(captured, &body))
	data, ok := body["phase_data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "fire", data["ritual_chosen"])
	// Partial merge: unset fields are omitted entirely.
	assert.NotContains(t, data, "ritual_completed")
	assert.NotContains(t, data, "closure_achieved")
}

func TestClient_EmotionHistory(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/emotions/history", r.URL.Path)
		assert.Equal(t, "u1", r.URL.Query().Get("user_id"))
		assert.Equal(t, "14", r.URL.Query().Get("days"))

		_, _ = w.Write([]byte(`[
			{"date":"2026-08-25","emotion":"calm","intensity":5,"session_id":"s2"},
			{"date":"2026-08-24","emotion":"stress","intensity":7,"session_id":"s1"}
		]`))
	}))
	defer srv.Close()

	entries, err := api.New(srv.URL).EmotionHistory(context.Background(), "u1", 14)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, compass.EmotionEntry{Date: "2026-08-25", Emotion: "calm", Intensity: 5, SessionID: "s2"}, entries[0])
}

func TestClient_RecentSessions(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sessions/recent", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[{"id":"s1","date":"2026-08-24","summary":"You talked about work.","primary_emotion":"stress","intensity":7}]`))
	}))
	defer srv.Close()

	digests, err := api.New(srv.URL).RecentSessions(context.Background(), "u1", 7)
	require.NoError(t, err)
	require.Len(t, digests, 1)
	assert.Equal(t, "You talked about work.", digests[0].Summary)
}

func TestClient_Auth(t *testing.T) {
	t.Parallel()

	t.Run("me", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/auth/me", r.URL.Path)
			_, _ = w.Write([]byte(`{"id":"u1","name":"Sam","email":"sam@example.com","picture":"https://example.com/p.png"}`))
		}))
		defer srv.Close()

		user, err := api.New(srv.URL).Me(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, "Sam", user.Name)
	})

	t.Run("bootstrap forwards the fragment once", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/auth/session-data", r.URL.Path)
			assert.Equal(t, "frag-123", r.URL.Query().Get("session_id"))
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "cookie-1", Path: "/"})
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		}))
		defer srv.Close()

		client := api.New(srv.URL)
		require.NoError(t, client.Bootstrap(context.Background(), "frag-123"))
	})

	t.Run("session cookie persists across calls", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/auth/session-data":
				http.SetCookie(w, &http.Cookie{Name: "session", Value: "cookie-1", Path: "/"})
				_, _ = w.Write([]byte(`{"status":"ok"}`))
			case "/api/auth/me":
				cookie, err := r.Cookie("session")
				if err != nil || cookie.Value != "cookie-1" {
					w.WriteHeader(http.StatusUnauthorized)
					_, _ = w.Write([]byte(`{"detail":"Not authenticated"}`))
					return
				}
				_, _ = w.Write([]byte(`{"id":"u1","name":"Sam"}`))
			}
		}))
		defer srv.Close()

		client := api.New(srv.URL)

		_, err := client.Me(context.Background())
		assert.ErrorIs(t, err, compass.ErrUnauthenticated)

		require.NoError(t, client.Bootstrap(context.Background(), "frag-123"))

		user, err := client.Me(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("logout", func(t *testing.T) {
		t.Parallel()

		var called bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			assert.Equal(t, "/api/auth/logout", r.URL.Path)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		}))
		defer srv.Close()

		require.NoError(t, api.New(srv.URL).Logout(context.Background()))
		assert.True(t, called)
	})
}
