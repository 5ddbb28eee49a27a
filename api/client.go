package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fwojciec/compass"
)

// Interface compliance check.
var _ compass.Backend = (*Client)(nil)

// Client implements [compass.Backend] against the Daily Mood Compass API.
// Authentication rides an HTTP-only session cookie held by the client's
// cookie jar; the base URL is injected at construction — there is no
// package-level endpoint state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. The caller is responsible for
// giving it a cookie jar if session cookies should persist.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger for request outcomes. Defaults to a no-op.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the API served at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.httpClient == nil {
		jar, _ := cookiejar.New(nil)
		c.httpClient = &http.Client{Jar: jar, Timeout: 60 * time.Second}
	}
	return c
}

// StartCheckin starts a daily check-in session. An unauthenticated reply
// arrives as compass.ErrUnauthenticated so the caller can route back to
// login instead of showing a generic failure.
func (c *Client) StartCheckin(ctx context.Context, userID string) (compass.StartResult, error) {
	var resp startResponse
	if err := c.post(ctx, chatStartPath, startRequest{UserID: userID}, &resp); err != nil {
		return compass.StartResult{}, err
	}
	return toStartResult(resp, false)
}

// SendCheckin sends one user message and returns the chunked reply.
func (c *Client) SendCheckin(ctx context.Context, sessionID, userID, text string) (compass.SendResult, error) {
	var resp messageResponse
	req := messageRequest{SessionID: sessionID, Message: text, UserID: userID}
	if err := c.post(ctx, chatMessagePath, req, &resp); err != nil {
		return compass.SendResult{}, err
	}
	return toSendResult(resp)
}

// CompleteCheckin ends the session and returns its summary. The session id
// must not be reused afterwards.
func (c *Client) CompleteCheckin(ctx context.Context, sessionID, userID string) (compass.Summary, error) {
	var resp summaryResponse
	req := completeRequest{SessionID: sessionID, UserID: userID}
	if err := c.post(ctx, chatCompletePath, req, &resp); err != nil {
		return compass.Summary{}, err
	}
	return compass.Summary{
		SessionID:      resp.SessionID,
		Date:           resp.Date,
		Text:           resp.Summary,
		PrimaryEmotion: resp.PrimaryEmotion,
		Intensity:      resp.Intensity,
	}, nil
}

// StartMemory starts a memory-processing session on the given topic.
func (c *Client) StartMemory(ctx context.Context, userID, topic string) (compass.StartResult, error) {
	var resp startResponse
	req := memoryStartRequest{UserID: userID, MemoryTopic: topic}
	if err := c.post(ctx, memoryStartPath, req, &resp); err != nil {
		return compass.StartResult{}, err
	}
	return toStartResult(resp, true)
}

// SendMemory sends one user message within a memory session.
func (c *Client) SendMemory(ctx context.Context, sessionID, userID, text string) (compass.SendResult, error) {
	var resp messageResponse
	req := messageRequest{SessionID: sessionID, Message: text, UserID: userID}
	if err := c.post(ctx, memoryMessagePath, req, &resp); err != nil {
		return compass.SendResult{}, err
	}
	return toSendResult(resp)
}

// UpdatePhase merges phase metadata server-side.
func (c *Client) UpdatePhase(ctx context.Context, sessionID, userID string, data compass.PhaseData) error {
	req := phaseUpdateRequest{
		SessionID: sessionID,
		UserID:    userID,
		PhaseData: phaseDataPayload{
			RitualChosen:    string(data.RitualChosen),
			RitualCompleted: data.RitualCompleted,
			ClosureAchieved: data.ClosureAchieved,
		},
	}
	return c.post(ctx, memoryPhasePath, req, nil)
}

// EmotionHistory returns up to days of emotion history, newest first.
func (c *Client) EmotionHistory(ctx context.Context, userID string, days int) ([]compass.EmotionEntry, error) {
	q := url.Values{"user_id": {userID}, "days": {strconv.Itoa(days)}}
	var payloads []emotionPayload
	if err := c.get(ctx, emotionHistoryPath, q, &payloads); err != nil {
		return nil, err
	}
	entries := make([]compass.EmotionEntry, len(payloads))
	for i, p := range payloads {
		entries[i] = compass.EmotionEntry{
			Date:      p.Date,
			Emotion:   p.Emotion,
			Intensity: p.Intensity,
			SessionID: p.SessionID,
		}
	}
	return entries, nil
}

// RecentSessions returns digests of recently completed sessions.
func (c *Client) RecentSessions(ctx context.Context, userID string, limit int) ([]compass.SessionDigest, error) {
	q := url.Values{"user_id": {userID}, "limit": {strconv.Itoa(limit)}}
	var payloads []sessionPayload
	if err := c.get(ctx, recentSessionsPath, q, &payloads); err != nil {
		return nil, err
	}
	digests := make([]compass.SessionDigest, len(payloads))
	for i, p := range payloads {
		digests[i] = compass.SessionDigest{
			ID:             p.ID,
			Date:           p.Date,
			Summary:        p.Summary,
			PrimaryEmotion: p.PrimaryEmotion,
			Intensity:      p.Intensity,
		}
	}
	return digests, nil
}

// Me returns the authenticated user behind the session cookie.
func (c *Client) Me(ctx context.Context) (compass.User, error) {
	var payload userPayload
	if err := c.get(ctx, authMePath, nil, &payload); err != nil {
		return compass.User{}, err
	}
	return compass.User{
		ID:      payload.ID,
		Name:    payload.Name,
		Email:   payload.Email,
		Picture: payload.Picture,
	}, nil
}

// Bootstrap forwards a one-time auth session id (the fragment the identity
// provider appends to the redirect URL) so the backend can set the real
// session cookie. The fragment is used once and discarded.
func (c *Client) Bootstrap(ctx context.Context, authSessionID string) error {
	path := authSessionPath + "?session_id=" + url.QueryEscape(authSessionID)
	return c.post(ctx, path, nil, nil)
}

// Logout invalidates the backend session.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, authLogoutPath, nil, nil)
}

func toStartResult(resp startResponse, memory bool) (compass.StartResult, error) {
	chunks := toChunks(resp.Messages)
	// Older check-in replies carry a plain greeting instead of chunks.
	if len(chunks) == 0 && resp.Greeting != "" {
		chunks = []compass.Chunk{{Content: resp.Greeting}}
	}
	if err := compass.ValidateChunks(chunks); err != nil {
		return compass.StartResult{}, err
	}
	result := compass.StartResult{SessionID: resp.SessionID, Chunks: chunks}
	if memory {
		phase, err := compass.ParsePhase(resp.Phase)
		if err != nil {
			return compass.StartResult{}, err
		}
		result.Phase = phase
	}
	return result, nil
}

func toSendResult(resp messageResponse) (compass.SendResult, error) {
	chunks := toChunks(resp.Messages)
	if err := compass.ValidateChunks(chunks); err != nil {
		return compass.SendResult{}, err
	}
	result := compass.SendResult{
		Chunks:          chunks,
		CrisisDetected:  resp.CrisisDetected,
		SessionComplete: resp.SessionComplete,
	}
	if resp.Phase != "" {
		phase, err := compass.ParsePhase(resp.Phase)
		if err != nil {
			return compass.SendResult{}, err
		}
		result.Phase = phase
	}
	return result, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encode %s: %w", path, err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("path", req.URL.Path),
			zap.String("request_id", reqID),
			zap.Error(err))
		return fmt.Errorf("api: %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		zap.String("path", req.URL.Path),
		zap.String("request_id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseHTTPError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s: %w", req.URL.Path, err)
	}
	return nil
}

// parseHTTPError maps a non-2xx response onto the sentinel taxonomy. The
// mapping is the whole point: a 401 at session start must surface as
// ErrUnauthenticated so the UI can route to login rather than reporting a
// broken send control.
func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: HTTP %d (failed to read body: %w)", resp.StatusCode, err)
	}
	detail := string(body)
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Detail != "" {
		detail = parsed.Detail
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("api: %s: %w", detail, compass.ErrUnauthenticated)
	case http.StatusNotFound:
		return fmt.Errorf("api: %s: %w", detail, compass.ErrSessionNotFound)
	default:
		return fmt.Errorf("api: HTTP %d: %s", resp.StatusCode, detail)
	}
}
