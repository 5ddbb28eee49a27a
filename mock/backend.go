// Package mock provides test doubles for compass interfaces using function
// fields.
package mock

import (
	"context"

	"github.com/fwojciec/compass"
)

// Interface compliance check.
var _ compass.Backend = (*Backend)(nil)

// Backend is a test double for compass.Backend.
// Set the function fields for the methods you need.
type Backend struct {
	StartCheckinFn    func(ctx context.Context, userID string) (compass.StartResult, error)
	SendCheckinFn     func(ctx context.Context, sessionID, userID, text string) (compass.SendResult, error)
	CompleteCheckinFn func(ctx context.Context, sessionID, userID string) (compass.Summary, error)
	StartMemoryFn     func(ctx context.Context, userID, topic string) (compass.StartResult, error)
	SendMemoryFn      func(ctx context.Context, sessionID, userID, text string) (compass.SendResult, error)
	UpdatePhaseFn     func(ctx context.Context, sessionID, userID string, data compass.PhaseData) error
	EmotionHistoryFn  func(ctx context.Context, userID string, days int) ([]compass.EmotionEntry, error)
	RecentSessionsFn  func(ctx context.Context, userID string, limit int) ([]compass.SessionDigest, error)
}

// StartCheckin delegates to StartCheckinFn.
func (b *Backend) StartCheckin(ctx context.Context, userID string) (compass.StartResult, error) {
	return b.StartCheckinFn(ctx, userID)
}

// SendCheckin delegates to SendCheckinFn.
func (b *Backend) SendCheckin(ctx context.Context, sessionID, userID, text string) (compass.SendResult, error) {
	return b.SendCheckinFn(ctx, sessionID, userID, text)
}

// CompleteCheckin delegates to CompleteCheckinFn.
func (b *Backend) CompleteCheckin(ctx context.Context, sessionID, userID string) (compass.Summary, error) {
	return b.CompleteCheckinFn(ctx, sessionID, userID)
}

// StartMemory delegates to StartMemoryFn.
func (b *Backend) StartMemory(ctx context.Context, userID, topic string) (compass.StartResult, error) {
	return b.StartMemoryFn(ctx, userID, topic)
}

// SendMemory delegates to SendMemoryFn.
func (b *Backend) SendMemory(ctx context.Context, sessionID, userID, text string) (compass.SendResult, error) {
	return b.SendMemoryFn(ctx, sessionID, userID, text)
}

// UpdatePhase delegates to UpdatePhaseFn.
func (b *Backend) UpdatePhase(ctx context.Context, sessionID, userID string, data compass.PhaseData) error {
	return b.UpdatePhaseFn(ctx, sessionID, userID, data)
}

// EmotionHistory delegates to EmotionHistoryFn.
func (b *Backend) EmotionHistory(ctx context.Context, userID string, days int) ([]compass.EmotionEntry, error) {
	return b.EmotionHistoryFn(ctx, userID, days)
}

// RecentSessions delegates to RecentSessionsFn.
func (b *Backend) RecentSessions(ctx context.Context, userID string, limit int) ([]compass.SessionDigest, error) {
	return b.RecentSessionsFn(ctx, userID, limit)
}
