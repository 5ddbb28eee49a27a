package compass

import (
	"fmt"
	"time"
)

// DefaultTypingDelay applies when a chunk arrives without a typing_delay.
const DefaultTypingDelay = 1000 * time.Millisecond

// Chunk is one unit of assistant output with its own reveal timing. A
// backend response is an ordered sequence of zero or more chunks; the client
// reveals them strictly in sequence, never in parallel, never reordered.
type Chunk struct {
	Content     string
	TypingDelay time.Duration // zero means DefaultTypingDelay
	PauseAfter  time.Duration // zero means no trailing pause
}

// Delay returns the effective typing delay for the chunk.
func (c Chunk) Delay() time.Duration {
	if c.TypingDelay <= 0 {
		return DefaultTypingDelay
	}
	return c.TypingDelay
}

// ValidateChunks checks wire constraints on a decoded chunk sequence.
func ValidateChunks(chunks []Chunk) error {
	for i, c := range chunks {
		if c.TypingDelay < 0 {
			return fmt.Errorf("chunk %d: negative typing_delay %v: %w", i, c.TypingDelay, ErrValidation)
		}
		if c.PauseAfter < 0 {
			return fmt.Errorf("chunk %d: negative pause_after %v: %w", i, c.PauseAfter, ErrValidation)
		}
	}
	return nil
}
