// Package playback sequences assistant response chunks into timed reveal
// steps. The Player owns no clock: it emits wait durations and the caller
// schedules them (the TUI maps each wait to a timer command), so sequences
// are fully testable without real timers.
package playback

import (
	"time"

	"github.com/fwojciec/compass"
)

// Step is a sealed interface over the suspension and action points of a
// playback sequence. The unexported marker method prevents external
// implementations.
type Step interface {
	step()
}

// StepTyping enters the typing state and waits for the chunk's delay.
type StepTyping struct {
	Wait time.Duration
}

// StepReveal appends Content as a new assistant message and exits the
// typing state. It carries no wait; the caller applies it immediately.
type StepReveal struct {
	Content string
}

// StepPause waits between chunks with the typing indicator hidden. Emitted
// only when the finished chunk has a pause and is not the last in sequence.
type StepPause struct {
	Wait time.Duration
}

func (StepTyping) step() {}
func (StepReveal) step() {}
func (StepPause) step()  {}

// Interface compliance checks.
var (
	_ Step = StepTyping{}
	_ Step = StepReveal{}
	_ Step = StepPause{}
)

// chunk-internal positions; each chunk walks typing -> reveal -> after.
const (
	posTyping = iota
	posReveal
	posAfter
)

// Player walks a chunk sequence strictly in order: typing, wait, reveal,
// then an optional inter-chunk pause. It has value semantics — Next returns
// the advanced player — so a stale copy can never double-reveal a chunk.
type Player struct {
	chunks []compass.Chunk
	idx    int
	pos    int
}

// New creates a Player over chunks. An empty sequence is already done and
// never emits a typing step.
func New(chunks []compass.Chunk) Player {
	return Player{chunks: chunks}
}

// Done reports whether the sequence is exhausted.
func (p Player) Done() bool {
	return p.idx >= len(p.chunks)
}

// Remaining returns the number of chunks not yet revealed.
func (p Player) Remaining() int {
	n := len(p.chunks) - p.idx
	if n > 0 && p.pos == posAfter {
		n--
	}
	return max(n, 0)
}

// Next returns the next step and the advanced player. ok is false when the
// sequence is exhausted. Chunk N+1's typing step is never emitted before
// chunk N's reveal has been returned, which is what guarantees transcript
// order.
func (p Player) Next() (Step, Player, bool) {
	for p.idx < len(p.chunks) {
		c := p.chunks[p.idx]
		switch p.pos {
		case posTyping:
			p.pos = posReveal
			return StepTyping{Wait: c.Delay()}, p, true
		case posReveal:
			p.pos = posAfter
			return StepReveal{Content: c.Content}, p, true
		default:
			last := p.idx == len(p.chunks)-1
			p.idx++
			p.pos = posTyping
			if !last && c.PauseAfter > 0 {
				return StepPause{Wait: c.PauseAfter}, p, true
			}
		}
	}
	return nil, p, false
}
