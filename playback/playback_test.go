package playback_test

import (
	"testing"
	"time"

	"github.com/fwojciec/compass"
	"github.com/fwojciec/compass/playback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain collects every step of a sequence in order.
func drain(t *testing.T, p playback.Player) []playback.Step {
	t.Helper()
	var steps []playback.Step
	for {
		step, next, ok := p.Next()
		if !ok {
			return steps
		}
		p = next
		steps = append(steps, step)
	}
}

func TestPlayer_EmptySequence(t *testing.T) {
	t.Parallel()

	p := playback.New(nil)
	assert.True(t, p.Done())

	steps := drain(t, p)
	assert.Empty(t, steps, "empty chunk list is a no-op: no typing step ever emitted")
}

func TestPlayer_SingleChunk(t *testing.T) {
	t.Parallel()

	p := playback.New([]compass.Chunk{{Content: "Hi", TypingDelay: 500 * time.Millisecond}})
	steps := drain(t, p)

	require.Len(t, steps, 2)
	assert.Equal(t, playback.StepTyping{Wait: 500 * time.Millisecond}, steps[0])
	assert.Equal(t, playback.StepReveal{Content: "Hi"}, steps[1])
}

func TestPlayer_DefaultTypingDelay(t *testing.T) {
	t.Parallel()

	p := playback.New([]compass.Chunk{{Content: "Hi"}})
	step, _, ok := p.Next()
	require.True(t, ok)
	assert.Equal(t, playback.StepTyping{Wait: compass.DefaultTypingDelay}, step)
}

func TestPlayer_PauseBetweenChunks(t *testing.T) {
	t.Parallel()

	// A reveals at t~100ms, then a 200ms gap, then B at t~400ms.
	p := playback.New([]compass.Chunk{
		{Content: "A", TypingDelay: 100 * time.Millisecond, PauseAfter: 200 * time.Millisecond},
		{Content: "B", TypingDelay: 100 * time.Millisecond},
	})
	steps := drain(t, p)

	require.Len(t, steps, 5)
	assert.Equal(t, playback.StepTyping{Wait: 100 * time.Millisecond}, steps[0])
	assert.Equal(t, playback.StepReveal{Content: "A"}, steps[1])
	assert.Equal(t, playback.StepPause{Wait: 200 * time.Millisecond}, steps[2])
	assert.Equal(t, playback.StepTyping{Wait: 100 * time.Millisecond}, steps[3])
	assert.Equal(t, playback.StepReveal{Content: "B"}, steps[4])
}

func TestPlayer_NoTrailingPause(t *testing.T) {
	t.Parallel()

	// pause_after on the final chunk is ignored: the sequence ends at the
	// last reveal with the typing indicator already cleared.
	p := playback.New([]compass.Chunk{
		{Content: "only", TypingDelay: 50 * time.Millisecond, PauseAfter: 999 * time.Millisecond},
	})
	steps := drain(t, p)

	require.Len(t, steps, 2)
	_, isReveal := steps[len(steps)-1].(playback.StepReveal)
	assert.True(t, isReveal)
}

func TestPlayer_NoPauseWhenAbsent(t *testing.T) {
	t.Parallel()

	p := playback.New([]compass.Chunk{
		{Content: "A", TypingDelay: 50 * time.Millisecond},
		{Content: "B", TypingDelay: 50 * time.Millisecond},
	})
	steps := drain(t, p)

	require.Len(t, steps, 4)
	for _, s := range steps {
		_, isPause := s.(playback.StepPause)
		assert.False(t, isPause)
	}
}

func TestPlayer_RevealsAllChunksInOrder(t *testing.T) {
	t.Parallel()

	chunks := []compass.Chunk{
		{Content: "one", PauseAfter: 100 * time.Millisecond},
		{Content: "two"},
		{Content: "three", PauseAfter: 50 * time.Millisecond},
		{Content: "four"},
	}
	p := playback.New(chunks)

	var revealed []string
	typing := false
	for {
		step, next, ok := p.Next()
		if !ok {
			break
		}
		p = next
		switch s := step.(type) {
		case playback.StepTyping:
			assert.False(t, typing, "typing flag must be fully cleared before re-entering")
			typing = true
		case playback.StepReveal:
			require.True(t, typing, "every reveal is preceded by a typing step")
			typing = false
			revealed = append(revealed, s.Content)
		case playback.StepPause:
			assert.False(t, typing, "indicator is hidden during inter-chunk pauses")
		}
	}

	// Exactly N messages, strictly in input order.
	assert.Equal(t, []string{"one", "two", "three", "four"}, revealed)
	assert.False(t, typing, "no indicator after full-sequence completion")
	assert.True(t, p.Done())
}

func TestPlayer_Remaining(t *testing.T) {
	t.Parallel()

	p := playback.New([]compass.Chunk{{Content: "A"}, {Content: "B"}})
	assert.Equal(t, 2, p.Remaining())

	_, p, _ = p.Next() // typing A
	assert.Equal(t, 2, p.Remaining())
	_, p, _ = p.Next() // reveal A
	assert.Equal(t, 1, p.Remaining())
	_, p, _ = p.Next() // typing B
	_, p, _ = p.Next() // reveal B
	assert.Equal(t, 0, p.Remaining())
}

func TestPlayer_StaleCopyCannotDoubleReveal(t *testing.T) {
	t.Parallel()

	p := playback.New([]compass.Chunk{{Content: "A"}})
	_, advanced, _ := p.Next()

	// Calling Next on the original copy again yields the same step, not a
	// skipped one: progress only lives in the returned player.
	step, _, ok := p.Next()
	require.True(t, ok)
	assert.Equal(t, playback.StepTyping{Wait: compass.DefaultTypingDelay}, step)

	step, _, ok = advanced.Next()
	require.True(t, ok)
	assert.Equal(t, playback.StepReveal{Content: "A"}, step)
}
