package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/scenestack/internal/application/input"
)

// stepClock returns a clock that advances by step on every call
func stepClock(start time.Time, step time.Duration) func() time.Time {
	now := start
	return func() time.Time {
		t := now
		now = now.Add(step)
		return t
	}
}

func TestNew_Defaults(t *testing.T) {
	c := New()

	assert.Equal(t, uint64(0), c.Tick())
	assert.InDelta(t, 1.0/60.0, c.DT(), 1e-9)
	assert.Nil(t, c.Tasks())
	assert.False(t, c.IsInTransition())
	assert.False(t, c.IsQuitting())
}

func TestBegin_AdvancesTickClockAndInput(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New(WithClock(stepClock(start, 16*time.Millisecond)))

	c.Begin(input.StateOf(input.ActionConfirm))

	assert.Equal(t, uint64(1), c.Tick())
	assert.Equal(t, start.Add(16*time.Millisecond), c.Now())
	assert.Equal(t, 16*time.Millisecond, c.Elapsed())
	assert.True(t, c.Input().JustPressed(input.ActionConfirm))

	c.Begin(input.State{})

	assert.Equal(t, uint64(2), c.Tick())
	assert.Equal(t, 32*time.Millisecond, c.Elapsed())
	assert.False(t, c.Input().JustPressed(input.ActionConfirm))
}

func TestBegin_FixedStepIgnoresClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New(WithClock(stepClock(start, time.Hour)), WithDT(0.25), WithFixedStep())

	c.Begin(input.State{})
	c.Begin(input.State{})
	assert.Equal(t, start.Add(500*time.Millisecond), c.Now())

	c.SetDT(0.5)
	c.Begin(input.State{})
	assert.Equal(t, time.Second, c.Elapsed())
}

func TestQuitFlags(t *testing.T) {
	c := New()

	c.Quit()
	assert.True(t, c.IsQuitting())

	c.CancelQuit()
	assert.False(t, c.IsQuitting())
}

func TestResolutionAndDurations(t *testing.T) {
	c := New(WithResolution(320, 240), WithDT(0.5))

	w, h := c.Resolution()
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)
	assert.Equal(t, 0.5, c.DT())

	c.SetResolution(640, 480)
	c.SetUpdateDuration(time.Millisecond)
	c.SetDrawDuration(2 * time.Millisecond)

	w, h = c.Resolution()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
	assert.Equal(t, time.Millisecond, c.UpdateDuration())
	assert.Equal(t, 2*time.Millisecond, c.DrawDuration())
}

type scoreBoard struct {
	Best int
}

func TestResources(t *testing.T) {
	c := New()

	_, ok := Resource[*scoreBoard](c)
	assert.False(t, ok)

	SetResource(c, &scoreBoard{Best: 10})
	SetResource(c, "font-name")

	board, ok := Resource[*scoreBoard](c)
	require.True(t, ok)
	assert.Equal(t, 10, board.Best)

	name, ok := Resource[string](c)
	require.True(t, ok)
	assert.Equal(t, "font-name", name)

	SetResource(c, &scoreBoard{Best: 20})
	board, _ = Resource[*scoreBoard](c)
	assert.Equal(t, 20, board.Best, "SetResource replaces by type")
}
