// Package transition provides ready-made scene transitions driven by the
// frame clock.
package transition

import (
	"time"

	"github.com/younwookim/scenestack/internal/application/frame"
)

// timer measures progress from the first frame it is asked about, either by
// a completion check or by a draw. Both read the frame clock, so a run with
// a fixed-step clock times its transitions identically on every replay.
type timer struct {
	clock    *frame.Context
	duration time.Duration
	began    time.Time
	started  bool
}

func newTimer(ctx *frame.Context, d time.Duration) timer {
	return timer{clock: ctx, duration: d}
}

func (t *timer) elapsed() time.Duration {
	now := t.clock.Now()
	if !t.started {
		t.began = now
		t.started = true
	}
	return now.Sub(t.began)
}

// progress returns a value in [0, 1]
func (t *timer) progress() float64 {
	e := t.elapsed()
	if t.duration <= 0 {
		return 1
	}
	p := float64(e) / float64(t.duration)
	return min(max(p, 0), 1)
}

// done reports whether the full duration has passed
func (t *timer) done() bool {
	return t.elapsed() >= t.duration
}
