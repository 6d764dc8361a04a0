package demo

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/younwookim/scenestack/internal/application/frame"
	"github.com/younwookim/scenestack/internal/application/input"
	"github.com/younwookim/scenestack/internal/application/scene"
	"github.com/younwookim/scenestack/internal/application/task"
	"github.com/younwookim/scenestack/internal/application/transition"
	"go.uber.org/atomic"
)

const (
	levelCoins     = 8
	levelSteps     = 10
	levelStepDelay = 40 * time.Millisecond
	// the level is handed over on this many ticks after Enter, whatever the
	// speed of the worker, so replays reach the game on the same tick
	loadingTicks = 30
)

// Point is a position in screen pixels
type Point struct {
	X, Y float64
}

// Level is what the loading screen builds for the game
type Level struct {
	Seed   uint64
	Width  int
	Height int
	Coins  []Point
}

// GenerateLevel places coins deterministically for seed. Work is split in
// steps separated by stepDelay; progress, if not nil, receives the number of
// finished steps.
func GenerateLevel(ctx context.Context, seed uint64, w, h int, stepDelay time.Duration, progress *atomic.Int32) (Level, error) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	lvl := Level{Seed: seed, Width: w, Height: h}

	for step := 0; step < levelSteps; step++ {
		if step*levelCoins/levelSteps < (step+1)*levelCoins/levelSteps {
			lvl.Coins = append(lvl.Coins, Point{
				X: float64(8 + rng.IntN(max(w-16, 1))),
				Y: float64(24 + rng.IntN(max(h-32, 1))),
			})
		}
		if stepDelay > 0 {
			select {
			case <-ctx.Done():
				return Level{}, ctx.Err()
			case <-time.After(stepDelay):
			}
		}
		if progress != nil {
			progress.Store(int32(step + 1))
		}
	}

	return lvl, nil
}

// Loading builds a level in the background and hands over to Playing
type Loading struct {
	scene.Base
	seed      uint64
	stepDelay time.Duration
	progress  atomic.Int32
	job       *task.Task[Level]
	ticks     int
	handed    bool
	err       error
}

// NewLoading creates a loading scene for the level with the given seed
func NewLoading(seed uint64) *Loading {
	return &Loading{seed: seed, stepDelay: levelStepDelay}
}

// Enter starts generating the level
func (l *Loading) Enter(ctx *frame.Context) *scene.Request {
	if l.job != nil {
		return nil
	}
	w, h := ctx.Resolution()
	work := func(c context.Context) (Level, error) {
		return GenerateLevel(c, l.seed, w, h, l.stepDelay, &l.progress)
	}

	if ctx.Tasks() == nil {
		lvl, err := work(context.Background())
		l.job = &task.Task[Level]{}
		return l.finish(ctx, lvl, err)
	}
	l.job = task.Spawn(ctx.Tasks(), work)
	return nil
}

// Update counts ticks and collects the level once loadingTicks have passed
func (l *Loading) Update(ctx *frame.Context) *scene.Request {
	if l.handed {
		return nil
	}
	if ctx.Input().JustPressed(input.ActionCancel) {
		l.job.Cancel()
		return scene.Pop().WithTransition(slide(ctx, transition.FromLeft))
	}
	if l.err != nil {
		if ctx.Input().JustPressed(input.ActionConfirm) {
			return scene.Pop()
		}
		return nil
	}

	l.ticks++
	if l.ticks < loadingTicks {
		return nil
	}
	lvl, err := l.job.Wait(context.Background())
	return l.finish(ctx, lvl, err)
}

func (l *Loading) finish(ctx *frame.Context, lvl Level, err error) *scene.Request {
	if err != nil {
		l.err = err
		return nil
	}

	l.handed = true
	next := NewPlaying(lvl)
	next.Enter(ctx)
	return scene.Swap(next).Entered().WithTransition(fade(ctx))
}

// Destroy stops the generator if it is still running
func (l *Loading) Destroy(*frame.Context) {
	if l.job != nil {
		l.job.Cancel()
	}
}

// Progress returns the fraction of the loading screen that has passed,
// held back while the worker is behind
func (l *Loading) Progress() float64 {
	built := float64(l.progress.Load()) / levelSteps
	return min(float64(l.ticks)/loadingTicks, built)
}

// Err returns the generation error, if any
func (l *Loading) Err() error {
	return l.err
}

// Draw implements scene.Scene
func (l *Loading) Draw(_ *frame.Context, dst *ebiten.Image) {
	dst.Fill(colorBG)
	b := dst.Bounds()
	if l.err != nil {
		centered(dst, fmt.Sprintf("Loading failed: %v", l.err), b.Dy()/2)
		return
	}

	centered(dst, fmt.Sprintf("Loading level %d", l.seed), b.Dy()/2-20)
	barW := float64(b.Dx() - 80)
	ebitenutil.DrawRect(dst, 40, float64(b.Dy()/2), barW, 8, colorPanel)
	ebitenutil.DrawRect(dst, 40, float64(b.Dy()/2), barW*l.Progress(), 8, colorProgress)
}
