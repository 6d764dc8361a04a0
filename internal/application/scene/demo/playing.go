package demo

import (
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/younwookim/scenestack/internal/application/frame"
	"github.com/younwookim/scenestack/internal/application/input"
	"github.com/younwookim/scenestack/internal/application/scene"
)

const (
	playerSize  = 12.0
	playerSpeed = 120.0 // pixels per second
	pickupRange = 10.0
)

// Playing is the gameplay scene: walk over every coin
type Playing struct {
	scene.Base
	level     Level
	x, y      float64
	collected []bool
	score     int
	elapsed   time.Duration
	twinkle   float64
	entered   int
}

// NewPlaying creates the gameplay scene for lvl
func NewPlaying(lvl Level) *Playing {
	return &Playing{
		level:     lvl,
		x:         float64(lvl.Width)/2 - playerSize/2,
		y:         float64(lvl.Height)/2 - playerSize/2,
		collected: make([]bool, len(lvl.Coins)),
	}
}

// Enter is called on start and again when the pause screen is popped
func (p *Playing) Enter(*frame.Context) *scene.Request {
	p.entered++
	return nil
}

// ContinuousUpdate animates the background, also while paused
func (p *Playing) ContinuousUpdate(ctx *frame.Context) {
	p.twinkle += ctx.DT()
}

// Update implements scene.Scene
func (p *Playing) Update(ctx *frame.Context) *scene.Request {
	in := ctx.Input()
	if !ctx.IsInTransition() {
		if in.JustPressed(input.ActionPause) {
			return scene.Push(NewPause(p.Draw)).WithTransition(fade(ctx))
		}
		if in.JustPressed(input.ActionCancel) {
			return p.finish(ctx)
		}
	}

	dt := ctx.DT()
	p.elapsed += time.Duration(dt * float64(time.Second))
	p.move(in, dt)
	p.collect()

	if p.Remaining() == 0 {
		return p.finish(ctx)
	}
	return nil
}

func (p *Playing) move(in input.State, dt float64) {
	var dx, dy float64
	if in.Pressed(input.ActionLeft) {
		dx--
	}
	if in.Pressed(input.ActionRight) {
		dx++
	}
	if in.Pressed(input.ActionUp) {
		dy--
	}
	if in.Pressed(input.ActionDown) {
		dy++
	}
	if dx != 0 && dy != 0 {
		dx, dy = dx/math.Sqrt2, dy/math.Sqrt2
	}

	p.x = clamp(p.x+dx*playerSpeed*dt, 0, float64(p.level.Width)-playerSize)
	p.y = clamp(p.y+dy*playerSpeed*dt, 0, float64(p.level.Height)-playerSize)
}

func (p *Playing) collect() {
	cx, cy := p.x+playerSize/2, p.y+playerSize/2
	for i, c := range p.level.Coins {
		if p.collected[i] {
			continue
		}
		if math.Hypot(c.X-cx, c.Y-cy) <= pickupRange {
			p.collected[i] = true
			p.score += 10
		}
	}
}

// finish replaces both the game and the menu below it with the results
func (p *Playing) finish(ctx *frame.Context) *scene.Request {
	return scene.PopSwap(NewResults(p.score, p.Remaining() == 0, p.elapsed)).WithTransition(blackFade(ctx))
}

// Remaining returns the number of coins left
func (p *Playing) Remaining() int {
	n := 0
	for _, c := range p.collected {
		if !c {
			n++
		}
	}
	return n
}

// Score returns the points collected so far
func (p *Playing) Score() int {
	return p.score
}

// Position returns the top-left corner of the player
func (p *Playing) Position() (float64, float64) {
	return p.x, p.y
}

// Draw implements scene.Scene
func (p *Playing) Draw(_ *frame.Context, dst *ebiten.Image) {
	dst.Fill(colorBG)

	for i := 0; i < 16; i++ {
		phase := p.twinkle*2 + float64(i)
		if math.Sin(phase) < 0 {
			continue
		}
		sx := float64((i*73 + 17) % max(p.level.Width, 1))
		sy := float64((i*41 + 29) % max(p.level.Height, 1))
		ebitenutil.DrawRect(dst, sx, sy, 1, 1, colorStar)
	}

	for i, c := range p.level.Coins {
		if p.collected[i] {
			continue
		}
		ebitenutil.DrawRect(dst, c.X-3, c.Y-3, 6, 6, colorCoin)
	}
	ebitenutil.DrawRect(dst, p.x, p.y, playerSize, playerSize, colorPlayer)

	ebitenutil.DebugPrint(dst, fmt.Sprintf("Score: %d  Left: %d  Time: %.1fs", p.score, p.Remaining(), p.elapsed.Seconds()))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
