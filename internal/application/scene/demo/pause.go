package demo

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/younwookim/scenestack/internal/application/frame"
	"github.com/younwookim/scenestack/internal/application/input"
	"github.com/younwookim/scenestack/internal/application/scene"
)

// Pause is pushed over the game. It draws the paused game dimmed behind it.
type Pause struct {
	scene.Base
	background scene.DrawFunc
}

// NewPause creates a pause screen drawing background behind itself
func NewPause(background scene.DrawFunc) *Pause {
	return &Pause{background: background}
}

// Update implements scene.Scene
func (p *Pause) Update(ctx *frame.Context) *scene.Request {
	in := ctx.Input()
	switch {
	case in.JustPressed(input.ActionPause), in.JustPressed(input.ActionConfirm):
		return scene.Pop().WithTransition(fade(ctx))
	case in.JustPressed(input.ActionCancel):
		ctx.Quit()
	}
	return nil
}

// Draw implements scene.Scene
func (p *Pause) Draw(ctx *frame.Context, dst *ebiten.Image) {
	if p.background != nil {
		p.background(ctx, dst)
	}
	b := dst.Bounds()
	ebitenutil.DrawRect(dst, 0, 0, float64(b.Dx()), float64(b.Dy()), colorDim)
	centered(dst, "PAUSED", b.Dy()/2-20)
	centered(dst, "Esc: resume  X: quit", b.Dy()/2)
}
