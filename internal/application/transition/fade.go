package transition

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/scenestack/internal/application/frame"
	"github.com/younwookim/scenestack/internal/application/render"
	"github.com/younwookim/scenestack/internal/application/scene"
)

// Fade cross-fades from the previous scene to the next one
type Fade struct {
	timer timer
	from  render.Target
}

// NewFade creates a cross-fade lasting d
func NewFade(ctx *frame.Context, d time.Duration) *Fade {
	return &Fade{timer: newTimer(ctx, d)}
}

// Draw implements scene.Transition
func (f *Fade) Draw(ctx *frame.Context, dst *ebiten.Image, drawFrom, drawTo scene.DrawFunc) {
	p := f.timer.progress()
	b := dst.Bounds()

	drawTo(ctx, dst)
	if p >= 1 {
		return
	}
	from := f.from.Fresh(b.Dx(), b.Dy())
	drawFrom(ctx, from)
	render.BlitWith(dst, from, 0, 0, float32(1-p))
}

// IsComplete implements scene.Transition
func (f *Fade) IsComplete() bool {
	return f.timer.done()
}

// ColorFade fades the previous scene out to a solid colour, then fades the
// next scene in from it
type ColorFade struct {
	timer timer
	color color.Color
	from  render.Target
	to    render.Target
}

// NewColorFade creates a fade through c lasting d in total
func NewColorFade(ctx *frame.Context, c color.Color, d time.Duration) *ColorFade {
	return &ColorFade{timer: newTimer(ctx, d), color: c}
}

// NewBlackFade is a ColorFade through black
func NewBlackFade(ctx *frame.Context, d time.Duration) *ColorFade {
	return NewColorFade(ctx, color.Black, d)
}

// Draw implements scene.Transition
func (f *ColorFade) Draw(ctx *frame.Context, dst *ebiten.Image, drawFrom, drawTo scene.DrawFunc) {
	p := f.timer.progress()
	b := dst.Bounds()

	dst.Fill(f.color)
	if p < 0.5 {
		from := f.from.Fresh(b.Dx(), b.Dy())
		drawFrom(ctx, from)
		render.BlitWith(dst, from, 0, 0, float32(1-p*2))
		return
	}
	to := f.to.Fresh(b.Dx(), b.Dy())
	drawTo(ctx, to)
	render.BlitWith(dst, to, 0, 0, float32(p*2-1))
}

// IsComplete implements scene.Transition
func (f *ColorFade) IsComplete() bool {
	return f.timer.done()
}
