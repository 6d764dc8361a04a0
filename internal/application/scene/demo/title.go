package demo

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/scenestack/internal/application/frame"
	"github.com/younwookim/scenestack/internal/application/input"
	"github.com/younwookim/scenestack/internal/application/scene"
)

// Title is the first screen
type Title struct {
	scene.Base
	shown time.Duration
}

// NewTitle creates the title scene
func NewTitle() *Title {
	return &Title{}
}

// Enter resets the prompt animation
func (t *Title) Enter(*frame.Context) *scene.Request {
	t.shown = 0
	return nil
}

// ContinuousUpdate keeps the prompt blinking even while the title fades out
func (t *Title) ContinuousUpdate(ctx *frame.Context) {
	t.shown += time.Duration(ctx.DT() * float64(time.Second))
}

// Update implements scene.Scene
func (t *Title) Update(ctx *frame.Context) *scene.Request {
	in := ctx.Input()
	switch {
	case in.JustPressed(input.ActionConfirm):
		return scene.Swap(NewMenu()).WithTransition(blackFade(ctx))
	case in.JustPressed(input.ActionCancel):
		ctx.Quit()
	}
	return nil
}

// Draw implements scene.Scene
func (t *Title) Draw(_ *frame.Context, dst *ebiten.Image) {
	dst.Fill(colorBG)
	h := dst.Bounds().Dy()
	centered(dst, "SCENE STACK", h/3)
	if blink(t.shown) {
		centered(dst, "Press Enter", h/2)
	}
	centered(dst, "X: quit", h-24)
}
