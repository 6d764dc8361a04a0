// Package demo provides the sample scenes shipped with the game binary:
// title, menu, loading, playing, pause and results. Together they exercise
// every kind of stack request, with and without transitions.
package demo

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/younwookim/scenestack/internal/application/frame"
	"github.com/younwookim/scenestack/internal/application/transition"
	"github.com/younwookim/scenestack/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorPanel    = color.RGBA{40, 40, 70, 255}
	colorCursor   = color.RGBA{255, 215, 0, 255}
	colorPlayer   = color.RGBA{100, 200, 100, 255}
	colorCoin     = color.RGBA{255, 215, 0, 255}
	colorStar     = color.RGBA{200, 200, 255, 255}
	colorDim      = color.RGBA{0, 0, 0, 128}
	colorProgress = color.RGBA{100, 200, 100, 255}
)

// transitions returns the configured durations, or the defaults when the
// game was started without a config resource
func transitions(ctx *frame.Context) config.TransitionConfig {
	if cfg, ok := frame.Resource[config.TransitionConfig](ctx); ok {
		return cfg
	}
	return config.Default().Transitions
}

func fade(ctx *frame.Context) *transition.Fade {
	return transition.NewFade(ctx, transitions(ctx).Fade())
}

func blackFade(ctx *frame.Context) *transition.ColorFade {
	return transition.NewBlackFade(ctx, transitions(ctx).Fade())
}

func slide(ctx *frame.Context, dir transition.Direction) *transition.Slide {
	return transition.NewSlide(ctx, dir, transitions(ctx).Slide())
}

// centered prints text roughly centred on dst at row y.
// The debug font is 6 pixels wide.
func centered(dst *ebiten.Image, text string, y int) {
	x := (dst.Bounds().Dx() - len(text)*6) / 2
	ebitenutil.DebugPrintAt(dst, text, x, y)
}

// blink is on for half of every second
func blink(elapsed time.Duration) bool {
	return elapsed%time.Second < 500*time.Millisecond
}
