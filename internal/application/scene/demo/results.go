package demo

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/scenestack/internal/application/frame"
	"github.com/younwookim/scenestack/internal/application/input"
	"github.com/younwookim/scenestack/internal/application/scene"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Results shows the outcome of a game and leads back to the title
type Results struct {
	scene.Base
	score   int
	cleared bool
	elapsed time.Duration
}

// NewResults creates the results scene
func NewResults(score int, cleared bool, elapsed time.Duration) *Results {
	return &Results{score: score, cleared: cleared, elapsed: elapsed}
}

// Update implements scene.Scene
func (r *Results) Update(ctx *frame.Context) *scene.Request {
	if ctx.Input().JustPressed(input.ActionConfirm) {
		return scene.Swap(NewTitle()).WithTransition(fade(ctx))
	}
	return nil
}

// Lines returns the heading, score and time lines
func (r *Results) Lines() []string {
	heading := "GAME OVER"
	if r.cleared {
		heading = "CLEARED!"
	}
	return []string{
		heading,
		printer.Sprintf("Score: %d", r.score),
		printer.Sprintf("Time: %.1fs", r.elapsed.Seconds()),
	}
}

// Draw implements scene.Scene
func (r *Results) Draw(_ *frame.Context, dst *ebiten.Image) {
	dst.Fill(colorBG)
	h := dst.Bounds().Dy()
	lines := r.Lines()
	centered(dst, lines[0], h/3)
	centered(dst, lines[1], h/3+20)
	centered(dst, lines[2], h/3+36)
	centered(dst, "Press Enter", h-40)
}
