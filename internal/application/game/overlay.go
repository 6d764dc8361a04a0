package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/younwookim/scenestack/internal/application/frame"
	"github.com/younwookim/scenestack/internal/application/input"
	"github.com/younwookim/scenestack/internal/application/stack"
)

// DebugOverlay prints stack and timing information in the top-left corner.
// input.ActionDebug toggles it.
type DebugOverlay struct {
	stack   *stack.Manager
	visible bool
	text    string
}

// NewDebugOverlay creates a visible overlay for m
func NewDebugOverlay(m *stack.Manager) *DebugOverlay {
	return &DebugOverlay{stack: m, visible: true}
}

// Update refreshes the text
func (d *DebugOverlay) Update(ctx *frame.Context) {
	if ctx.Input().JustPressed(input.ActionDebug) {
		d.visible = !d.visible
	}
	d.text = d.format(ctx)
}

func (d *DebugOverlay) format(ctx *frame.Context) string {
	return fmt.Sprintf("TPS %.0f  tick %d\ndepth %d  scenes %d  transitions %d\nupdate %s  draw %s",
		ebiten.ActualTPS(), ctx.Tick(),
		d.stack.Depth(), d.stack.SceneCount(), d.stack.TransitionCount(),
		ctx.UpdateDuration(), ctx.DrawDuration())
}

// Visible reports whether the overlay is drawn
func (d *DebugOverlay) Visible() bool {
	return d.visible
}

// Draw prints the text
func (d *DebugOverlay) Draw(_ *frame.Context, dst *ebiten.Image) {
	if !d.visible {
		return
	}
	ebitenutil.DebugPrintAt(dst, d.text, 4, 4)
}
