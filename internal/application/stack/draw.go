package stack

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/scenestack/internal/application/frame"
	"github.com/younwookim/scenestack/internal/application/render"
)

// Draw composites the visible scenes into buf. The top scene is drawn first;
// each transition of the chain, newest first, then blends its from-scene with
// everything composited so far. The result is left in buf.Front().
func (m *Manager) Draw(ctx *frame.Context, buf *render.DoubleBuffer) {
	front := buf.Front()
	buf.Clear(front)
	m.node(m.Top()).scene.Draw(ctx, front)

	for _, i := range m.trackers.unwind(m.Top()) {
		t := m.trackers.at(i)
		buf.Swap()
		front = buf.Front()
		back := buf.Back()
		buf.Clear(front)

		from := m.node(t.from).scene
		drawFrom := func(ctx *frame.Context, dst *ebiten.Image) {
			from.Draw(ctx, dst)
		}
		drawTo := func(_ *frame.Context, dst *ebiten.Image) {
			render.Blit(dst, back)
		}
		t.transition.Draw(ctx, front, drawFrom, drawTo)
	}
}
