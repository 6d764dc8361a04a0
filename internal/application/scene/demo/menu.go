package demo

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/younwookim/scenestack/internal/application/frame"
	"github.com/younwookim/scenestack/internal/application/input"
	"github.com/younwookim/scenestack/internal/application/scene"
	"github.com/younwookim/scenestack/internal/application/transition"
)

// MenuItem is one entry of the main menu
type MenuItem int

const (
	MenuPlay MenuItem = iota
	MenuTitle
	MenuQuit
	menuItemCount
)

// String returns the label of the item
func (m MenuItem) String() string {
	switch m {
	case MenuPlay:
		return "Play"
	case MenuTitle:
		return "Back to title"
	case MenuQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Menu is the main menu. It stays on the stack below the game.
type Menu struct {
	scene.Base
	cursor MenuItem
	plays  int
}

// NewMenu creates the menu scene
func NewMenu() *Menu {
	return &Menu{}
}

// Cursor returns the selected item
func (m *Menu) Cursor() MenuItem {
	return m.cursor
}

// Update implements scene.Scene
func (m *Menu) Update(ctx *frame.Context) *scene.Request {
	in := ctx.Input()
	switch {
	case in.JustPressed(input.ActionUp):
		m.cursor = (m.cursor + menuItemCount - 1) % menuItemCount
	case in.JustPressed(input.ActionDown):
		m.cursor = (m.cursor + 1) % menuItemCount
	case ctx.IsInTransition():
		// leaving waits for the transition to end
	case in.JustPressed(input.ActionCancel):
		return scene.Swap(NewTitle()).WithTransition(fade(ctx))
	case in.JustPressed(input.ActionConfirm):
		return m.choose(ctx)
	}
	return nil
}

func (m *Menu) choose(ctx *frame.Context) *scene.Request {
	switch m.cursor {
	case MenuPlay:
		m.plays++
		return scene.Push(NewLoading(uint64(m.plays))).WithTransition(slide(ctx, transition.FromRight))
	case MenuTitle:
		return scene.Swap(NewTitle()).WithTransition(fade(ctx))
	case MenuQuit:
		ctx.Quit()
	}
	return nil
}

// Draw implements scene.Scene
func (m *Menu) Draw(_ *frame.Context, dst *ebiten.Image) {
	dst.Fill(colorBG)
	w := dst.Bounds().Dx()
	centered(dst, "MENU", 40)
	for i := range menuItemCount {
		y := 80 + int(i)*20
		if i == m.cursor {
			ebitenutil.DrawRect(dst, float64(w/2-60), float64(y-2), 120, 16, colorPanel)
			ebitenutil.DrawRect(dst, float64(w/2-70), float64(y+4), 4, 4, colorCursor)
		}
		centered(dst, i.String(), y)
	}
}
