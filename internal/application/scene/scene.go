// Package scene defines the contracts between the scene stack and the
// application: scenes, transitions, overlays and the requests a scene returns
// to change what is on screen.
//
// Each game screen (title, menu, playing, pause, etc.) implements Scene.
// The stack calls it polymorphically; it never knows concrete scene types.
package scene

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/scenestack/internal/application/frame"
)

// Scene represents a game screen managed by the scene stack.
//
// Update and Enter return the scene's next request, or nil to stay put.
// Only the request of the current top scene is applied.
type Scene interface {
	// Enter is called each time the scene becomes the top of the stack:
	// when it is pushed or swapped in, and when a pop reveals it again.
	Enter(ctx *frame.Context) *Request

	// Exit is called when the scene stops being reachable as the top.
	Exit(ctx *frame.Context)

	// Destroy is called once, right before the scene is dropped.
	Destroy(ctx *frame.Context)

	// ContinuousUpdate is called every tick on every live scene,
	// visible or not. Use it for background simulation.
	ContinuousUpdate(ctx *frame.Context)

	// Update is called every tick on the top scene and on every scene
	// still visible through a running transition.
	Update(ctx *frame.Context) *Request

	// Draw renders the scene into dst.
	Draw(ctx *frame.Context, dst *ebiten.Image)
}

// Base provides no-op lifecycle hooks. Embed it and override what you need.
type Base struct{}

// Enter does nothing
func (Base) Enter(*frame.Context) *Request { return nil }

// Exit does nothing
func (Base) Exit(*frame.Context) {}

// Destroy does nothing
func (Base) Destroy(*frame.Context) {}

// ContinuousUpdate does nothing
func (Base) ContinuousUpdate(*frame.Context) {}

// DrawFunc renders something into dst
type DrawFunc func(ctx *frame.Context, dst *ebiten.Image)

// Transition is a visual effect blending an outgoing scene into an incoming
// one over time.
type Transition interface {
	// Draw renders the blend into dst. drawFrom renders the outgoing scene,
	// drawTo the incoming one; either may be called any number of times.
	Draw(ctx *frame.Context, dst *ebiten.Image, drawFrom, drawTo DrawFunc)

	// IsComplete reports whether the transition has finished. Once true it
	// must stay true.
	IsComplete() bool
}

// Overlay is drawn on top of the scene stack every frame (FPS counters,
// debug panels, toasts). Overlays have no lifecycle and never change the stack.
type Overlay interface {
	Update(ctx *frame.Context)
	Draw(ctx *frame.Context, dst *ebiten.Image)
}
