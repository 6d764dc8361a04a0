package transition

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/scenestack/internal/application/frame"
	"github.com/younwookim/scenestack/internal/application/render"
	"github.com/younwookim/scenestack/internal/application/scene"
)

// Direction is the side the next scene slides in from
type Direction int

const (
	FromRight Direction = iota
	FromLeft
	FromBottom
	FromTop
)

// String returns the string representation of the direction
func (d Direction) String() string {
	switch d {
	case FromRight:
		return "FromRight"
	case FromLeft:
		return "FromLeft"
	case FromBottom:
		return "FromBottom"
	case FromTop:
		return "FromTop"
	default:
		return "Unknown"
	}
}

// vector is the unit offset of the incoming scene at the start
func (d Direction) vector() (float64, float64) {
	switch d {
	case FromLeft:
		return -1, 0
	case FromBottom:
		return 0, 1
	case FromTop:
		return 0, -1
	default:
		return 1, 0
	}
}

// Slide pushes the previous scene out while the next one slides in
type Slide struct {
	timer     timer
	direction Direction
	from      render.Target
	to        render.Target
}

// NewSlide creates a slide lasting d
func NewSlide(ctx *frame.Context, dir Direction, d time.Duration) *Slide {
	return &Slide{timer: newTimer(ctx, d), direction: dir}
}

// Offsets returns the pixel offsets of the previous and next scene at
// progress p for a w x h target
func (s *Slide) Offsets(p float64, w, h int) (fromX, fromY, toX, toY float64) {
	vx, vy := s.direction.vector()
	fw, fh := float64(w), float64(h)
	return -vx * p * fw, -vy * p * fh, vx * (1 - p) * fw, vy * (1 - p) * fh
}

// Draw implements scene.Transition
func (s *Slide) Draw(ctx *frame.Context, dst *ebiten.Image, drawFrom, drawTo scene.DrawFunc) {
	p := s.timer.progress()
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()

	from := s.from.Fresh(w, h)
	drawFrom(ctx, from)
	to := s.to.Fresh(w, h)
	drawTo(ctx, to)

	fx, fy, tx, ty := s.Offsets(p, w, h)
	render.BlitWith(dst, from, fx, fy, 1)
	render.BlitWith(dst, to, tx, ty, 1)
}

// IsComplete implements scene.Transition
func (s *Slide) IsComplete() bool {
	return s.timer.done()
}
