// Package render holds the small off-screen rendering helpers shared by the
// scene stack and the transitions: resizable targets, a double buffer and a
// full-screen blit.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Target is a lazily allocated off-screen image that follows a size
type Target struct {
	img *ebiten.Image
}

// Resize makes sure the image is w x h, reallocating only when the size
// changed. The contents are undefined afterwards.
func (t *Target) Resize(w, h int) *ebiten.Image {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if t.img != nil {
		b := t.img.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return t.img
		}
		t.img.Deallocate()
	}
	t.img = ebiten.NewImage(w, h)
	return t.img
}

// Image returns the current image, or nil before the first Resize
func (t *Target) Image() *ebiten.Image {
	return t.img
}

// Fresh resizes the target to w x h and clears it
func (t *Target) Fresh(w, h int) *ebiten.Image {
	img := t.Resize(w, h)
	img.Clear()
	return img
}

// DoubleBuffer is a pair of same-sized targets. Compositing passes draw into
// Front while reading the previous pass from Back, then Swap.
type DoubleBuffer struct {
	front      Target
	back       Target
	clearColor color.Color
	width      int
	height     int
}

// NewDoubleBuffer allocates two w x h targets
func NewDoubleBuffer(w, h int) *DoubleBuffer {
	d := &DoubleBuffer{}
	d.Resize(w, h)
	return d
}

// Resize resizes both targets
func (d *DoubleBuffer) Resize(w, h int) {
	d.front.Resize(w, h)
	d.back.Resize(w, h)
	d.width = d.front.img.Bounds().Dx()
	d.height = d.front.img.Bounds().Dy()
}

// Size returns the size of the targets
func (d *DoubleBuffer) Size() (int, int) {
	return d.width, d.height
}

// SetClearColor sets the colour Clear fills with; nil clears to transparent
func (d *DoubleBuffer) SetClearColor(c color.Color) {
	d.clearColor = c
}

// Front returns the target the current pass draws into
func (d *DoubleBuffer) Front() *ebiten.Image {
	return d.front.img
}

// Back returns the target holding the previous pass
func (d *DoubleBuffer) Back() *ebiten.Image {
	return d.back.img
}

// Swap exchanges front and back
func (d *DoubleBuffer) Swap() {
	d.front, d.back = d.back, d.front
}

// Clear resets img to the clear colour
func (d *DoubleBuffer) Clear(img *ebiten.Image) {
	if d.clearColor == nil {
		img.Clear()
		return
	}
	img.Fill(d.clearColor)
}

// Blit copies src over the whole of dst, scaling when sizes differ
func Blit(dst, src *ebiten.Image) {
	BlitWith(dst, src, 0, 0, 1)
}

// BlitWith copies src scaled to dst's size, translated by (dx, dy) pixels
// and multiplied by alpha
func BlitWith(dst, src *ebiten.Image, dx, dy float64, alpha float32) {
	db, sb := dst.Bounds(), src.Bounds()
	op := &ebiten.DrawImageOptions{}
	if sb.Dx() > 0 && sb.Dy() > 0 && (db.Dx() != sb.Dx() || db.Dy() != sb.Dy()) {
		op.GeoM.Scale(float64(db.Dx())/float64(sb.Dx()), float64(db.Dy())/float64(sb.Dy()))
		op.Filter = ebiten.FilterLinear
	}
	op.GeoM.Translate(dx, dy)
	if alpha < 1 {
		op.ColorScale.ScaleAlpha(alpha)
	}
	dst.DrawImage(src, op)
}
