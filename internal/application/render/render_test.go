package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTarget_Resize(t *testing.T) {
	var tg Target
	assert.Nil(t, tg.Image())

	img := tg.Resize(32, 16)
	require.NotNil(t, img)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())

	same := tg.Resize(32, 16)
	assert.Same(t, img, same, "same size keeps the image")

	bigger := tg.Resize(64, 16)
	assert.NotSame(t, img, bigger)
	assert.Equal(t, 64, bigger.Bounds().Dx())
}

func TestTarget_ResizeClampsToOnePixel(t *testing.T) {
	var tg Target

	img := tg.Resize(0, -5)

	assert.Equal(t, 1, img.Bounds().Dx())
	assert.Equal(t, 1, img.Bounds().Dy())
}

func TestDoubleBuffer_Swap(t *testing.T) {
	d := NewDoubleBuffer(320, 240)
	front, back := d.Front(), d.Back()

	require.NotSame(t, front, back)

	d.Swap()
	assert.Same(t, back, d.Front())
	assert.Same(t, front, d.Back())

	w, h := d.Size()
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)
}

func TestDoubleBuffer_Resize(t *testing.T) {
	d := NewDoubleBuffer(320, 240)

	d.Resize(640, 480)

	w, h := d.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
	assert.Equal(t, 640, d.Back().Bounds().Dx())
}

func TestDoubleBuffer_ClearAndBlitDoNotPanic(t *testing.T) {
	d := NewDoubleBuffer(8, 8)
	d.SetClearColor(color.RGBA{26, 26, 46, 255})

	assert.NotPanics(t, func() {
		d.Clear(d.Front())
		Blit(d.Back(), d.Front())
		BlitWith(d.Back(), d.Front(), 2, 0, 0.5)
	})
}
