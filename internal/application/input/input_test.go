package input

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is a test double for the Source interface
type fakeSource struct {
	pressed     map[ebiten.Key]bool
	justPressed map[ebiten.Key]bool
	mouseX      int
	mouseY      int
	click       bool
}

func (f *fakeSource) IsKeyPressed(key ebiten.Key) bool     { return f.pressed[key] }
func (f *fakeSource) IsKeyJustPressed(key ebiten.Key) bool { return f.justPressed[key] }
func (f *fakeSource) CursorPosition() (int, int)           { return f.mouseX, f.mouseY }
func (f *fakeSource) IsMouseButtonJustPressed(button ebiten.MouseButton) bool {
	return button == ebiten.MouseButtonLeft && f.click
}

func TestAction_String(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionUp, "Up"},
		{ActionDown, "Down"},
		{ActionLeft, "Left"},
		{ActionRight, "Right"},
		{ActionConfirm, "Confirm"},
		{ActionCancel, "Cancel"},
		{ActionPause, "Pause"},
		{ActionDebug, "Debug"},
		{Action(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.action.String())
		})
	}
}

func TestNewReaderWithSource_DefaultBindings(t *testing.T) {
	r := NewReaderWithSource(&fakeSource{}, nil)

	require.NotNil(t, r)
	assert.Contains(t, r.bindings[ActionPause], ebiten.KeyEscape)
}

func TestReader_Read(t *testing.T) {
	src := &fakeSource{
		pressed: map[ebiten.Key]bool{
			ebiten.KeyW:     true,
			ebiten.KeyEnter: true,
		},
		justPressed: map[ebiten.Key]bool{
			ebiten.KeyEnter: true,
		},
		mouseX: 12,
		mouseY: 34,
		click:  true,
	}
	r := NewReaderWithSource(src, DefaultBindings())

	s := r.Read()

	assert.True(t, s.Pressed(ActionUp), "W is bound to Up")
	assert.False(t, s.JustPressed(ActionUp), "W was held, not just pressed")
	assert.True(t, s.Pressed(ActionConfirm))
	assert.True(t, s.JustPressed(ActionConfirm))
	assert.False(t, s.Pressed(ActionPause))
	assert.Equal(t, 12, s.MouseX)
	assert.Equal(t, 34, s.MouseY)
	assert.True(t, s.MouseClick)
}

func TestReader_CustomBindings(t *testing.T) {
	src := &fakeSource{
		justPressed: map[ebiten.Key]bool{ebiten.KeyP: true},
	}
	r := NewReaderWithSource(src, Bindings{ActionPause: {ebiten.KeyP}})

	s := r.Read()

	assert.True(t, s.JustPressed(ActionPause))
	assert.False(t, s.JustPressed(ActionConfirm), "unbound action stays false")
}

func TestStateOf(t *testing.T) {
	s := StateOf(ActionConfirm, Action(-1), Action(99))

	assert.True(t, s.Pressed(ActionConfirm))
	assert.True(t, s.JustPressed(ActionConfirm))
	assert.False(t, s.JustPressed(ActionCancel))
	assert.False(t, s.JustPressed(Action(99)), "out of range action is ignored")
}

func TestState_MaskRoundTrip(t *testing.T) {
	s := StateOf(ActionLeft, ActionPause)
	s.pressed[ActionUp] = true

	pressed, just := s.Mask()

	assert.Equal(t, uint32(1<<ActionLeft|1<<ActionPause|1<<ActionUp), pressed)
	assert.Equal(t, uint32(1<<ActionLeft|1<<ActionPause), just)
	assert.Equal(t, s, FromMask(pressed, just))
}
