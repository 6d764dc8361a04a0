// Package input turns raw ebiten key and mouse state into a per-tick snapshot
// of abstract actions.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is an abstract input the scenes react to
type Action int

const (
	ActionUp Action = iota
	ActionDown
	ActionLeft
	ActionRight
	ActionConfirm
	ActionCancel
	ActionPause
	ActionDebug
	actionCount
)

// String returns the string representation of the action
func (a Action) String() string {
	switch a {
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionCancel:
		return "Cancel"
	case ActionPause:
		return "Pause"
	case ActionDebug:
		return "Debug"
	default:
		return "Unknown"
	}
}

// State holds the input state for one tick
type State struct {
	pressed     [actionCount]bool
	justPressed [actionCount]bool
	MouseX      int
	MouseY      int
	MouseClick  bool
}

// StateOf builds a state where the given actions were just pressed.
// Handy for tests and for feeding synthetic input.
func StateOf(actions ...Action) State {
	var s State
	for _, a := range actions {
		if a < 0 || a >= actionCount {
			continue
		}
		s.pressed[a] = true
		s.justPressed[a] = true
	}
	return s
}

// Pressed reports whether the action is held this tick
func (s State) Pressed(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	return s.pressed[a]
}

// JustPressed reports whether the action went down this tick
func (s State) JustPressed(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	return s.justPressed[a]
}

// Mask packs the held and just-pressed actions into bit sets, one bit per
// action
func (s State) Mask() (pressed, justPressed uint32) {
	for a := range actionCount {
		if s.pressed[a] {
			pressed |= 1 << a
		}
		if s.justPressed[a] {
			justPressed |= 1 << a
		}
	}
	return pressed, justPressed
}

// FromMask rebuilds the action part of a state packed by Mask
func FromMask(pressed, justPressed uint32) State {
	var s State
	for a := range actionCount {
		s.pressed[a] = pressed&(1<<a) != 0
		s.justPressed[a] = justPressed&(1<<a) != 0
	}
	return s
}

// Source is the raw device state the Reader polls
type Source interface {
	IsKeyPressed(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
	CursorPosition() (int, int)
	IsMouseButtonJustPressed(button ebiten.MouseButton) bool
}

type ebitenSource struct{}

func (ebitenSource) IsKeyPressed(key ebiten.Key) bool { return ebiten.IsKeyPressed(key) }

func (ebitenSource) IsKeyJustPressed(key ebiten.Key) bool { return inpututil.IsKeyJustPressed(key) }

func (ebitenSource) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (ebitenSource) IsMouseButtonJustPressed(button ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(button)
}

// Bindings maps each action to the keys that trigger it
type Bindings map[Action][]ebiten.Key

// DefaultBindings returns arrow keys + WASD, Enter/Space/Z to confirm,
// X/Backspace to cancel, Escape to pause and F3 for debug info
func DefaultBindings() Bindings {
	return Bindings{
		ActionUp:      {ebiten.KeyArrowUp, ebiten.KeyW},
		ActionDown:    {ebiten.KeyArrowDown, ebiten.KeyS},
		ActionLeft:    {ebiten.KeyArrowLeft, ebiten.KeyA},
		ActionRight:   {ebiten.KeyArrowRight, ebiten.KeyD},
		ActionConfirm: {ebiten.KeyEnter, ebiten.KeySpace, ebiten.KeyZ},
		ActionCancel:  {ebiten.KeyX, ebiten.KeyBackspace},
		ActionPause:   {ebiten.KeyEscape},
		ActionDebug:   {ebiten.KeyF3},
	}
}

// Reader polls a Source once per tick
type Reader struct {
	source   Source
	bindings Bindings
}

// NewReader creates a reader backed by ebiten's input state
func NewReader(bindings Bindings) *Reader {
	return NewReaderWithSource(ebitenSource{}, bindings)
}

// NewReaderWithSource creates a reader backed by src
func NewReaderWithSource(src Source, bindings Bindings) *Reader {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &Reader{source: src, bindings: bindings}
}

// Read returns the current input state
func (r *Reader) Read() State {
	var s State
	for action, keys := range r.bindings {
		if action < 0 || action >= actionCount {
			continue
		}
		for _, key := range keys {
			if r.source.IsKeyPressed(key) {
				s.pressed[action] = true
			}
			if r.source.IsKeyJustPressed(key) {
				s.justPressed[action] = true
			}
		}
	}

	s.MouseX, s.MouseY = r.source.CursorPosition()
	s.MouseClick = r.source.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	return s
}
