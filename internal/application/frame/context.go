// Package frame provides the per-tick context threaded through every scene,
// transition and overlay call.
//
// A single Context lives for the whole run. The frame driver calls Begin at
// the start of each tick; everything else reads from it.
package frame

import (
	"reflect"
	"time"

	"github.com/younwookim/scenestack/internal/application/input"
	"github.com/younwookim/scenestack/internal/application/task"
)

// Context carries timing, input, shared resources and run flags
type Context struct {
	clock     func() time.Time
	fixedStep bool

	tick       uint64
	dt         float64
	gameStart  time.Time
	frameStart time.Time

	input input.State
	tasks *task.Runner

	resources map[reflect.Type]any

	width  int
	height int

	updateDuration time.Duration
	drawDuration   time.Duration

	transitioning bool
	quitting      bool
}

// Option configures a Context
type Option func(*Context)

// WithClock replaces time.Now as the frame clock
func WithClock(clock func() time.Time) Option {
	return func(c *Context) {
		c.clock = clock
	}
}

// WithFixedStep makes the frame clock advance by exactly dt per tick instead
// of reading the clock. Runs fed the same input then see the same times.
func WithFixedStep() Option {
	return func(c *Context) {
		c.fixedStep = true
	}
}

// WithTasks sets the runner scenes spawn background work on
func WithTasks(r *task.Runner) Option {
	return func(c *Context) {
		c.tasks = r
	}
}

// WithDT sets the fixed delta time in seconds
func WithDT(dt float64) Option {
	return func(c *Context) {
		c.dt = dt
	}
}

// WithResolution sets the logical screen size
func WithResolution(width, height int) Option {
	return func(c *Context) {
		c.width = width
		c.height = height
	}
}

// New creates a context. Defaults: time.Now clock, 1/60s delta time.
func New(opts ...Option) *Context {
	c := &Context{
		clock:     time.Now,
		dt:        1.0 / 60.0,
		resources: make(map[reflect.Type]any),
	}
	for _, opt := range opts {
		opt(c)
	}

	now := c.clock()
	c.gameStart = now
	c.frameStart = now
	return c
}

// Begin starts a new tick with the given input snapshot
func (c *Context) Begin(in input.State) {
	c.tick++
	if c.fixedStep {
		c.frameStart = c.frameStart.Add(time.Duration(c.dt * float64(time.Second)))
	} else {
		c.frameStart = c.clock()
	}
	c.input = in
}

// Tick returns the number of ticks begun so far
func (c *Context) Tick() uint64 {
	return c.tick
}

// DT returns the fixed delta time in seconds
func (c *Context) DT() float64 {
	return c.dt
}

// SetDT changes the delta time
func (c *Context) SetDT(dt float64) {
	c.dt = dt
}

// Now returns the start time of the current tick
func (c *Context) Now() time.Time {
	return c.frameStart
}

// Elapsed returns the time since the context was created, measured at the
// start of the current tick
func (c *Context) Elapsed() time.Duration {
	return c.frameStart.Sub(c.gameStart)
}

// Input returns this tick's input snapshot
func (c *Context) Input() input.State {
	return c.input
}

// Tasks returns the background task runner, or nil if none was configured
func (c *Context) Tasks() *task.Runner {
	return c.tasks
}

// Resolution returns the logical screen size
func (c *Context) Resolution() (int, int) {
	return c.width, c.height
}

// SetResolution updates the logical screen size
func (c *Context) SetResolution(width, height int) {
	c.width = width
	c.height = height
}

// IsInTransition reports whether the top scene is part of a running
// transition. Scenes use it to ignore destructive input while visuals blend.
func (c *Context) IsInTransition() bool {
	return c.transitioning
}

// SetTransitioning is called by the scene stack
func (c *Context) SetTransitioning(transitioning bool) {
	c.transitioning = transitioning
}

// Quit asks the frame driver to stop after the current tick
func (c *Context) Quit() {
	c.quitting = true
}

// CancelQuit withdraws a quit request made earlier in the tick
func (c *Context) CancelQuit() {
	c.quitting = false
}

// IsQuitting reports whether Quit was requested
func (c *Context) IsQuitting() bool {
	return c.quitting
}

// UpdateDuration is the time spent in update logic last tick
func (c *Context) UpdateDuration() time.Duration {
	return c.updateDuration
}

// SetUpdateDuration is called by the frame driver
func (c *Context) SetUpdateDuration(d time.Duration) {
	c.updateDuration = d
}

// DrawDuration is the time spent in draw logic last frame
func (c *Context) DrawDuration() time.Duration {
	return c.drawDuration
}

// SetDrawDuration is called by the frame driver
func (c *Context) SetDrawDuration(d time.Duration) {
	c.drawDuration = d
}

// SetResource stores v as the shared resource of type T, replacing any
// previous one
func SetResource[T any](c *Context, v T) {
	c.resources[reflect.TypeFor[T]()] = v
}

// Resource returns the shared resource of type T
func Resource[T any](c *Context) (T, bool) {
	v, ok := c.resources[reflect.TypeFor[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}
