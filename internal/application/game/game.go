// Package game provides the frame driver: it implements ebiten.Game, owns the
// scene stack and everything threaded through it each tick.
package game

import (
	"context"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/younwookim/scenestack/internal/application/frame"
	"github.com/younwookim/scenestack/internal/application/input"
	"github.com/younwookim/scenestack/internal/application/journal"
	"github.com/younwookim/scenestack/internal/application/render"
	"github.com/younwookim/scenestack/internal/application/scene"
	"github.com/younwookim/scenestack/internal/application/stack"
	"github.com/younwookim/scenestack/internal/application/task"
)

// InputReader produces one input snapshot per tick
type InputReader interface {
	Read() input.State
}

// Game implements ebiten.Game on top of a scene stack
type Game struct {
	ctx      *frame.Context
	stack    *stack.Manager
	tasks    *task.Runner
	buffer   *render.DoubleBuffer
	overlays []scene.Overlay

	input    InputReader
	replay   *journal.Player
	recorder *journal.Recorder
	journal  string

	screenW int
	screenH int
	logger  zerolog.Logger
	closed  bool
}

type options struct {
	logger     zerolog.Logger
	input      InputReader
	replay     *journal.Player
	recorder   *journal.Recorder
	journal    string
	overlays   []scene.Overlay
	clearColor color.Color
	clock      func() time.Time
	fixedStep  bool
	dt         float64
	resources  []func(*frame.Context)
}

// Option configures a Game
type Option func(*options)

// WithLogger sets the logger used by the game, the stack and the task runner
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithInput replaces the keyboard and mouse reader
func WithInput(r InputReader) Option {
	return func(o *options) {
		o.input = r
	}
}

// WithReplay feeds recorded input instead of live input. The game quits when
// the recording runs out.
func WithReplay(p *journal.Player) Option {
	return func(o *options) {
		o.replay = p
	}
}

// WithJournal records input and stack events, saving them to filename on
// Close
func WithJournal(r *journal.Recorder, filename string) Option {
	return func(o *options) {
		o.recorder = r
		o.journal = filename
	}
}

// WithOverlay adds an overlay drawn above every scene
func WithOverlay(ov scene.Overlay) Option {
	return func(o *options) {
		o.overlays = append(o.overlays, ov)
	}
}

// WithClearColor sets the background behind the scenes
func WithClearColor(c color.Color) Option {
	return func(o *options) {
		o.clearColor = c
	}
}

// WithClock replaces the frame clock
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithFixedStep advances the frame clock by dt per tick, making recorded
// runs replay with the same transition timing
func WithFixedStep() Option {
	return func(o *options) {
		o.fixedStep = true
	}
}

// WithResource registers a shared value scenes can fetch with
// frame.Resource
func WithResource[T any](v T) Option {
	return func(o *options) {
		o.resources = append(o.resources, func(ctx *frame.Context) {
			frame.SetResource(ctx, v)
		})
	}
}

// New creates a new Game with the given initial scene.
// The initial scene's Enter is called immediately.
func New(initial scene.Scene, screenW, screenH int, opts ...Option) *Game {
	o := options{
		logger: zerolog.Nop(),
		dt:     1.0 / 60.0, // Default to 60 FPS
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.input == nil {
		o.input = input.NewReader(nil)
	}

	tasks := task.NewRunner(context.Background(), task.WithLogger(o.logger))
	frameOpts := []frame.Option{
		frame.WithTasks(tasks),
		frame.WithResolution(screenW, screenH),
		frame.WithDT(o.dt),
	}
	if o.clock != nil {
		frameOpts = append(frameOpts, frame.WithClock(o.clock))
	}
	if o.fixedStep {
		frameOpts = append(frameOpts, frame.WithFixedStep())
	}
	ctx := frame.New(frameOpts...)
	for _, set := range o.resources {
		set(ctx)
	}

	stackOpts := []stack.Option{stack.WithLogger(o.logger)}
	if o.recorder != nil {
		stackOpts = append(stackOpts, stack.WithObserver(o.recorder))
	}

	buffer := render.NewDoubleBuffer(screenW, screenH)
	buffer.SetClearColor(o.clearColor)

	return &Game{
		ctx:      ctx,
		stack:    stack.New(ctx, initial, stackOpts...),
		tasks:    tasks,
		buffer:   buffer,
		overlays: o.overlays,
		input:    o.input,
		replay:   o.replay,
		recorder: o.recorder,
		journal:  o.journal,
		screenW:  screenW,
		screenH:  screenH,
		logger:   o.logger,
	}
}

// Update advances the stack by one tick.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	if g.closed {
		return ebiten.Termination
	}
	start := time.Now()

	in, ok := g.readInput()
	if !ok {
		g.logger.Info().Uint64("tick", g.ctx.Tick()).Msg("replay finished")
		g.Close()
		return ebiten.Termination
	}

	g.ctx.Begin(in)
	if g.recorder != nil {
		g.recorder.RecordFrame(g.ctx.Tick(), in)
	}

	g.stack.Update(g.ctx)
	for _, o := range g.overlays {
		o.Update(g.ctx)
	}
	g.ctx.SetUpdateDuration(time.Since(start))

	if g.ctx.IsQuitting() {
		g.logger.Info().Uint64("tick", g.ctx.Tick()).Msg("quit requested")
		g.Close()
		return ebiten.Termination
	}
	return nil
}

func (g *Game) readInput() (input.State, bool) {
	if g.replay != nil {
		return g.replay.Next()
	}
	return g.input.Read(), true
}

// Draw composites the stack and the overlays onto the screen.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.closed {
		return
	}
	start := time.Now()

	b := screen.Bounds()
	g.buffer.Resize(b.Dx(), b.Dy())
	g.stack.Draw(g.ctx, g.buffer)

	front := g.buffer.Front()
	for _, o := range g.overlays {
		o.Draw(g.ctx, front)
	}
	render.Blit(screen, front)

	g.ctx.SetDrawDuration(time.Since(start))
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT sets the delta time used for updates.
// Useful for testing or custom frame rates.
func (g *Game) SetDT(dt float64) {
	g.ctx.SetDT(dt)
}

// AddOverlay adds an overlay drawn above every scene
func (g *Game) AddOverlay(o scene.Overlay) {
	g.overlays = append(g.overlays, o)
}

// Stack returns the scene stack
func (g *Game) Stack() *stack.Manager {
	return g.stack
}

// Context returns the frame context
func (g *Game) Context() *frame.Context {
	return g.ctx
}

// Close destroys every scene, stops background tasks and saves the journal.
// It is safe to call more than once.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true

	g.stack.Shutdown(g.ctx)
	g.tasks.Close()

	if g.recorder == nil || g.journal == "" {
		return
	}
	g.recorder.Stop()
	if err := g.recorder.Save(g.journal); err != nil {
		g.logger.Error().Err(err).Str("file", g.journal).Msg("failed to save journal")
		return
	}
	g.logger.Info().
		Str("file", g.journal).
		Int("frames", g.recorder.FrameCount()).
		Int("events", g.recorder.EntryCount()).
		Msg("journal saved")
}
