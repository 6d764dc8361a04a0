// Package stack implements the scene stack: an arena of live scenes, the
// stack of final scenes the user navigates, and the graph of in-flight
// transitions that lets several of them be visible at once.
package stack

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"github.com/younwookim/scenestack/internal/application/frame"
	"github.com/younwookim/scenestack/internal/application/scene"
	"github.com/younwookim/scenestack/internal/arena"
)

// node is an arena entry. active is true between Enter and Exit.
type node struct {
	scene  scene.Scene
	active bool
}

// Manager owns every live scene and applies the requests of the top scene
type Manager struct {
	scenes   *arena.Arena[*node]
	finals   []arena.Handle
	trackers trackerSet

	transitioning bool

	logger   zerolog.Logger
	observer Observer
}

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithObserver registers an observer for stack events
func WithObserver(o Observer) Option {
	return func(m *Manager) {
		m.observer = o
	}
}

// New creates a manager with initial as the root scene.
// The root scene is entered immediately; a request it returns from Enter is
// applied before New returns.
func New(ctx *frame.Context, initial scene.Scene, opts ...Option) *Manager {
	m := &Manager{
		scenes: arena.New[*node](),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	next := initial.Enter(ctx)
	root := m.scenes.Insert(&node{scene: initial, active: true})
	m.finals = []arena.Handle{root}

	m.drain(ctx, next)
	m.publishTransitioning(ctx)
	return m
}

// Top returns the handle of the current top scene
func (m *Manager) Top() arena.Handle {
	return m.finals[len(m.finals)-1]
}

// TopScene returns the current top scene
func (m *Manager) TopScene() scene.Scene {
	return m.node(m.Top()).scene
}

// Scene returns the scene for h, if it is still alive
func (m *Manager) Scene(h arena.Handle) (scene.Scene, bool) {
	n, ok := m.scenes.Get(h)
	if !ok {
		return nil, false
	}
	return n.scene, true
}

// Depth returns the number of scenes on the stack
func (m *Manager) Depth() int {
	return len(m.finals)
}

// Stack returns the stack bottom to top
func (m *Manager) Stack() []arena.Handle {
	return slices.Clone(m.finals)
}

// SceneCount returns the number of live scenes, including scenes only kept
// alive by a running transition
func (m *Manager) SceneCount() int {
	return m.scenes.Len()
}

// TransitionCount returns the number of running transitions
func (m *Manager) TransitionCount() int {
	return m.trackers.len()
}

// IsTransitioning reports whether the top scene is part of a running
// transition, as of the end of the last Update
func (m *Manager) IsTransitioning() bool {
	return m.transitioning
}

// Visible returns the scenes drawn this frame: the top first, then every
// scene reached through the transition chain, newest transition first
func (m *Manager) Visible() []arena.Handle {
	top := m.Top()
	visible := []arena.Handle{top}
	for _, i := range m.trackers.unwind(top) {
		visible = append(visible, m.trackers.at(i).from)
	}
	return visible
}

// Update runs one tick: background updates of every scene, updates of the
// visible scenes, then the top scene's requests, then transition cleanup.
func (m *Manager) Update(ctx *frame.Context) {
	m.scenes.Each(func(_ arena.Handle, n *node) {
		n.scene.ContinuousUpdate(ctx)
	})

	top := m.Top()
	m.publishTransitioning(ctx)

	chain := m.trackers.unwind(top)
	for i := len(chain) - 1; i >= 0; i-- {
		from := m.trackers.at(chain[i]).from
		if req := m.node(from).scene.Update(ctx); req != nil {
			m.logger.Debug().
				Str("request", req.Kind.String()).
				Stringer("scene", from).
				Msg("ignoring request from a scene that is not on top")
		}
	}

	m.drain(ctx, m.node(top).scene.Update(ctx))
	m.cleanup(ctx)
	m.publishTransitioning(ctx)
}

// Shutdown exits and destroys every scene, top of the stack first.
// The manager must not be used afterwards.
func (m *Manager) Shutdown(ctx *frame.Context) {
	m.trackers.trackers = nil
	for i := len(m.finals) - 1; i >= 0; i-- {
		h := m.finals[i]
		m.finals = m.finals[:i]
		m.destroy(ctx, h)
	}
	for _, h := range m.scenes.Handles() {
		m.destroy(ctx, h)
	}
}

func (m *Manager) publishTransitioning(ctx *frame.Context) {
	m.transitioning = m.trackers.involves(m.Top())
	ctx.SetTransitioning(m.transitioning)
}

// drain applies req and then every request returned by the scenes it
// enters, until none is left
func (m *Manager) drain(ctx *frame.Context, req *scene.Request) {
	for req != nil {
		req = m.apply(ctx, req)
	}
}

func (m *Manager) apply(ctx *frame.Context, req *scene.Request) *scene.Request {
	if req.Kind.NeedsScene() && req.Scene == nil {
		m.reject(ctx, req, "request has no scene")
		return nil
	}

	switch req.Kind {
	case scene.KindPush:
		return m.push(ctx, req)
	case scene.KindSwap:
		return m.swap(ctx, req)
	case scene.KindPopSwap:
		return m.popSwap(ctx, req)
	case scene.KindPop:
		return m.pop(ctx, req)
	default:
		m.reject(ctx, req, "unknown request kind")
		return nil
	}
}

func (m *Manager) push(ctx *frame.Context, req *scene.Request) *scene.Request {
	next := m.enterNew(ctx, req)

	from := m.Top()
	to := m.scenes.Insert(&node{scene: req.Scene, active: true})
	m.finals = append(m.finals, to)

	if req.Transition != nil {
		m.link(ctx, &tracker{transition: req.Transition, from: from, to: to})
	}

	m.applied(ctx, req, from, to, 0)
	return next
}

func (m *Manager) swap(ctx *frame.Context, req *scene.Request) *scene.Request {
	next := m.enterNew(ctx, req)

	to := m.scenes.Insert(&node{scene: req.Scene, active: true})
	from := m.Top()
	m.finals[len(m.finals)-1] = to

	m.replace(ctx, req, from, to, []arena.Handle{from})
	return next
}

func (m *Manager) popSwap(ctx *frame.Context, req *scene.Request) *scene.Request {
	if len(m.finals) == 1 {
		m.reject(ctx, req, "no scene to pop into")
		return nil
	}

	next := m.enterNew(ctx, req)

	from := m.Top()
	to := m.scenes.Insert(&node{scene: req.Scene, active: true})
	m.finals = m.finals[:len(m.finals)-1]
	swapped := m.Top()
	m.finals[len(m.finals)-1] = to

	m.replace(ctx, req, from, to, []arena.Handle{swapped, from})
	return next
}

func (m *Manager) pop(ctx *frame.Context, req *scene.Request) *scene.Request {
	if len(m.finals) == 1 {
		m.reject(ctx, req, "no scene to pop into")
		return nil
	}

	from := m.finals[len(m.finals)-1]
	m.finals = m.finals[:len(m.finals)-1]
	to := m.Top()

	m.replace(ctx, req, from, to, []arena.Handle{from})

	n := m.node(to)
	n.active = true
	return n.scene.Enter(ctx)
}

// replace retires deletes either through a new tracker, when the request
// carries a transition, or right away
func (m *Manager) replace(ctx *frame.Context, req *scene.Request, from, to arena.Handle, deletes []arena.Handle) {
	if req.Transition != nil {
		m.link(ctx, &tracker{transition: req.Transition, from: from, to: to, deletes: deletes})
		m.applied(ctx, req, from, to, len(deletes))
		return
	}

	removed := m.trackers.add(&tracker{from: from, to: to, deletes: deletes})
	removed = append(removed, m.trackers.settle([]int{m.trackers.len() - 1})...)
	m.applied(ctx, req, from, to, len(deletes))
	m.retire(ctx, removed)
}

func (m *Manager) enterNew(ctx *frame.Context, req *scene.Request) *scene.Request {
	if req.SkipsEnter() {
		return nil
	}
	return req.Scene.Enter(ctx)
}

func (m *Manager) link(ctx *frame.Context, t *tracker) {
	m.retire(ctx, m.trackers.add(t))
}

// cleanup removes every tracker whose transition has completed
func (m *Manager) cleanup(ctx *frame.Context) {
	idx := m.trackers.completed()
	if len(idx) == 0 {
		return
	}
	m.retire(ctx, m.trackers.settle(idx))
}

// retire runs the lifecycle hooks for trackers already removed from the set
func (m *Manager) retire(ctx *frame.Context, removed []*tracker) {
	for _, t := range removed {
		if t.from != m.Top() {
			if n, ok := m.scenes.Get(t.from); ok {
				m.exit(ctx, n)
			}
		}
		for _, h := range t.deletes {
			m.destroy(ctx, h)
		}

		if t.transition != nil {
			m.logger.Debug().
				Stringer("from", t.from).
				Stringer("to", t.to).
				Int("deleted", len(t.deletes)).
				Msg("transition completed")
			m.notify(ctx, Event{
				Type:       EventCompleted,
				From:       t.from,
				To:         t.to,
				Deleted:    len(t.deletes),
				Transition: true,
			})
		}
	}
}

func (m *Manager) exit(ctx *frame.Context, n *node) {
	if !n.active {
		return
	}
	n.active = false
	n.scene.Exit(ctx)
}

func (m *Manager) destroy(ctx *frame.Context, h arena.Handle) {
	if slices.Contains(m.finals, h) || m.trackers.references(h) {
		panic(fmt.Sprintf("stack: destroying scene %s that is still referenced", h))
	}
	n := m.node(h)
	m.exit(ctx, n)
	n.scene.Destroy(ctx)
	m.scenes.Remove(h)
}

func (m *Manager) node(h arena.Handle) *node {
	n, ok := m.scenes.Get(h)
	if !ok {
		panic(fmt.Sprintf("stack: scene %s is referenced but not alive", h))
	}
	return n
}

func (m *Manager) applied(ctx *frame.Context, req *scene.Request, from, to arena.Handle, deleted int) {
	m.logger.Debug().
		Str("request", req.Kind.String()).
		Stringer("from", from).
		Stringer("to", to).
		Bool("transition", req.Transition != nil).
		Int("depth", len(m.finals)).
		Msg("scene request applied")
	m.notify(ctx, Event{
		Type:       EventApplied,
		Kind:       req.Kind,
		From:       from,
		To:         to,
		Deleted:    deleted,
		Transition: req.Transition != nil,
	})
}

func (m *Manager) reject(ctx *frame.Context, req *scene.Request, reason string) {
	m.logger.Error().
		Str("request", req.Kind.String()).
		Int("depth", len(m.finals)).
		Msg(reason)
	m.notify(ctx, Event{
		Type:       EventRejected,
		Kind:       req.Kind,
		From:       m.Top(),
		To:         m.Top(),
		Transition: req.Transition != nil,
	})
}

func (m *Manager) notify(ctx *frame.Context, e Event) {
	if m.observer == nil {
		return
	}
	e.Depth = len(m.finals)
	e.Trackers = m.trackers.len()
	m.observer.Observe(ctx, e)
}
