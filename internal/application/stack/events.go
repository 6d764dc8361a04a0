package stack

import (
	"github.com/younwookim/scenestack/internal/application/frame"
	"github.com/younwookim/scenestack/internal/application/scene"
	"github.com/younwookim/scenestack/internal/arena"
)

// EventType classifies what happened to the stack
type EventType int

const (
	// EventApplied: a request changed the stack
	EventApplied EventType = iota
	// EventRejected: a request failed its precondition and was dropped
	EventRejected
	// EventCompleted: a transition finished and its tracker was removed
	EventCompleted
)

// String returns the string representation of the event type
func (e EventType) String() string {
	switch e {
	case EventApplied:
		return "Applied"
	case EventRejected:
		return "Rejected"
	case EventCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Event describes one change to the stack
type Event struct {
	Type       EventType
	Kind       scene.Kind // request kind; unset for EventCompleted
	From       arena.Handle
	To         arena.Handle
	Deleted    int // handles destroyed (EventCompleted) or scheduled (EventApplied)
	Transition bool
	Depth      int
	Trackers   int
}

// Observer receives stack events as they happen
type Observer interface {
	Observe(ctx *frame.Context, e Event)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(ctx *frame.Context, e Event)

// Observe calls f
func (f ObserverFunc) Observe(ctx *frame.Context, e Event) {
	f(ctx, e)
}
