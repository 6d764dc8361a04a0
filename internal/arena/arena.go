// Package arena provides a generation-checked slot map.
//
// Values are addressed by Handle. A handle is valid from Insert until Remove.
// Slots are reused after removal, but a slot's generation moves on every time
// it is filled, so a stale handle never resolves to the new occupant.
package arena

import "fmt"

// Handle is an opaque, comparable reference to an arena slot.
// The zero Handle (Nil) never resolves.
type Handle struct {
	index      uint32
	generation uint32
}

// Nil is the zero handle
var Nil Handle

// IsNil reports whether h is the zero handle
func (h Handle) IsNil() bool {
	return h.generation == 0
}

// String returns a short "index:generation" form for logs and panics
func (h Handle) String() string {
	if h.IsNil() {
		return "nil"
	}
	return fmt.Sprintf("%d:%d", h.index, h.generation)
}

type slot[T any] struct {
	value      T
	generation uint32
	occupied   bool
}

// Arena owns values of type T by handle
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	count int
}

// New creates an empty arena
func New[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Insert stores v and returns a fresh handle for it
func (a *Arena[T]) Insert(v T) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot[T]{})
	}

	s := &a.slots[idx]
	s.generation++
	s.value = v
	s.occupied = true
	a.count++

	return Handle{index: idx, generation: s.generation}
}

// Remove takes v out of the arena and returns it.
// Removing a handle that does not resolve is a programmer error and panics.
func (a *Arena[T]) Remove(h Handle) T {
	s := a.lookup(h)
	if s == nil {
		panic(fmt.Sprintf("arena: remove of stale handle %s", h))
	}

	v := s.value
	var zero T
	s.value = zero
	s.occupied = false
	a.free = append(a.free, h.index)
	a.count--

	return v
}

// Get returns the value for h, or false if h does not resolve
func (a *Arena[T]) Get(h Handle) (T, bool) {
	s := a.lookup(h)
	if s == nil {
		var zero T
		return zero, false
	}
	return s.value, true
}

// MustGet returns the value for h and panics if h does not resolve.
// Use it where a miss means the caller's bookkeeping is broken.
func (a *Arena[T]) MustGet(h Handle) T {
	s := a.lookup(h)
	if s == nil {
		panic(fmt.Sprintf("arena: lookup of stale handle %s", h))
	}
	return s.value
}

// Contains reports whether h resolves
func (a *Arena[T]) Contains(h Handle) bool {
	return a.lookup(h) != nil
}

// Len returns the number of live values
func (a *Arena[T]) Len() int {
	return a.count
}

// Handles returns the handles of all live values in slot order
func (a *Arena[T]) Handles() []Handle {
	handles := make([]Handle, 0, a.count)
	for i := range a.slots {
		if a.slots[i].occupied {
			handles = append(handles, Handle{index: uint32(i), generation: a.slots[i].generation})
		}
	}
	return handles
}

// Each calls fn for every live value in slot order.
// fn must not insert into or remove from the arena.
func (a *Arena[T]) Each(fn func(Handle, T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if !s.occupied {
			continue
		}
		fn(Handle{index: uint32(i), generation: s.generation}, s.value)
	}
}

func (a *Arena[T]) lookup(h Handle) *slot[T] {
	if h.IsNil() || int(h.index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[h.index]
	if !s.occupied || s.generation != h.generation {
		return nil
	}
	return s
}
