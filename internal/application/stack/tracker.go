package stack

import (
	"fmt"
	"slices"

	"github.com/younwookim/scenestack/internal/application/scene"
	"github.com/younwookim/scenestack/internal/arena"
)

// tracker is one in-flight transition edge: scene `from` is visually
// turning into scene `to`. The handles in deletes are destroyed once the
// transition completes.
type tracker struct {
	transition scene.Transition // nil means complete from the start
	from       arena.Handle
	to         arena.Handle
	deletes    []arena.Handle
}

func (t *tracker) complete() bool {
	return t.transition == nil || t.transition.IsComplete()
}

// trackerSet holds the transition graph. Invariants between calls:
// no two trackers share a `to`, and following `to` -> `from` never cycles.
type trackerSet struct {
	trackers []*tracker
}

func (s *trackerSet) len() int {
	return len(s.trackers)
}

func (s *trackerSet) at(i int) *tracker {
	return s.trackers[i]
}

// incoming returns the index of the tracker whose `to` is h, or -1
func (s *trackerSet) incoming(h arena.Handle) int {
	for i, t := range s.trackers {
		if t.to == h {
			return i
		}
	}
	return -1
}

// unwind walks the chain ending at top and returns tracker indices,
// newest transition first
func (s *trackerSet) unwind(top arena.Handle) []int {
	var chain []int
	to := top
	for {
		i := s.incoming(to)
		if i < 0 {
			return chain
		}
		if len(chain) == len(s.trackers) {
			panic(fmt.Sprintf("stack: transition chain ending at %s does not terminate", top))
		}
		chain = append(chain, i)
		to = s.trackers[i].from
	}
}

// involves reports whether h is the `from` or `to` of any tracker
func (s *trackerSet) involves(h arena.Handle) bool {
	for _, t := range s.trackers {
		if t.from == h || t.to == h {
			return true
		}
	}
	return false
}

// references reports whether any tracker mentions h at all
func (s *trackerSet) references(h arena.Handle) bool {
	for _, t := range s.trackers {
		if t.from == h || t.to == h || slices.Contains(t.deletes, h) {
			return true
		}
	}
	return false
}

// completed returns the indices of trackers whose transition has finished
func (s *trackerSet) completed() []int {
	var idx []int
	for i, t := range s.trackers {
		if t.complete() {
			idx = append(idx, i)
		}
	}
	return idx
}

// add inserts t, first settling any tracker that would break the graph
// invariants: a tracker in t.from's chain that leaves t.to (a cycle) and a
// tracker already targeting t.to (superseded by t). The settled trackers are
// returned for lifecycle handling.
func (s *trackerSet) add(t *tracker) []*tracker {
	var settled []*tracker
	for {
		seeds := s.conflicts(t)
		if len(seeds) == 0 {
			break
		}
		settled = append(settled, s.settle(seeds)...)
	}
	s.trackers = append(s.trackers, t)
	return settled
}

func (s *trackerSet) conflicts(t *tracker) []int {
	var seeds []int
	for _, i := range s.unwind(t.from) {
		if s.trackers[i].from == t.to {
			seeds = append(seeds, i)
			break
		}
	}
	if i := s.incoming(t.to); i >= 0 && !slices.Contains(seeds, i) {
		seeds = append(seeds, i)
	}
	return seeds
}

// settle removes the seed trackers together with every tracker their
// completion drags along, and rewires the survivors.
//
// A surviving tracker whose `to` is deleted by a completing tracker is
// redirected to that tracker's `to`, repeatedly until nothing changes.
// A survivor is completed too when its `from` is deleted, when rewiring
// turned it into a self-loop, or when rewiring gave it the same `to` as a
// newer survivor. When rewiring closes a loop of survivors, the oldest
// tracker on the loop is completed, as add does for a Pop.
//
// The removed trackers are returned in reverse index order.
func (s *trackerSet) settle(seeds []int) []*tracker {
	n := len(s.trackers)
	done := make([]bool, n)
	for _, i := range seeds {
		done[i] = true
	}

	limit := (n + 1) * (n + 1)
	for pass := 0; ; pass++ {
		if pass > limit {
			panic("stack: tracker rewiring does not converge")
		}

		deletedBy := make(map[arena.Handle]int)
		latest := make(map[arena.Handle]int)
		for i, t := range s.trackers {
			if done[i] {
				for _, h := range t.deletes {
					deletedBy[h] = i
				}
				continue
			}
			latest[t.to] = i
		}

		grew := false
		for i, t := range s.trackers {
			if done[i] {
				continue
			}
			_, fromGone := deletedBy[t.from]
			if fromGone || t.from == t.to || latest[t.to] != i {
				done[i] = true
				grew = true
			}
		}
		if grew {
			continue
		}

		rewired := false
		for i, t := range s.trackers {
			if done[i] {
				continue
			}
			if c, gone := deletedBy[t.to]; gone {
				t.to = s.trackers[c].to
				rewired = true
			}
		}
		if rewired {
			continue
		}

		if i := s.oldestInLoop(done); i >= 0 {
			done[i] = true
			continue
		}
		break
	}

	var removed []*tracker
	for i := n - 1; i >= 0; i-- {
		if !done[i] {
			continue
		}
		removed = append(removed, s.trackers[i])
		s.trackers = slices.Delete(s.trackers, i, i+1)
	}
	return removed
}

// oldestInLoop returns the lowest index of a surviving tracker that lies on a
// loop of survivors, or -1. Survivors must not share a `to`.
func (s *trackerSet) oldestInLoop(done []bool) int {
	into := make(map[arena.Handle]int)
	for i, t := range s.trackers {
		if !done[i] {
			into[t.to] = i
		}
	}

	for i := range s.trackers {
		if done[i] {
			continue
		}
		cur := i
		for range len(s.trackers) {
			j, ok := into[s.trackers[cur].from]
			if !ok {
				break
			}
			if j == i {
				return i
			}
			cur = j
		}
	}
	return -1
}
