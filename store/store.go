// Package store implements the mutable store of §4.3: a vector of MVal
// slots addressed by opaque Location, plus the high-water-mark bookkeeping
// §4.6 uses to reclaim loop-scoped locations between iterations.
package store

import "github.com/Conceptual-Machines/musicdsl-go/env"

// Store is a sequence of cells, each either holding a DVal or dangling
// (never allocated, or reclaimed). MVal, per §3, is "any EVal" — this
// implementation stores the full DVal representation in each cell because
// FunDecl/ProcDecl also route a closure through a location so the closure
// can capture a self-reference before it's fully built (see env.Closure).
type Store struct {
	cells []cell
}

type cell struct {
	val   env.DVal
	dirty bool // true once allocated; false means dangling
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Allocate appends a new cell holding val and returns its location.
func (s *Store) Allocate(val env.DVal) env.Location {
	s.cells = append(s.cells, cell{val: val, dirty: true})
	return env.Location(len(s.cells) - 1)
}

// Access reads the value at loc. ok is false if loc was never allocated or
// has since been reclaimed.
func (s *Store) Access(loc env.Location) (env.DVal, bool) {
	if int(loc) < 0 || int(loc) >= len(s.cells) || !s.cells[loc].dirty {
		return env.DVal{}, false
	}
	return s.cells[loc].val, true
}

// Update overwrites the value at an already-allocated loc. It panics if loc
// is dangling, since that indicates an evaluator bug (a stale DVal.Location
// outliving a Truncate), not a user-facing runtime error.
func (s *Store) Update(loc env.Location, val env.DVal) {
	if int(loc) < 0 || int(loc) >= len(s.cells) || !s.cells[loc].dirty {
		panic("store: update of dangling location")
	}
	s.cells[loc].val = val
}

// Mark returns the current high-water mark: the location the next
// Allocate call will use. A loop body calls Mark before each iteration and
// Truncate after, so any locations the iteration allocated and nothing
// captured (closed over) are reclaimed.
func (s *Store) Mark() env.Location {
	return env.Location(len(s.cells))
}

// Truncate reclaims every cell allocated at or after mark, provided none
// of them is still reachable through escaped locations. Callers are
// responsible for computing escaped and must not pass a mark below any
// location still referenced by a closure captured outside the loop body;
// in that case Truncate is a no-op for the whole call so the closure's
// captured locations stay live, matching §4.6's "closures that escape a
// loop body keep their captured locations alive" rule.
func (s *Store) Truncate(mark env.Location, escaped map[env.Location]bool) {
	for loc := range escaped {
		if loc >= mark {
			return
		}
	}
	if int(mark) < len(s.cells) {
		s.cells = s.cells[:mark]
	}
}
