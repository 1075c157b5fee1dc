package registry

import (
	"fmt"

	"github.com/deck-tools/deckfmt/debug"
	"github.com/deck-tools/deckfmt/record"
)

// Numbered is any record addressed by a positive integer key. The
// current number is what lookups and output use; the original number
// is what the source file said, kept immutable for resolving legacy
// cross-references after renumbering.
type Numbered interface {
	Number() int
	OriginalNumber() int
	SetNumber(n int) error
}

// Cloner is a Numbered entity that can produce a deep, detached copy
// of itself: no mutable state shared with the original and no
// registry attachment.
type Cloner interface {
	Numbered
	CloneDetached() Numbered
}

// Registry enforces current-number uniqueness for one kind of entity
// within one document. It is an explicit per-document handle, never a
// process-wide singleton; two loaded documents never share numbering
// state.
type Registry struct {
	kind    string
	entries map[int]Numbered
	ceiling int
}

type Option func(*Registry)

// WithCeiling bounds number allocation; 0 means unbounded.
func WithCeiling(n int) Option {
	return func(g *Registry) { g.ceiling = n }
}

func New(kind string, opts ...Option) *Registry {
	g := &Registry{
		kind:    kind,
		entries: map[int]Numbered{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Registry) Kind() string {
	return g.kind
}

// Check fails if any live entity of this kind already holds n.
func (g *Registry) Check(n int) error {
	if _, ok := g.entries[n]; ok {
		return &NumberConflictError{Kind: g.kind, Number: n}
	}
	return nil
}

// Attach claims the entity's current number. Attaching an entity
// already holding its slot (a reserved clone) is a no-op.
func (g *Registry) Attach(e Numbered) error {
	n := e.Number()
	if n <= 0 {
		return fmt.Errorf("%w: %s number %d must be > 0", ErrBadNumber, g.kind, n)
	}
	if held, ok := g.entries[n]; ok {
		if held == e {
			return nil
		}
		return &NumberConflictError{Kind: g.kind, Number: n}
	}
	g.entries[n] = e
	return nil
}

// Detach releases the entity's number. Detaching an entity that does
// not hold its slot is a no-op.
func (g *Registry) Detach(e Numbered) {
	n := e.Number()
	if g.entries[n] == e {
		delete(g.entries, n)
	}
}

// Renumber atomically moves e from its current number to n. On
// conflict nothing changes: e keeps its old number and the holder of
// n keeps its slot.
func (g *Registry) Renumber(e Numbered, n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %s number %d must be > 0", ErrBadNumber, g.kind, n)
	}
	if held, ok := g.entries[n]; ok {
		if held == e {
			return nil
		}
		return &NumberConflictError{Kind: g.kind, Number: n}
	}
	old := e.Number()
	if g.entries[old] == e {
		delete(g.entries, old)
	}
	g.entries[n] = e
	return nil
}

// Request scans start, start+step, ... and returns the first number
// not currently held. The scan space is unbounded integers, so it
// only fails at a configured ceiling.
func (g *Registry) Request(start, step int) (int, error) {
	if start <= 0 || step <= 0 {
		return 0, fmt.Errorf("%w: request(start=%d, step=%d)", ErrBadNumber, start, step)
	}
	for n := start; ; n += step {
		if g.ceiling > 0 && n > g.ceiling {
			return 0, record.Invalidf("%s numbers exhausted at ceiling %d", g.kind, g.ceiling)
		}
		if _, ok := g.entries[n]; !ok {
			if debug.Registry() {
				debug.Logf("registry %s: allocated %d", g.kind, n)
			}
			return n, nil
		}
	}
}

// Clone deep-copies the entity, finds the first free number scanning
// from start by step, and commits the copy under it. Neither the
// source entity nor the registry is touched until the number commits.
// The clone's number is reserved here, but attaching it to its owning
// collection (or detaching it again) is the caller's business.
func (g *Registry) Clone(e Cloner, start, step int) (Numbered, error) {
	c := e.CloneDetached()
	n, err := g.Request(start, step)
	if err != nil {
		return nil, err
	}
	if err := c.SetNumber(n); err != nil {
		return nil, err
	}
	g.entries[n] = c
	return c, nil
}

// Len returns the count of live numbered entities.
func (g *Registry) Len() int {
	return len(g.entries)
}

// Lookup returns the entity currently holding n, if any.
func (g *Registry) Lookup(n int) (Numbered, bool) {
	e, ok := g.entries[n]
	return e, ok
}
