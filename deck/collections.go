package deck

import (
	"github.com/deck-tools/deckfmt/registry"
)

// Cells is the deck's cell collection, backed by a per-deck registry
// that keeps cell numbers unique.
type Cells struct {
	deck  *Deck
	reg   *registry.Registry
	items []*Cell
}

func (cs *Cells) Len() int {
	return len(cs.items)
}

// All returns the cells in declaration order.
func (cs *Cells) All() []*Cell {
	return cs.items
}

// Get looks a cell up by its current number.
func (cs *Cells) Get(n int) (*Cell, bool) {
	e, ok := cs.reg.Lookup(n)
	if !ok {
		return nil, false
	}
	return e.(*Cell), true
}

// Add attaches a cell to the deck, claiming its number.
func (cs *Cells) Add(c *Cell) error {
	if err := cs.reg.Attach(c); err != nil {
		return err
	}
	c.deck = cs.deck
	cs.items = append(cs.items, c)
	return nil
}

// Remove detaches a cell, releasing its number and clearing its
// cached cross-references.
func (cs *Cells) Remove(c *Cell) bool {
	for i, have := range cs.items {
		if have != c {
			continue
		}
		cs.reg.Detach(c)
		cs.items = append(cs.items[:i], cs.items[i+1:]...)
		c.material = nil
		c.deck = nil
		return true
	}
	return false
}

// Check fails if the number is already held by a live cell.
func (cs *Cells) Check(n int) error {
	return cs.reg.Check(n)
}

// Request returns the first free cell number scanning start,
// start+step, ...
func (cs *Cells) Request(start, step int) (int, error) {
	return cs.reg.Request(start, step)
}

type cellCloner struct{ *Cell }

func (c cellCloner) CloneDetached() registry.Numbered {
	return c.Cell.CloneDetached()
}

// Clone deep-copies the cell and reserves the first free number from
// start by step for the copy. The clone is not added to the
// collection; that is the caller's call.
func (cs *Cells) Clone(c *Cell, start, step int) (*Cell, error) {
	n, err := cs.reg.Clone(cellCloner{c}, start, step)
	if err != nil {
		return nil, err
	}
	return n.(*Cell), nil
}

// Materials is the deck's material collection.
type Materials struct {
	deck  *Deck
	reg   *registry.Registry
	items []*Material
}

func (ms *Materials) Len() int {
	return len(ms.items)
}

func (ms *Materials) All() []*Material {
	return ms.items
}

func (ms *Materials) Get(n int) (*Material, bool) {
	e, ok := ms.reg.Lookup(n)
	if !ok {
		return nil, false
	}
	return e.(*Material), true
}

func (ms *Materials) Add(m *Material) error {
	if err := ms.reg.Attach(m); err != nil {
		return err
	}
	m.deck = ms.deck
	ms.items = append(ms.items, m)
	ms.deck.data = append(ms.deck.data, m)
	return nil
}

func (ms *Materials) Remove(m *Material) bool {
	for i, have := range ms.items {
		if have != m {
			continue
		}
		ms.reg.Detach(m)
		ms.items = append(ms.items[:i], ms.items[i+1:]...)
		ms.deck.removeData(m)
		m.deck = nil
		return true
	}
	return false
}

func (ms *Materials) Check(n int) error {
	return ms.reg.Check(n)
}

func (ms *Materials) Request(start, step int) (int, error) {
	return ms.reg.Request(start, step)
}

type materialCloner struct{ *Material }

func (m materialCloner) CloneDetached() registry.Numbered {
	return m.Material.CloneDetached()
}

// Clone deep-copies the material (components, thermal scattering law
// and all) and reserves a fresh number for the copy. Attachment is
// the caller's responsibility.
func (ms *Materials) Clone(m *Material, start, step int) (*Material, error) {
	n, err := ms.reg.Clone(materialCloner{m}, start, step)
	if err != nil {
		return nil, err
	}
	return n.(*Material), nil
}
