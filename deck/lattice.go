package deck

import (
	"fmt"

	"github.com/deck-tools/deckfmt/card"
	"github.com/deck-tools/deckfmt/encode"
	"github.com/deck-tools/deckfmt/format"
	"github.com/deck-tools/deckfmt/record"
	"github.com/deck-tools/deckfmt/token"
)

// Lattice is the per-cell lattice kind.
type Lattice int

const (
	NoLattice      Lattice = 0
	Hexahedral     Lattice = 1
	HexagonalPrism Lattice = 2
)

func LatticeFromInt(n int) (Lattice, error) {
	switch n {
	case 1, 2:
		return Lattice(n), nil
	default:
		return NoLattice, fmt.Errorf("%w: lattice must be 1 or 2, got %d", ErrBadValue, n)
	}
}

func (l Lattice) String() string {
	switch l {
	case Hexahedral:
		return "hexahedral"
	case HexagonalPrism:
		return "hexagonal prism"
	default:
		return "none"
	}
}

// latticeRepr is the declaration state of the lattice attribute for
// one deck: unset, declared per cell inline, or declared once in a
// data-block aggregate card. Exactly one representation may be
// authoritative.
type latticeRepr int

const (
	latticeUnset latticeRepr = iota
	latticeInline
	latticeAggregate
)

// LatticeRecord is the data-block aggregate form of the lattice
// attribute: one LAT card listing a value or jump per cell in
// declaration order.
type LatticeRecord struct {
	record.Record

	deck *Deck
	data []token.Datum

	// cell count at parse time: growing or shrinking the deck
	// invalidates the verbatim replay of this card
	parsedCells int

	printInData  int // tristate, see printStyle
	styleChanged bool
}

const (
	printDefault = iota
	printData
	printCell
)

func parseLatticeRecord(d *Deck, c *card.Card) (*LatticeRecord, error) {
	if d.latticeRepr == latticeAggregate {
		return nil, fmt.Errorf("%w: cannot have two lat cards for one problem",
			ErrRedundantDefinition)
	}
	if d.latticeRepr == latticeInline {
		return nil, fmt.Errorf("%w: lat declared both on cells and in the data block",
			ErrRedundantDefinition)
	}
	words := c.Words()
	data, err := encode.Decompress(words[1:])
	if err != nil {
		return nil, malformedf(c, "lat", "%v", err)
	}
	for _, datum := range data {
		switch datum.Type {
		case token.JumpType:
		case token.IntType:
			if _, err := LatticeFromInt(int(datum.Int)); err != nil {
				return nil, malformedf(c, "lat", "lattice must be 1 or 2, got %d", datum.Int)
			}
		case token.FloatType, token.StringType, token.RepeatType:
			return nil, malformedf(c, "lat", "%q is not a lattice value", datum.Word())
		}
	}
	r := &LatticeRecord{
		Record: record.FromCard(c),
		deck:   d,
		data:   data,
	}
	d.lattice = r
	d.latticeRepr = latticeAggregate
	return r, nil
}

// Data returns the aggregate entries in cell declaration order.
func (r *LatticeRecord) Data() []token.Datum {
	return r.data
}

// SetData replaces the aggregate entries.
func (r *LatticeRecord) SetData(data []token.Datum) error {
	for _, d := range data {
		switch d.Type {
		case token.JumpType:
		case token.IntType:
			if _, err := LatticeFromInt(int(d.Int)); err != nil {
				return err
			}
		case token.FloatType, token.StringType, token.RepeatType:
			return fmt.Errorf("%w: %q is not a lattice value", ErrBadValue, d.Word())
		}
	}
	r.MarkMutated()
	r.data = data
	return nil
}

// PushToCells projects the aggregate entries onto the owning cells
// pairwise in declaration order. Jump entries are skipped, entries
// past the cell count are ignored, and cells past the entry count are
// left alone; a length mismatch is never an error.
func (r *LatticeRecord) PushToCells() {
	r.parsedCells = len(r.deck.Cells.items)
	for i, datum := range r.data {
		if i >= len(r.deck.Cells.items) {
			break
		}
		switch datum.Type {
		case token.JumpType:
			// cell keeps whatever it already has
		case token.IntType:
			r.deck.Cells.items[i].lattice = Lattice(datum.Int)
		case token.FloatType, token.StringType, token.RepeatType:
			// rejected at parse and by SetData
		}
	}
}

// SetPrintInData chooses whether the attribute is emitted as this
// aggregate card (true) or as LAT= entries on each cell card (false).
func (r *LatticeRecord) SetPrintInData(v bool) {
	want := printCell
	if v {
		want = printData
	}
	if r.printStyle() != want {
		r.styleChanged = true
	}
	r.printInData = want
}

func (r *LatticeRecord) printStyle() int {
	if r.printInData == printDefault {
		return printData
	}
	return r.printInData
}

// regenerate reports whether verbatim replay is no longer faithful:
// the card itself was touched, its print style changed, the deck
// gained or lost cells, or any cell's lattice value was edited.
func (r *LatticeRecord) regenerate() bool {
	if r.Mutated() || r.styleChanged {
		return true
	}
	if r.parsedCells != len(r.deck.Cells.items) {
		return true
	}
	for _, c := range r.deck.Cells.items {
		if c.latticeMutated {
			return true
		}
	}
	return false
}

func (r *LatticeRecord) Lines(v format.Version) ([]string, error) {
	if r.printStyle() == printCell {
		// cells carry the attribute inline; the aggregate card
		// disappears from the data block
		return nil, nil
	}
	if !r.regenerate() {
		return r.ReplayLines(), nil
	}
	data := make([]token.Datum, 0, len(r.deck.Cells.items))
	any := false
	for _, c := range r.deck.Cells.items {
		if c.lattice == NoLattice {
			data = append(data, token.Jump())
			continue
		}
		any = true
		data = append(data, token.FromInt(int64(c.lattice)))
	}
	if !any {
		return nil, nil
	}
	words := append([]string{"LAT"}, encode.Compress(data)...)
	ret := r.CommentLines()
	ret = append(ret, encode.WrapWords(words, v, true)...)
	return ret, nil
}
