package deck

import (
	"fmt"
	"io"
	"strings"

	"github.com/deck-tools/deckfmt/card"
	"github.com/deck-tools/deckfmt/debug"
	"github.com/deck-tools/deckfmt/format"
	"github.com/deck-tools/deckfmt/record"
	"github.com/deck-tools/deckfmt/registry"
)

// Deck is one parsed input deck: title, cell block, surface block
// (kept opaque), and data block. Each deck owns its own numbering
// registries; loading several decks never shares numbering state.
type Deck struct {
	Title string

	Cells     *Cells
	Materials *Materials

	surfaces []*Opaque
	data     []record.Serializer

	lattice     *LatticeRecord
	latticeRepr latticeRepr

	unclaimed []*ThermalScatteringRecord
	linked    bool
}

// Opaque is any card the library has no structured model for. It is
// held verbatim and replayed untouched, which is what keeps whole
// decks round-tripping.
type Opaque struct {
	record.Record
	keyword string
}

func (o *Opaque) Keyword() string {
	return o.keyword
}

func (o *Opaque) Lines(v format.Version) ([]string, error) {
	return o.ReplayLines(), nil
}

// New creates an empty deck for programmatic construction.
func New(title string) *Deck {
	d := &Deck{Title: title}
	d.Cells = &Cells{deck: d, reg: registry.New("cell")}
	d.Materials = &Materials{deck: d, reg: registry.New("material")}
	return d
}

// Parse reads a whole deck: title line, cell block, surface block,
// data block, separated by blank lines. A parse error aborts the
// document; records parsed before the error are not corrupted but the
// deck is not returned.
func Parse(d []byte) (*Deck, error) {
	blocks := splitBlocks(string(d))
	if len(blocks) == 0 || len(blocks[0]) == 0 {
		return nil, malformedf(nil, "deck", "empty deck")
	}
	dk := New(blocks[0][0])
	for _, c := range card.Scan(blocks[0][1:]) {
		cell, err := parseCell(dk, &c)
		if err != nil {
			return nil, err
		}
		if err := dk.Cells.Add(cell); err != nil {
			return nil, err
		}
	}
	if len(blocks) > 1 {
		for _, c := range card.Scan(blocks[1]) {
			kw, _, _ := c.Keyword()
			dk.surfaces = append(dk.surfaces, &Opaque{Record: record.FromCard(&c), keyword: kw})
		}
	}
	for i := 2; i < len(blocks); i++ {
		for _, c := range card.Scan(blocks[i]) {
			if err := dk.parseDataCard(&c); err != nil {
				return nil, err
			}
		}
	}
	if err := dk.link(); err != nil {
		return nil, err
	}
	return dk, nil
}

func (d *Deck) parseDataCard(c *card.Card) error {
	prefix, number, hasNumber := c.Keyword()
	switch {
	case prefix == "m" && hasNumber:
		m, err := parseMaterial(d, c, number)
		if err != nil {
			return err
		}
		if err := d.Materials.Add(m); err != nil {
			return err
		}
	case prefix == "mt" && hasNumber:
		mt, err := parseThermalScattering(c, number)
		if err != nil {
			return err
		}
		d.unclaimed = append(d.unclaimed, mt)
		d.data = append(d.data, mt)
	case prefix == "lat" && !hasNumber:
		r, err := parseLatticeRecord(d, c)
		if err != nil {
			return err
		}
		d.data = append(d.data, r)
	default:
		kw := prefix
		if len(c.Words()) > 0 {
			kw = strings.ToLower(c.Words()[0])
		}
		d.data = append(d.data, &Opaque{Record: record.FromCard(c), keyword: kw})
	}
	return nil
}

// link resolves weak numeric cross-references into direct owning
// links. It runs exactly once, after all records of the document are
// constructed, and may not be re-invoked.
func (d *Deck) link() error {
	if d.linked {
		return ErrLinked
	}
	// materials claim their mt records by original number
	for _, m := range d.Materials.items {
		pending := append([]*ThermalScatteringRecord(nil), d.unclaimed...)
		for _, mt := range pending {
			if mt.originalNumber != m.originalNumber {
				continue
			}
			if err := m.claimThermal(mt); err != nil {
				return err
			}
			d.removeData(mt)
			d.removeUnclaimed(mt)
		}
	}
	// cells resolve their material references
	for _, c := range d.Cells.items {
		if c.materialNumber == 0 {
			continue
		}
		m, ok := d.Materials.Get(c.materialNumber)
		if !ok {
			return malformedf(nil, "cell",
				"cell %d uses material %d which is not defined",
				c.number, c.materialNumber)
		}
		c.material = m
	}
	if d.lattice != nil {
		d.lattice.PushToCells()
	}
	d.linked = true
	if debug.Link() {
		debug.Logf("link: %d cells, %d materials, %d unclaimed mt",
			len(d.Cells.items), len(d.Materials.items), len(d.unclaimed))
	}
	return nil
}

func (d *Deck) removeData(s record.Serializer) {
	for i, ds := range d.data {
		if ds == s {
			d.data = append(d.data[:i], d.data[i+1:]...)
			return
		}
	}
}

func (d *Deck) removeUnclaimed(mt *ThermalScatteringRecord) {
	for i, u := range d.unclaimed {
		if u == mt {
			d.unclaimed = append(d.unclaimed[:i], d.unclaimed[i+1:]...)
			return
		}
	}
}

// Surfaces returns the opaque surface block records.
func (d *Deck) Surfaces() []*Opaque {
	return d.surfaces
}

// DataRecords returns the data block records in file order;
// claimed mt records are absent (their material serializes them).
func (d *Deck) DataRecords() []record.Serializer {
	return d.data
}

// LatticeRecord returns the aggregate lat card, nil when the
// attribute is unset or declared inline.
func (d *Deck) LatticeRecord() *LatticeRecord {
	return d.lattice
}

// NewLatticeRecord declares the lattice attribute through the
// aggregate representation programmatically. Declaring it while the
// other representation still holds values is redundant; an inline
// declaration whose values have all been unset no longer counts, so
// a deck can migrate inline -> aggregate by clearing every cell's
// value first.
func (d *Deck) NewLatticeRecord() (*LatticeRecord, error) {
	if d.latticeRepr == latticeInline && !d.anyCellLattice() {
		for _, c := range d.Cells.items {
			if c.latticeFromInline {
				// the raw card text carries the attribute and
				// must not replay
				c.MarkMutated()
				c.latticeFromInline = false
			}
		}
		d.latticeRepr = latticeUnset
	}
	switch d.latticeRepr {
	case latticeAggregate:
		return nil, fmt.Errorf("%w: cannot have two lat cards for one problem",
			ErrRedundantDefinition)
	case latticeInline:
		return nil, fmt.Errorf("%w: lat declared both on cells and in the data block",
			ErrRedundantDefinition)
	}
	r := &LatticeRecord{
		Record:      record.New(),
		deck:        d,
		parsedCells: len(d.Cells.items),
	}
	d.lattice = r
	d.latticeRepr = latticeAggregate
	d.data = append(d.data, r)
	return r, nil
}

// anyCellLattice reports whether any cell currently holds a lattice
// value.
func (d *Deck) anyCellLattice() bool {
	for _, c := range d.Cells.items {
		if c.lattice != NoLattice {
			return true
		}
	}
	return false
}

// latticeInCell reports whether cell cards carry the attribute
// inline on output.
func (d *Deck) latticeInCell() bool {
	switch d.latticeRepr {
	case latticeInline:
		return true
	case latticeAggregate:
		return d.lattice.printStyle() == printCell
	}
	return false
}

// Lines serializes the whole deck for the given version profile.
// Every record independently chooses verbatim replay or
// regeneration.
func (d *Deck) Lines(v format.Version) ([]string, error) {
	ret := []string{d.Title}
	for _, c := range d.Cells.items {
		lines, err := c.Lines(v)
		if err != nil {
			return nil, err
		}
		ret = append(ret, lines...)
	}
	ret = append(ret, "")
	for _, s := range d.surfaces {
		lines, err := s.Lines(v)
		if err != nil {
			return nil, err
		}
		ret = append(ret, lines...)
	}
	ret = append(ret, "")
	for _, ds := range d.data {
		lines, err := ds.Lines(v)
		if err != nil {
			return nil, err
		}
		ret = append(ret, lines...)
	}
	return ret, nil
}

// Write emits the deck as text.
func (d *Deck) Write(w io.Writer, v format.Version) error {
	lines, err := d.Lines(v)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func splitBlocks(text string) [][]string {
	lines := strings.Split(text, "\n")
	// drop the artifact of a trailing newline
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	var blocks [][]string
	var cur []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if cur != nil {
				blocks = append(blocks, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, line)
	}
	if cur != nil {
		blocks = append(blocks, cur)
	}
	return blocks
}
