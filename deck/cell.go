package deck

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/deck-tools/deckfmt/card"
	"github.com/deck-tools/deckfmt/encode"
	"github.com/deck-tools/deckfmt/format"
	"github.com/deck-tools/deckfmt/record"
	"github.com/deck-tools/deckfmt/token"
)

// Cell is one cell card: number, material reference, density,
// geometry text and trailing key=value parameters.
type Cell struct {
	record.Record

	deck           *Deck
	number         int
	originalNumber int

	materialNumber int // 0 = void
	material       *Material
	density        float64
	densityRaw     string

	geometry string
	params   []string // raw key=value words, lat= excluded

	lattice           Lattice
	latticeFromInline bool
	latticeMutated    bool
}

// NewCell builds a cell programmatically; it always regenerates on
// output and is unattached until added to a Cells collection.
func NewCell(number int, geometry string) (*Cell, error) {
	if number <= 0 {
		return nil, fmt.Errorf("%w: cell number %d must be > 0", ErrBadValue, number)
	}
	return &Cell{
		Record:         record.New(),
		number:         number,
		originalNumber: number,
		geometry:       geometry,
	}, nil
}

func parseCell(d *Deck, c *card.Card) (*Cell, error) {
	words := c.Words()
	if len(words) < 2 {
		return nil, malformedf(c, "cell", "expected number and material, got %d words", len(words))
	}
	num, err := strconv.Atoi(words[0])
	if err != nil || num <= 0 {
		return nil, malformedf(c, "cell", "%q is not a cell number", words[0])
	}
	matNum, err := strconv.Atoi(words[1])
	if err != nil || matNum < 0 {
		return nil, malformedf(c, "cell", "%q is not a material number", words[1])
	}
	cell := &Cell{
		Record:         record.FromCard(c),
		deck:           d,
		number:         num,
		originalNumber: num,
		materialNumber: matNum,
	}
	rest := words[2:]
	if matNum != 0 {
		if len(rest) == 0 {
			return nil, malformedf(c, "cell", "cell %d has a material but no density", num)
		}
		density, err := token.ParseFloat(rest[0])
		if err != nil {
			return nil, malformedf(c, "cell", "%q could not be parsed as a density", rest[0])
		}
		cell.density = density
		cell.densityRaw = rest[0]
		rest = rest[1:]
	}
	// geometry runs until the first key=value word
	var geom []string
	for len(rest) > 0 && !strings.Contains(rest[0], "=") {
		geom = append(geom, rest[0])
		rest = rest[1:]
	}
	cell.geometry = strings.Join(geom, " ")
	for _, word := range rest {
		key, value, _ := strings.Cut(word, "=")
		if strings.EqualFold(key, "lat") {
			if err := cell.parseInlineLattice(c, value); err != nil {
				return nil, err
			}
			continue
		}
		cell.params = append(cell.params, word)
	}
	return cell, nil
}

func (c *Cell) parseInlineLattice(raw *card.Card, value string) error {
	if c.deck.latticeRepr == latticeAggregate {
		return fmt.Errorf("%w: lat declared both on cells and in the data block",
			ErrRedundantDefinition)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return malformedf(raw, "cell", "lat=%q is not a lattice value", value)
	}
	lat, err := LatticeFromInt(n)
	if err != nil {
		return malformedf(raw, "cell", "cell lattice must be 1 or 2, got %d", n)
	}
	c.lattice = lat
	c.latticeFromInline = true
	c.deck.latticeRepr = latticeInline
	return nil
}

func (c *Cell) Number() int {
	return c.number
}

func (c *Cell) OriginalNumber() int {
	return c.originalNumber
}

func (c *Cell) SetNumber(n int) error {
	if c.deck != nil {
		if err := c.deck.Cells.reg.Renumber(c, n); err != nil {
			return err
		}
	} else if n <= 0 {
		return fmt.Errorf("%w: cell number %d must be > 0", ErrBadValue, n)
	}
	c.MarkMutated()
	c.number = n
	return nil
}

// Material returns the material filling this cell, nil for void.
func (c *Cell) Material() *Material {
	return c.material
}

func (c *Cell) MaterialNumber() int {
	return c.materialNumber
}

// SetMaterial fills the cell with m, or empties it when m is nil.
func (c *Cell) SetMaterial(m *Material) {
	c.MarkMutated()
	c.material = m
	if m == nil {
		c.materialNumber = 0
		return
	}
	c.materialNumber = m.Number()
}

func (c *Cell) Density() float64 {
	return c.density
}

func (c *Cell) SetDensity(d float64) {
	c.MarkMutated()
	c.density = d
	c.densityRaw = ""
}

func (c *Cell) Geometry() string {
	return c.geometry
}

func (c *Cell) SetGeometry(g string) {
	c.MarkMutated()
	c.geometry = g
}

func (c *Cell) Params() []string {
	return c.params
}

func (c *Cell) Lattice() Lattice {
	return c.lattice
}

// SetLattice edits the cell's lattice value. This is an edit of the
// attribute, not a new declaration: it is legal under either
// representation and marks only the attribute dirty, so unrelated
// cell card text keeps replaying verbatim when the attribute lives in
// the data block.
func (c *Cell) SetLattice(l Lattice) error {
	switch l {
	case NoLattice, Hexahedral, HexagonalPrism:
	default:
		return fmt.Errorf("%w: lattice must be 1 or 2, got %d", ErrBadValue, int(l))
	}
	c.latticeMutated = true
	c.lattice = l
	return nil
}

// CloneDetached deep-copies the cell without registry attachment.
func (c *Cell) CloneDetached() *Cell {
	cp := *c
	cp.params = append([]string(nil), c.params...)
	return &cp
}

func (c *Cell) validate() error {
	if c.number <= 0 {
		return record.Invalidf("cell has no number")
	}
	if c.materialNumber != 0 && c.densityRaw == "" && c.density == 0 {
		return record.Invalidf("cell %d has a material but no density", c.number)
	}
	return nil
}

// inlineLattice reports whether this cell's card must carry LAT=.
func (c *Cell) inlineLattice() bool {
	return c.deck != nil && c.deck.latticeInCell() && c.lattice != NoLattice
}

func (c *Cell) Lines(v format.Version) ([]string, error) {
	regen := c.Mutated()
	if c.deck != nil && c.deck.latticeInCell() {
		if c.latticeMutated {
			regen = true
		}
		if c.lattice != NoLattice && !c.latticeFromInline {
			// attribute moved from the data block onto this card
			regen = true
		}
	}
	if !regen {
		return c.ReplayLines(), nil
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	words := []string{strconv.Itoa(c.number), strconv.Itoa(c.materialNumber)}
	if c.materialNumber != 0 {
		words = append(words, c.densityWord())
	}
	if c.geometry != "" {
		words = append(words, strings.Fields(c.geometry)...)
	}
	words = append(words, c.params...)
	if c.inlineLattice() {
		words = append(words, fmt.Sprintf("LAT=%d", int(c.lattice)))
	}
	ret := c.CommentLines()
	ret = append(ret, encode.WrapWords(words, v, true)...)
	return ret, nil
}

func (c *Cell) densityWord() string {
	if c.densityRaw != "" {
		return c.densityRaw
	}
	return strconv.FormatFloat(c.density, 'g', -1, 64)
}
