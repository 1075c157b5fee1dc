package deck

import (
	"fmt"
	"strings"

	"github.com/deck-tools/deckfmt/card"
	"github.com/deck-tools/deckfmt/format"
	"github.com/deck-tools/deckfmt/record"
	"github.com/deck-tools/deckfmt/token"
)

// Component is one constituent of a material: a nuclide key and its
// fraction. Fractions are stored as non-negative magnitudes; whether
// they are atom or mass fractions is a single property of the whole
// material.
type Component struct {
	Key      string
	Fraction float64
}

// Material is one m card: an ordered set of components plus an
// optional free-text parameter tail and an optional thermal
// scattering law record claimed after parse.
type Material struct {
	record.Record

	deck           *Deck
	number         int
	originalNumber int

	atomFraction bool
	components   []Component
	index        map[string]int

	paramTail string
	thermal   *ThermalScatteringRecord
}

// NewMaterial builds a material programmatically. It has no raw text
// and therefore always regenerates on output. It is not attached to
// any deck until added to a Materials collection.
func NewMaterial(number int, atomFraction bool) (*Material, error) {
	if number <= 0 {
		return nil, fmt.Errorf("%w: material number %d must be > 0", ErrBadValue, number)
	}
	return &Material{
		Record:         record.New(),
		number:         number,
		originalNumber: number,
		atomFraction:   atomFraction,
		index:          map[string]int{},
	}, nil
}

func parseMaterial(d *Deck, c *card.Card, number int) (*Material, error) {
	m := &Material{
		Record:         record.FromCard(c),
		deck:           d,
		number:         number,
		originalNumber: number,
		index:          map[string]int{},
	}
	words := c.Words()
	i := 1
	for i < len(words) {
		key := words[i]
		if !isComponentKey(key) {
			// explicit lookahead: the remainder is the free-form
			// parameter tail, not a component pair
			m.paramTail = strings.Join(words[i:], " ")
			break
		}
		if i+1 >= len(words) {
			return nil, malformedf(c, "m", "component %q has no fraction", key)
		}
		fraction, err := token.ParseFloat(words[i+1])
		if err != nil {
			return nil, malformedf(c, "m", "%q could not be parsed as a material fraction", words[i+1])
		}
		if len(m.components) == 0 {
			m.atomFraction = fraction > 0
		} else if (fraction > 0) != m.atomFraction {
			return nil, malformedf(c, "m",
				"material definitions cannot use atom and mass fractions at the same time")
		}
		if _, ok := m.index[key]; ok {
			return nil, malformedf(c, "m", "component %q given twice", key)
		}
		m.index[key] = len(m.components)
		m.components = append(m.components, Component{Key: key, Fraction: abs(fraction)})
		i += 2
	}
	return m, nil
}

// isComponentKey matches nuclide identifiers: digits with an optional
// library suffix, e.g. "1001" or "8016.80c".
func isComponentKey(word string) bool {
	base, _, _ := strings.Cut(word, ".")
	if base == "" {
		return false
	}
	for i := 0; i < len(base); i++ {
		if base[i] < '0' || base[i] > '9' {
			return false
		}
	}
	return !strings.Contains(word, "=")
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func (m *Material) Number() int {
	return m.number
}

func (m *Material) OriginalNumber() int {
	return m.originalNumber
}

func (m *Material) SetNumber(n int) error {
	if m.deck != nil {
		if err := m.deck.Materials.reg.Renumber(m, n); err != nil {
			return err
		}
	} else if n <= 0 {
		return fmt.Errorf("%w: material number %d must be > 0", ErrBadValue, n)
	}
	m.MarkMutated()
	m.number = n
	if m.thermal != nil {
		// the mt card carries the material's number
		m.thermal.MarkMutated()
	}
	return nil
}

// AtomFraction reports whether the components are atom fractions (as
// opposed to mass fractions).
func (m *Material) AtomFraction() bool {
	return m.atomFraction
}

// Components returns the components in declaration order.
func (m *Material) Components() []Component {
	return m.components
}

// Component looks a component up by key.
func (m *Material) Component(key string) (Component, bool) {
	i, ok := m.index[key]
	if !ok {
		return Component{}, false
	}
	return m.components[i], true
}

// SetComponent adds a component or replaces the fraction of an
// existing one. The fraction is a magnitude and must be positive.
func (m *Material) SetComponent(key string, fraction float64) error {
	if !isComponentKey(key) {
		return fmt.Errorf("%w: %q is not a component key", ErrBadValue, key)
	}
	if fraction <= 0 {
		return fmt.Errorf("%w: fraction %g must be > 0", ErrBadValue, fraction)
	}
	m.MarkMutated()
	if i, ok := m.index[key]; ok {
		m.components[i].Fraction = fraction
		return nil
	}
	if m.index == nil {
		m.index = map[string]int{}
	}
	m.index[key] = len(m.components)
	m.components = append(m.components, Component{Key: key, Fraction: fraction})
	return nil
}

// RemoveComponent deletes a component by key.
func (m *Material) RemoveComponent(key string) bool {
	i, ok := m.index[key]
	if !ok {
		return false
	}
	m.MarkMutated()
	m.components = append(m.components[:i], m.components[i+1:]...)
	delete(m.index, key)
	for k, j := range m.index {
		if j > i {
			m.index[k] = j - 1
		}
	}
	return true
}

// SetAtomFraction flips the convention for the whole mapping.
func (m *Material) SetAtomFraction(v bool) {
	m.MarkMutated()
	m.atomFraction = v
}

// ParamTail returns the free-form key=value text after the
// components, verbatim.
func (m *Material) ParamTail() string {
	return m.paramTail
}

// ThermalScattering returns the claimed mt record, if any.
func (m *Material) ThermalScattering() *ThermalScatteringRecord {
	return m.thermal
}

// SetThermalScattering attaches a programmatic mt record with the
// given law identifiers.
func (m *Material) SetThermalScattering(laws ...string) *ThermalScatteringRecord {
	r := &ThermalScatteringRecord{
		Record:         record.New(),
		originalNumber: m.number,
		laws:           laws,
		parent:         m,
	}
	m.thermal = r
	return r
}

// RemoveThermalScattering detaches the mt record from the material,
// so no mt card is emitted for it.
func (m *Material) RemoveThermalScattering() {
	if m.thermal == nil {
		return
	}
	m.MarkMutated()
	m.thermal = nil
}

// CloneDetached deep-copies the material, its components and its
// thermal scattering record, sharing no mutable state and holding no
// registry slot.
func (m *Material) CloneDetached() *Material {
	cp := *m
	cp.components = append([]Component(nil), m.components...)
	cp.index = make(map[string]int, len(m.index))
	for k, v := range m.index {
		cp.index[k] = v
	}
	if m.thermal != nil {
		tcp := *m.thermal
		tcp.laws = append([]string(nil), m.thermal.laws...)
		tcp.parent = &cp
		cp.thermal = &tcp
	}
	return &cp
}

func (m *Material) validate() error {
	if len(m.components) == 0 {
		return record.Invalidf("material %d does not have any components defined", m.number)
	}
	return nil
}

// fraction column layout of a regenerated m card, from the fixed
// column contract: key right-aligned to 8 then 18, fraction to 11
// with 4 significant digits.
const (
	matHeaderFormat = "m%-8d %8s %11.4g"
	matContFormat   = "%18s %11.4g"
)

func (m *Material) Lines(v format.Version) ([]string, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	var ret []string
	if !m.Mutated() {
		ret = m.ReplayLines()
	} else {
		ret = m.CommentLines()
		sign := 1.0
		if !m.atomFraction {
			sign = -1.0
		}
		first := m.components[0]
		header := fmt.Sprintf(matHeaderFormat, m.number, first.Key, sign*first.Fraction)
		if m.paramTail != "" {
			header += " " + m.paramTail
		}
		ret = append(ret, header)
		for _, comp := range m.components[1:] {
			ret = append(ret, fmt.Sprintf(matContFormat, comp.Key, sign*comp.Fraction))
		}
	}
	if m.thermal != nil {
		tLines, err := m.thermal.Lines(v)
		if err != nil {
			return nil, err
		}
		ret = append(ret, tLines...)
	}
	return ret, nil
}

// claimThermal resolves the weak by-number link to an mt record into
// a direct owning reference. It runs exactly once, during the deck's
// link pass.
func (m *Material) claimThermal(r *ThermalScatteringRecord) error {
	if m.thermal != nil {
		return malformedf(nil, "mt",
			"multiple mt cards were specified for material %d", m.number)
	}
	m.thermal = r
	r.parent = m
	return nil
}
