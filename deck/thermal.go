package deck

import (
	"fmt"
	"strconv"

	"github.com/deck-tools/deckfmt/card"
	"github.com/deck-tools/deckfmt/encode"
	"github.com/deck-tools/deckfmt/format"
	"github.com/deck-tools/deckfmt/record"
)

// ThermalScatteringRecord is one mt card: thermal scattering law
// identifiers for the material of the same number. The link is weak
// at parse time (by original number) and resolved once, in the link
// pass, into a direct owning reference; afterwards the record is
// serialized by its material.
type ThermalScatteringRecord struct {
	record.Record

	originalNumber int
	laws           []string
	parent         *Material
}

func parseThermalScattering(c *card.Card, number int) (*ThermalScatteringRecord, error) {
	words := c.Words()
	if len(words) < 2 {
		return nil, malformedf(c, "mt", "mt card has no scattering laws")
	}
	return &ThermalScatteringRecord{
		Record:         record.FromCard(c),
		originalNumber: number,
		laws:           words[1:],
	}, nil
}

// OriginalNumber is the material number the card referenced in the
// source file.
func (r *ThermalScatteringRecord) OriginalNumber() int {
	return r.originalNumber
}

// Material returns the owning material once the link pass has run.
func (r *ThermalScatteringRecord) Material() *Material {
	return r.parent
}

func (r *ThermalScatteringRecord) Laws() []string {
	return r.laws
}

func (r *ThermalScatteringRecord) AddLaw(law string) error {
	if law == "" {
		return fmt.Errorf("%w: empty scattering law", ErrBadValue)
	}
	r.MarkMutated()
	r.laws = append(r.laws, law)
	return nil
}

func (r *ThermalScatteringRecord) Lines(v format.Version) ([]string, error) {
	if !r.Mutated() {
		return r.ReplayLines(), nil
	}
	if len(r.laws) == 0 {
		return nil, record.Invalidf("mt record has no scattering laws")
	}
	number := r.originalNumber
	if r.parent != nil {
		number = r.parent.Number()
	}
	words := append([]string{"mt" + strconv.Itoa(number)}, r.laws...)
	ret := r.CommentLines()
	ret = append(ret, encode.WrapWords(words, v, true)...)
	return ret, nil
}
