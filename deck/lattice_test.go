package deck

import (
	"errors"
	"strings"
	"testing"

	"github.com/deck-tools/deckfmt/format"
	"github.com/google/go-cmp/cmp"
)

const aggregateDeck = `lattice demo
1 1 -0.5 -1
2 1 -0.5 -2
3 1 -0.5 -3

1 so 1
2 so 2
3 so 3

m1 1001.80c 1
lat 1 1 2
`

func parseAggregate(t *testing.T) *Deck {
	t.Helper()
	d, err := Parse([]byte(aggregateDeck))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return d
}

func cellLattices(d *Deck) []Lattice {
	var ret []Lattice
	for _, c := range d.Cells.All() {
		ret = append(ret, c.Lattice())
	}
	return ret
}

func TestAggregatePushesToCells(t *testing.T) {
	d := parseAggregate(t)
	want := []Lattice{Hexahedral, Hexahedral, HexagonalPrism}
	if diff := cmp.Diff(want, cellLattices(d)); diff != "" {
		t.Errorf("cell lattices (-want +got):\n%s", diff)
	}
	if d.LatticeRecord() == nil {
		t.Error("aggregate record not registered on the deck")
	}
}

func TestAggregateReplaysVerbatim(t *testing.T) {
	d := parseAggregate(t)
	out := render(t, d, format.V62)
	if !strings.Contains(out, "lat 1 1 2\n") {
		t.Errorf("original lat card not replayed verbatim:\n%s", out)
	}
}

func TestAggregateRegeneratesAfterCellEdit(t *testing.T) {
	d := parseAggregate(t)
	if err := d.Cells.All()[2].SetLattice(Hexahedral); err != nil {
		t.Fatalf("SetLattice: %v", err)
	}
	out := render(t, d, format.V62)
	if strings.Contains(out, "lat 1 1 2") {
		t.Error("stale lat card replayed after a cell edit")
	}
	if !strings.Contains(out, "LAT 1 2R\n") {
		t.Errorf("want compressed LAT 1 2R, got:\n%s", out)
	}
	// the cell cards themselves were not touched
	if !strings.Contains(out, "3 1 -0.5 -3\n") {
		t.Error("untouched cell card was regenerated")
	}
}

func TestAggregateRegeneratesAfterCellCountChange(t *testing.T) {
	d := parseAggregate(t)
	c, err := NewCell(4, "-1")
	if err != nil {
		t.Fatalf("NewCell: %v", err)
	}
	if err := d.Cells.Add(c); err != nil {
		t.Fatalf("Add: %v", err)
	}
	out := render(t, d, format.V62)
	if strings.Contains(out, "lat 1 1 2\n") {
		t.Error("stale lat card replayed after the deck grew")
	}
	if !strings.Contains(out, "LAT 1 1R 2 J\n") {
		t.Errorf("new cell not covered by a jump:\n%s", out)
	}
}

func TestAggregateJumpLeavesCellAlone(t *testing.T) {
	in := `jump demo
1 1 -0.5 -1
2 1 -0.5 -2
3 1 -0.5 -3

1 so 1

m1 1001.80c 1
lat 1 j 2
`
	d, err := Parse([]byte(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Lattice{Hexahedral, NoLattice, HexagonalPrism}
	if diff := cmp.Diff(want, cellLattices(d)); diff != "" {
		t.Errorf("cell lattices (-want +got):\n%s", diff)
	}
	// regeneration keeps the hole as a jump
	if err := d.Cells.All()[0].SetLattice(HexagonalPrism); err != nil {
		t.Fatalf("SetLattice: %v", err)
	}
	out := render(t, d, format.V62)
	if !strings.Contains(out, "LAT 2 J 2\n") {
		t.Errorf("want LAT 2 J 2, got:\n%s", out)
	}
}

func TestRedundantDeclarationBothForms(t *testing.T) {
	in := `redundant demo
1 1 -0.5 -1 lat=1
2 1 -0.5 -2

1 so 1

m1 1001.80c 1
lat 1 1
`
	_, err := Parse([]byte(in))
	if !errors.Is(err, ErrRedundantDefinition) {
		t.Errorf("got %v, want ErrRedundantDefinition", err)
	}
}

func TestProgrammaticDeclarationConflicts(t *testing.T) {
	d := parseAggregate(t)
	if _, err := d.NewLatticeRecord(); !errors.Is(err, ErrRedundantDefinition) {
		t.Errorf("second aggregate declaration: got %v", err)
	}

	inline := `inline demo
1 1 -1.0 -1 u=1 lat=1
2 0 1

1 so 5

m1 1001.80c 1
`
	di, err := Parse([]byte(inline))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := di.NewLatticeRecord(); !errors.Is(err, ErrRedundantDefinition) {
		t.Errorf("aggregate declaration over inline: got %v", err)
	}
}

func TestInlineMigratesToAggregate(t *testing.T) {
	in := `inline demo
1 1 -1.0 -1 u=1 lat=1
2 0 1

1 so 5

m1 1001.80c 1
`
	d, err := Parse([]byte(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c1 := d.Cells.All()[0]
	// the inline declaration blocks the aggregate form only while it
	// holds values
	if err := c1.SetLattice(NoLattice); err != nil {
		t.Fatalf("SetLattice: %v", err)
	}
	r, err := d.NewLatticeRecord()
	if err != nil {
		t.Fatalf("NewLatticeRecord after clearing inline values: %v", err)
	}
	if r != d.LatticeRecord() {
		t.Fatal("aggregate record not registered on the deck")
	}
	if err := c1.SetLattice(Hexahedral); err != nil {
		t.Fatalf("SetLattice: %v", err)
	}
	out := render(t, d, format.V62)
	if !strings.Contains(out, "LAT 1 J\n") {
		t.Errorf("attribute not emitted in the data block:\n%s", out)
	}
	if strings.Contains(out, "lat=1") || strings.Contains(out, "LAT=1") {
		t.Errorf("cell card still carries the attribute inline:\n%s", out)
	}
	if !strings.Contains(out, "1 1 -1.0 -1 u=1\n") {
		t.Errorf("migrated cell card not regenerated without the attribute:\n%s", out)
	}
}

func TestInlineDeclaration(t *testing.T) {
	in := `inline demo
1 1 -1.0 -1 u=1 lat=1
2 0 1

1 so 5

m1 1001.80c 1
`
	d, err := Parse([]byte(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c1 := d.Cells.All()[0]
	if c1.Lattice() != Hexahedral {
		t.Errorf("lattice = %v", c1.Lattice())
	}
	if diff := cmp.Diff([]string{"u=1"}, c1.Params()); diff != "" {
		t.Errorf("params (-want +got):\n%s", diff)
	}
	if d.LatticeRecord() != nil {
		t.Error("inline declaration produced an aggregate record")
	}

	// untouched, the cell card replays byte for byte
	out := render(t, d, format.V62)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("inline deck round trip (-want +got):\n%s", diff)
	}

	// an edit regenerates the card with the attribute inline
	if err := c1.SetLattice(HexagonalPrism); err != nil {
		t.Fatalf("SetLattice: %v", err)
	}
	out = render(t, d, format.V62)
	if !strings.Contains(out, "1 1 -1.0 -1 u=1 LAT=2\n") {
		t.Errorf("edited inline cell not regenerated:\n%s", out)
	}
}

func TestPrintStyleMovesAttributeToCells(t *testing.T) {
	d := parseAggregate(t)
	d.LatticeRecord().SetPrintInData(false)
	out := render(t, d, format.V62)
	if strings.Contains(strings.ToLower(out), "\nlat") {
		t.Errorf("lat card still in the data block:\n%s", out)
	}
	if !strings.Contains(out, "1 1 -0.5 -1 LAT=1\n") {
		t.Errorf("first cell missing inline attribute:\n%s", out)
	}
	if !strings.Contains(out, "3 1 -0.5 -3 LAT=2\n") {
		t.Errorf("third cell missing inline attribute:\n%s", out)
	}

	// the rendered form parses back to the same attribute values
	back, err := Parse([]byte(out))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if diff := cmp.Diff(cellLattices(d), cellLattices(back)); diff != "" {
		t.Errorf("attribute values changed across the style flip (-want +got):\n%s", diff)
	}
}

func TestSetDataValidatesValues(t *testing.T) {
	d := parseAggregate(t)
	r := d.LatticeRecord()
	if err := r.SetData(nil); err != nil {
		t.Errorf("SetData(nil): %v", err)
	}
	if !r.Mutated() {
		t.Error("SetData did not mark the record mutated")
	}
}

func TestBadLatticeValueRejected(t *testing.T) {
	in := `bad lattice
1 1 -0.5 -1

1 so 1

m1 1001.80c 1
lat 3
`
	_, err := Parse([]byte(in))
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("got %v, want ErrMalformedInput", err)
	}
}
