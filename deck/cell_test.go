package deck

import (
	"errors"
	"strings"
	"testing"

	"github.com/deck-tools/deckfmt/format"
	"github.com/google/go-cmp/cmp"
)

func TestCellParsing(t *testing.T) {
	d := parseSample(t)
	c2 := d.Cells.All()[1]
	if c2.Number() != 2 || c2.MaterialNumber() != 2 {
		t.Errorf("cell 2 = number %d material %d", c2.Number(), c2.MaterialNumber())
	}
	if c2.Geometry() != "1 -2" {
		t.Errorf("geometry = %q", c2.Geometry())
	}
	if diff := cmp.Diff([]string{"imp:n=1"}, c2.Params()); diff != "" {
		t.Errorf("params (-want +got):\n%s", diff)
	}
}

func TestCellParseErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		cell string
	}{
		{"bad number", "x 0 -1"},
		{"negative number", "-1 0 -1"},
		{"bad material", "1 x -1"},
		{"material without density", "1 1"},
		{"bad density", "1 1 notanumber -1"},
		{"bad inline lattice", "1 0 -1 lat=9"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			in := "parse error test\n" + tc.cell + "\n\n1 so 1\n\nm1 1001.80c 1\n"
			_, err := Parse([]byte(in))
			if !errors.Is(err, ErrMalformedInput) && !errors.Is(err, ErrBadValue) {
				t.Errorf("got %v, want a parse error", err)
			}
		})
	}
}

func TestCellRegenerationKeepsDensityText(t *testing.T) {
	d := parseSample(t)
	c1 := d.Cells.All()[0]
	c1.SetGeometry("-1 2")
	lines, err := c1.Lines(format.V62)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	// the density keeps its original spelling across unrelated edits
	if diff := cmp.Diff([]string{"1 1 -0.7 -1 2 imp:n=1"}, lines); diff != "" {
		t.Errorf("regenerated cell (-want +got):\n%s", diff)
	}
}

func TestCellSetDensityReformats(t *testing.T) {
	d := parseSample(t)
	c1 := d.Cells.All()[0]
	c1.SetDensity(-0.75)
	lines, err := c1.Lines(format.V62)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if diff := cmp.Diff([]string{"1 1 -0.75 -1 imp:n=1"}, lines); diff != "" {
		t.Errorf("regenerated cell (-want +got):\n%s", diff)
	}
}

func TestCellSetMaterial(t *testing.T) {
	d := parseSample(t)
	c3 := d.Cells.All()[2]
	m2, _ := d.Materials.Get(2)
	c3.SetMaterial(m2)
	c3.SetDensity(-1.5)
	lines, err := c3.Lines(format.V62)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if diff := cmp.Diff([]string{"3 2 -1.5 2 imp:n=0"}, lines); diff != "" {
		t.Errorf("regenerated cell (-want +got):\n%s", diff)
	}
	c3.SetMaterial(nil)
	if c3.MaterialNumber() != 0 {
		t.Errorf("voided cell keeps material number %d", c3.MaterialNumber())
	}
}

func TestProgrammaticCell(t *testing.T) {
	if _, err := NewCell(0, "-1"); !errors.Is(err, ErrBadValue) {
		t.Errorf("NewCell(0): got %v", err)
	}
	c, err := NewCell(9, "-1 2")
	if err != nil {
		t.Fatalf("NewCell: %v", err)
	}
	if !c.Mutated() {
		t.Error("programmatic cell must regenerate from birth")
	}
	lines, err := c.Lines(format.V62)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if diff := cmp.Diff([]string{"9 0 -1 2"}, lines); diff != "" {
		t.Errorf("programmatic cell (-want +got):\n%s", diff)
	}
}

func TestContinuationsAndCommentsRoundTrip(t *testing.T) {
	in := `cut demo
1 1 -0.5 -1 &
c between the pieces
     imp:n=1
2 0 1 $ void
c trailing note

1 so 1

m1 1001.80c 1
`
	d, err := Parse([]byte(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.Cells.Len() != 2 {
		t.Fatalf("cells = %d, want 2", d.Cells.Len())
	}
	c1 := d.Cells.All()[0]
	if diff := cmp.Diff([]string{"imp:n=1"}, c1.Params()); diff != "" {
		t.Errorf("continuation words (-want +got):\n%s", diff)
	}
	out := render(t, d, format.V62)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("deck with cutting comments did not round trip (-want +got):\n%s", diff)
	}
}

func TestLongCellWraps(t *testing.T) {
	c, err := NewCell(1, "-1")
	if err != nil {
		t.Fatalf("NewCell: %v", err)
	}
	for _, p := range []string{
		"imp:n=1", "imp:p=1", "u=4", "fill=5", "trcl=(1 0 0)",
		"vol=12.5", "tmp=2.5e-8", "pwt=0.5", "ext:n=0.7s", "fcl:n=1",
	} {
		c.params = append(c.params, p)
	}
	lines, err := c.Lines(format.V61)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if len(lines) < 2 {
		t.Fatalf("long card did not wrap: %q", lines)
	}
	for i, line := range lines {
		if len(line) > format.V61.LineWidth() {
			t.Errorf("line %d exceeds %d columns: %q", i, format.V61.LineWidth(), line)
		}
		if i > 0 && !strings.HasPrefix(line, "     ") {
			t.Errorf("continuation %d not indented: %q", i, line)
		}
	}
}
