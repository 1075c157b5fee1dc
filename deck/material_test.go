package deck

import (
	"errors"
	"strings"
	"testing"

	"github.com/deck-tools/deckfmt/format"
	"github.com/deck-tools/deckfmt/record"
	"github.com/google/go-cmp/cmp"
)

func materialDeck(t *testing.T, dataBlock string) *Deck {
	t.Helper()
	in := "material test\n1 0 -1\n\n1 so 1\n\n" + dataBlock
	d, err := Parse([]byte(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return d
}

func TestMaterialRegenerationColumns(t *testing.T) {
	d := materialDeck(t, "m1 1001.80c 2 8016.80c 1\nmt1 lwtr.20t\n")
	m, _ := d.Materials.Get(1)
	if err := m.SetNumber(5); err != nil {
		t.Fatalf("SetNumber: %v", err)
	}
	lines, err := m.Lines(format.V62)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	want := []string{
		"m5        1001.80c           2",
		"          8016.80c           1",
		"mt5 lwtr.20t",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("regenerated card (-want +got):\n%s", diff)
	}
}

func TestMaterialMassFractionRegeneration(t *testing.T) {
	d := materialDeck(t, "m2 92235.80c -0.05 92238.80c -0.95\n")
	m, _ := d.Materials.Get(2)
	if m.AtomFraction() {
		t.Fatal("negative fractions should parse as mass fractions")
	}
	if err := m.SetComponent("92235.80c", 0.06); err != nil {
		t.Fatalf("SetComponent: %v", err)
	}
	lines, err := m.Lines(format.V62)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	want := []string{
		"m2        92235.80c       -0.06",
		"         92238.80c       -0.95",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("regenerated card (-want +got):\n%s", diff)
	}
}

func TestMaterialParamTail(t *testing.T) {
	d := materialDeck(t, "m3 1001.80c 1 gas=1 estep=10\n")
	m, _ := d.Materials.Get(3)
	if m.ParamTail() != "gas=1 estep=10" {
		t.Errorf("param tail = %q", m.ParamTail())
	}
	if want := 1; len(m.Components()) != want {
		t.Errorf("components = %d, want %d", len(m.Components()), want)
	}
	m.SetAtomFraction(true)
	lines, err := m.Lines(format.V62)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if !strings.HasSuffix(lines[0], " gas=1 estep=10") {
		t.Errorf("param tail lost on regeneration: %q", lines[0])
	}
}

func TestMaterialShorthandExponentFraction(t *testing.T) {
	d := materialDeck(t, "m4 1001.80c 1.0-3\n")
	m, _ := d.Materials.Get(4)
	comp, ok := m.Component("1001.80c")
	if !ok || comp.Fraction != 1.0e-3 {
		t.Errorf("component = %+v, %v; want fraction 1e-3", comp, ok)
	}
	if !m.AtomFraction() {
		t.Error("positive shorthand fraction should be atom convention")
	}
}

func TestMaterialMixedSignsRejected(t *testing.T) {
	in := "material test\n1 0 -1\n\n1 so 1\n\nm1 1001.80c 2 8016.80c -1\n"
	_, err := Parse([]byte(in))
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("got %v, want ErrMalformedInput", err)
	}
}

func TestMaterialDuplicateComponentRejected(t *testing.T) {
	in := "material test\n1 0 -1\n\n1 so 1\n\nm1 1001.80c 2 1001.80c 1\n"
	_, err := Parse([]byte(in))
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("got %v, want ErrMalformedInput", err)
	}
}

func TestDuplicateThermalClaimRejected(t *testing.T) {
	in := "material test\n1 0 -1\n\n1 so 1\n\nm1 1001.80c 1\nmt1 lwtr.20t\nmt1 hwtr.20t\n"
	_, err := Parse([]byte(in))
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("got %v, want ErrMalformedInput", err)
	}
}

func TestOrphanThermalRecordReplays(t *testing.T) {
	d := materialDeck(t, "m1 1001.80c 1\nmt9 lwtr.20t\n")
	var orphan *ThermalScatteringRecord
	for _, ds := range d.DataRecords() {
		if mt, ok := ds.(*ThermalScatteringRecord); ok {
			orphan = mt
		}
	}
	if orphan == nil {
		t.Fatal("unclaimed mt record missing from the data list")
	}
	if orphan.Material() != nil {
		t.Error("orphan mt record has an owner")
	}
	out := render(t, d, format.V62)
	if !strings.Contains(out, "mt9 lwtr.20t\n") {
		t.Errorf("orphan mt card not replayed:\n%s", out)
	}
}

func TestRemoveThermalScattering(t *testing.T) {
	d := materialDeck(t, "m1 1001.80c 1\nmt1 lwtr.20t\n")
	m, _ := d.Materials.Get(1)
	m.RemoveThermalScattering()
	if m.ThermalScattering() != nil {
		t.Fatal("thermal record still attached")
	}
	if !m.Mutated() {
		t.Error("removal did not mark the material mutated")
	}
	out := render(t, d, format.V62)
	if strings.Contains(out, "mt1") {
		t.Errorf("removed mt card still serialized:\n%s", out)
	}
	// removing again is a no-op
	m.RemoveThermalScattering()
}

func TestThermalAddLaw(t *testing.T) {
	d := materialDeck(t, "m1 1001.80c 1\nmt1 lwtr.20t\n")
	m, _ := d.Materials.Get(1)
	mt := m.ThermalScattering()
	if err := mt.AddLaw("poly.20t"); err != nil {
		t.Fatalf("AddLaw: %v", err)
	}
	lines, err := mt.Lines(format.V62)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if diff := cmp.Diff([]string{"mt1 lwtr.20t poly.20t"}, lines); diff != "" {
		t.Errorf("regenerated mt card (-want +got):\n%s", diff)
	}
	if err := mt.AddLaw(""); !errors.Is(err, ErrBadValue) {
		t.Errorf("empty law: got %v", err)
	}
}

func TestProgrammaticMaterial(t *testing.T) {
	if _, err := NewMaterial(0, true); !errors.Is(err, ErrBadValue) {
		t.Errorf("NewMaterial(0): got %v", err)
	}
	m, err := NewMaterial(7, true)
	if err != nil {
		t.Fatalf("NewMaterial: %v", err)
	}
	if !m.Mutated() {
		t.Error("programmatic material must regenerate from birth")
	}
	// no components yet: serialization refuses
	if _, err := m.Lines(format.V62); !errors.Is(err, record.ErrInvalid) {
		t.Errorf("empty material Lines: got %v", err)
	}
	if err := m.SetComponent("1001.80c", 2); err != nil {
		t.Fatalf("SetComponent: %v", err)
	}
	m.SetThermalScattering("lwtr.20t")
	lines, err := m.Lines(format.V62)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	want := []string{
		"m7        1001.80c           2",
		"mt7 lwtr.20t",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("programmatic card (-want +got):\n%s", diff)
	}
}

func TestRemoveComponentKeepsIndex(t *testing.T) {
	d := materialDeck(t, "m1 1001.80c 2 8016.80c 1 6000.80c 3\n")
	m, _ := d.Materials.Get(1)
	if !m.RemoveComponent("8016.80c") {
		t.Fatal("RemoveComponent returned false")
	}
	if m.RemoveComponent("8016.80c") {
		t.Error("second removal succeeded")
	}
	comp, ok := m.Component("6000.80c")
	if !ok || comp.Fraction != 3 {
		t.Errorf("shifted component lookup = %+v, %v", comp, ok)
	}
	want := []Component{{Key: "1001.80c", Fraction: 2}, {Key: "6000.80c", Fraction: 3}}
	if diff := cmp.Diff(want, m.Components()); diff != "" {
		t.Errorf("components (-want +got):\n%s", diff)
	}
}
