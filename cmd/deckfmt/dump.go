package main

import (
	"fmt"

	"github.com/deck-tools/deckfmt/deck"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

type deckDoc struct {
	Title     string        `yaml:"title"`
	Cells     []cellDoc     `yaml:"cells"`
	Materials []materialDoc `yaml:"materials"`
	Surfaces  []string      `yaml:"surfaces,omitempty"`
	Data      []string      `yaml:"data,omitempty"`
}

type cellDoc struct {
	Number   int     `yaml:"number" json:"number"`
	Material int     `yaml:"material" json:"material"`
	Density  float64 `yaml:"density,omitempty" json:"density"`
	Geometry string  `yaml:"geometry" json:"geometry"`
	Lattice  int     `yaml:"lattice,omitempty" json:"lattice"`
}

type materialDoc struct {
	Number     int            `yaml:"number" json:"number"`
	Atom       bool           `yaml:"atom" json:"atom"`
	Components []componentDoc `yaml:"components" json:"components"`
	Thermal    []string       `yaml:"thermal,omitempty" json:"thermal,omitempty"`
}

type componentDoc struct {
	Key      string  `yaml:"key" json:"key"`
	Fraction float64 `yaml:"fraction" json:"fraction"`
}

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, file := range args {
		d, err := getDeckFile(cc, file)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		if i > 0 {
			cc.Out.Write([]byte("---\n"))
		}
		out, err := yaml.Marshal(docOf(d))
		if err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
		if _, err := cc.Out.Write(out); err != nil {
			return err
		}
	}
	return nil
}

func docOf(d *deck.Deck) *deckDoc {
	doc := &deckDoc{Title: d.Title}
	for _, c := range d.Cells.All() {
		doc.Cells = append(doc.Cells, cellDocOf(c))
	}
	for _, m := range d.Materials.All() {
		doc.Materials = append(doc.Materials, materialDocOf(m))
	}
	for _, s := range d.Surfaces() {
		doc.Surfaces = append(doc.Surfaces, s.Keyword())
	}
	for _, ds := range d.DataRecords() {
		if o, ok := ds.(*deck.Opaque); ok {
			doc.Data = append(doc.Data, o.Keyword())
		}
	}
	return doc
}

func cellDocOf(c *deck.Cell) cellDoc {
	return cellDoc{
		Number:   c.Number(),
		Material: c.MaterialNumber(),
		Density:  c.Density(),
		Geometry: c.Geometry(),
		Lattice:  int(c.Lattice()),
	}
}

func materialDocOf(m *deck.Material) materialDoc {
	doc := materialDoc{
		Number: m.Number(),
		Atom:   m.AtomFraction(),
	}
	for _, comp := range m.Components() {
		doc.Components = append(doc.Components, componentDoc{
			Key:      comp.Key,
			Fraction: comp.Fraction,
		})
	}
	if mt := m.ThermalScattering(); mt != nil {
		doc.Thermal = append(doc.Thermal, mt.Laws()...)
	}
	return doc
}
