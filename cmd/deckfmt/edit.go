package main

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/deck-tools/deckfmt/deck"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"
)

func edit(cfg *EditConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Edit.Parse(cc, args)
	if err != nil {
		cfg.Edit.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Target == "" {
		return fmt.Errorf("%w: edit requires -t <record>", cli.ErrUsage)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: edit requires a patch and a file, got %d args", cli.ErrUsage, len(args))
	}
	kind, number, err := splitTarget(cfg.Target)
	if err != nil {
		return err
	}
	patchText := []byte(args[0])
	if cfg.File {
		patchText, err = readFileArg(cc, args[0])
		if err != nil {
			return err
		}
	}
	patch, err := jsonpatch.DecodePatch(patchText)
	if err != nil {
		return fmt.Errorf("%w: bad patch: %w", cli.ErrUsage, err)
	}
	d, err := getDeckFile(cc, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	switch kind {
	case "cell":
		err = editCell(d, number, patch)
	case "material":
		err = editMaterial(d, number, patch)
	}
	if err != nil {
		return err
	}
	return d.Write(cc.Out, cfg.version())
}

func applyPatch[T any](doc T, patch jsonpatch.Patch) (T, error) {
	var out T
	raw, err := json.Marshal(doc)
	if err != nil {
		return out, err
	}
	patched, err := patch.Apply(raw)
	if err != nil {
		return out, fmt.Errorf("error applying patch: %w", err)
	}
	if err := json.Unmarshal(patched, &out); err != nil {
		return out, fmt.Errorf("patched document is malformed: %w", err)
	}
	return out, nil
}

func editCell(d *deck.Deck, number int, patch jsonpatch.Patch) error {
	c, ok := d.Cells.Get(number)
	if !ok {
		return fmt.Errorf("no cell %d", number)
	}
	before := cellDocOf(c)
	after, err := applyPatch(before, patch)
	if err != nil {
		return err
	}
	// apply only what changed so untouched fields keep their
	// original text
	if after.Number != before.Number {
		if err := c.SetNumber(after.Number); err != nil {
			return err
		}
	}
	if after.Material != before.Material {
		if after.Material == 0 {
			c.SetMaterial(nil)
		} else {
			m, ok := d.Materials.Get(after.Material)
			if !ok {
				return fmt.Errorf("no material %d", after.Material)
			}
			c.SetMaterial(m)
		}
	}
	if after.Density != before.Density {
		c.SetDensity(after.Density)
	}
	if after.Geometry != before.Geometry {
		c.SetGeometry(after.Geometry)
	}
	if after.Lattice != before.Lattice {
		if err := c.SetLattice(deck.Lattice(after.Lattice)); err != nil {
			return err
		}
	}
	return nil
}

func editMaterial(d *deck.Deck, number int, patch jsonpatch.Patch) error {
	m, ok := d.Materials.Get(number)
	if !ok {
		return fmt.Errorf("no material %d", number)
	}
	before := materialDocOf(m)
	after, err := applyPatch(before, patch)
	if err != nil {
		return err
	}
	if after.Number != before.Number {
		if err := m.SetNumber(after.Number); err != nil {
			return err
		}
	}
	if after.Atom != before.Atom {
		m.SetAtomFraction(after.Atom)
	}
	if !slices.Equal(after.Components, before.Components) {
		keep := map[string]bool{}
		for _, comp := range after.Components {
			if err := m.SetComponent(comp.Key, comp.Fraction); err != nil {
				return err
			}
			keep[comp.Key] = true
		}
		for _, comp := range before.Components {
			if !keep[comp.Key] {
				m.RemoveComponent(comp.Key)
			}
		}
	}
	if !slices.Equal(after.Thermal, before.Thermal) {
		if len(after.Thermal) == 0 {
			m.RemoveThermalScattering()
		} else {
			m.SetThermalScattering(after.Thermal...)
		}
	}
	return nil
}
