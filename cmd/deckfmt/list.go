package main

import (
	"fmt"

	"github.com/deck-tools/deckfmt/deck"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"
)

func list(cfg *ListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		cfg.List.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: list requires a record kind, cells or materials", cli.ErrUsage)
	}
	kind := args[0]
	args = args[1:]
	if len(args) == 0 {
		args = []string{"-"}
	}
	var filter *vm.Program
	if cfg.Where != "" {
		filter, err = expr.Compile(cfg.Where, expr.AsBool())
		if err != nil {
			return fmt.Errorf("%w: bad -where expression: %w", cli.ErrUsage, err)
		}
	}
	for _, file := range args {
		d, err := getDeckFile(cc, file)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		switch kind {
		case "cells", "c":
			if err := listCells(cfg, cc, d, filter); err != nil {
				return err
			}
		case "materials", "m":
			if err := listMaterials(cfg, cc, d, filter); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: unknown record kind %q", cli.ErrUsage, kind)
		}
	}
	return nil
}

func listCells(cfg *ListConfig, cc *cli.Context, d *deck.Deck, filter *vm.Program) error {
	for _, c := range d.Cells.All() {
		env := map[string]any{
			"number":   c.Number(),
			"material": c.MaterialNumber(),
			"density":  c.Density(),
			"geometry": c.Geometry(),
			"lattice":  int(c.Lattice()),
			"void":     c.MaterialNumber() == 0,
		}
		keep, err := matches(filter, env)
		if err != nil {
			return err
		}
		if !keep {
			continue
		}
		fmt.Fprintf(cc.Out, "cell %d: material=%d density=%g geometry=%q\n",
			c.Number(), c.MaterialNumber(), c.Density(), c.Geometry())
	}
	return nil
}

func listMaterials(cfg *ListConfig, cc *cli.Context, d *deck.Deck, filter *vm.Program) error {
	for _, m := range d.Materials.All() {
		env := map[string]any{
			"number":     m.Number(),
			"atom":       m.AtomFraction(),
			"components": len(m.Components()),
		}
		keep, err := matches(filter, env)
		if err != nil {
			return err
		}
		if !keep {
			continue
		}
		convention := "mass"
		if m.AtomFraction() {
			convention = "atom"
		}
		fmt.Fprintf(cc.Out, "material %d: %d components, %s fractions\n",
			m.Number(), len(m.Components()), convention)
	}
	return nil
}

func matches(filter *vm.Program, env map[string]any) (bool, error) {
	if filter == nil {
		return true, nil
	}
	out, err := expr.Run(filter, env)
	if err != nil {
		return false, fmt.Errorf("error evaluating -where: %w", err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("-where did not evaluate to a boolean")
	}
	return b, nil
}
