package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func clone(cfg *CloneConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Clone.Parse(cc, args)
	if err != nil {
		cfg.Clone.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: clone requires <record> <file>", cli.ErrUsage)
	}
	kind, number, err := splitTarget(args[0])
	if err != nil {
		return err
	}
	if cfg.Start <= 0 || cfg.Step <= 0 {
		return fmt.Errorf("%w: -start and -step must be positive", cli.ErrUsage)
	}
	d, err := getDeckFile(cc, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	switch kind {
	case "cell":
		c, ok := d.Cells.Get(number)
		if !ok {
			return fmt.Errorf("no cell %d", number)
		}
		cp, err := d.Cells.Clone(c, cfg.Start, cfg.Step)
		if err != nil {
			return err
		}
		if err := d.Cells.Add(cp); err != nil {
			return err
		}
	case "material":
		m, ok := d.Materials.Get(number)
		if !ok {
			return fmt.Errorf("no material %d", number)
		}
		cp, err := d.Materials.Clone(m, cfg.Start, cfg.Step)
		if err != nil {
			return err
		}
		if err := d.Materials.Add(cp); err != nil {
			return err
		}
	}
	return d.Write(cc.Out, cfg.version())
}
