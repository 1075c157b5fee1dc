package main

import (
	"fmt"
	"strconv"

	"github.com/scott-cotton/cli"
)

func renumber(cfg *RenumberConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Renumber.Parse(cc, args)
	if err != nil {
		cfg.Renumber.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: renumber requires <record> <newnumber> <file>", cli.ErrUsage)
	}
	kind, number, err := splitTarget(args[0])
	if err != nil {
		return err
	}
	to, err := strconv.Atoi(args[1])
	if err != nil || to <= 0 {
		return fmt.Errorf("%w: %q is not a number", cli.ErrUsage, args[1])
	}
	d, err := getDeckFile(cc, args[2])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[2], err)
	}
	switch kind {
	case "cell":
		c, ok := d.Cells.Get(number)
		if !ok {
			return fmt.Errorf("no cell %d", number)
		}
		err = c.SetNumber(to)
	case "material":
		m, ok := d.Materials.Get(number)
		if !ok {
			return fmt.Errorf("no material %d", number)
		}
		err = m.SetNumber(to)
	}
	if err != nil {
		return err
	}
	return d.Write(cc.Out, cfg.version())
}
