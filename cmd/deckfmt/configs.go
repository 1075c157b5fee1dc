package main

import (
	"fmt"
	"io"
	"os"

	"github.com/deck-tools/deckfmt/format"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='colorize output'"`

	Version format.Version

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) versionOpt(_ *cli.Context, a string) (any, error) {
	v, err := format.ParseVersion(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Version = v
	return v, nil
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) version() format.Version {
	if cfg.Version == (format.Version{}) {
		return format.V62
	}
	return cfg.Version
}

// colorize reports whether output to w should carry ANSI colors:
// forced by -color, otherwise only when w is a terminal.
func (cfg *MainConfig) colorize(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	colorSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorSet = opt.Value != nil
		break
	}
	if colorSet {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type ListConfig struct {
	*MainConfig

	Where string `cli:"name=where desc='filter expression over the listed records'"`

	List *cli.Command
}

type DumpConfig struct {
	*MainConfig

	Dump *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

type EditConfig struct {
	*MainConfig

	Target string `cli:"name=t desc='record to edit, e.g. c2 or m1'"`
	File   bool   `cli:"name=f desc='read the patch from a file instead of the argument'"`

	Edit *cli.Command
}

type RenumberConfig struct {
	*MainConfig

	Renumber *cli.Command
}

type CloneConfig struct {
	*MainConfig

	Start int `cli:"name=start desc='first number to try for the copy'"`
	Step  int `cli:"name=step desc='number scan stride'"`

	Clone *cli.Command
}
