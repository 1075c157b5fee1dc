package main

import (
	"fmt"
	"io"

	"github.com/deck-tools/deckfmt/card"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	commentColor = color.New(color.FgGreen)
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	if cfg.Color {
		// forced: override the library's tty autodetection
		color.NoColor = false
	}
	for i, file := range args {
		if err := viewFile(cfg, cc, file); err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		if i < len(args)-1 {
			cc.Out.Write([]byte("\n"))
		}
	}
	return nil
}

func viewFile(cfg *ViewConfig, cc *cli.Context, file string) error {
	d, err := getDeckFile(cc, file)
	if err != nil {
		return err
	}
	lines, err := d.Lines(cfg.version())
	if err != nil {
		return err
	}
	if !cfg.colorize(cc.Out) {
		for _, line := range lines {
			if _, err := io.WriteString(cc.Out, line+"\n"); err != nil {
				return err
			}
		}
		return nil
	}
	for i, line := range lines {
		var werr error
		switch {
		case i == 0:
			_, werr = titleColor.Fprintln(cc.Out, line)
		case card.IsComment(line):
			_, werr = commentColor.Fprintln(cc.Out, line)
		default:
			_, werr = fmt.Fprintln(cc.Out, line)
		}
		if werr != nil {
			return werr
		}
	}
	return nil
}
