package main

import (
	"bytes"
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// diff compares two deck files, or with one argument a file against
// its own parse-and-reserialize image, which reports exactly what the
// round trip would change (nothing, for an unmutated deck).
func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	var a, b string
	switch len(args) {
	case 1:
		in, err := readFileArg(cc, args[0])
		if err != nil {
			return err
		}
		d, err := getDeckFile(cc, args[0])
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", args[0], err)
		}
		var buf bytes.Buffer
		if err := d.Write(&buf, cfg.version()); err != nil {
			return err
		}
		a, b = string(in), buf.String()
	case 2:
		for i, dst := range []*string{&a, &b} {
			in, err := readFileArg(cc, args[i])
			if err != nil {
				return err
			}
			*dst = string(in)
		}
	default:
		return fmt.Errorf("%w: diff requires 1 or 2 args, got %d", cli.ErrUsage, len(args))
	}
	if a == b {
		return nil
	}
	dmp := diffmatchpatch.New()
	ca, cb, arr := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), arr)
	if cfg.colorize(cc.Out) {
		fmt.Fprint(cc.Out, dmp.DiffPrettyText(diffs))
	} else {
		for _, d := range diffs {
			prefix := " "
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				prefix = "+"
			case diffmatchpatch.DiffDelete:
				prefix = "-"
			}
			for _, line := range splitKeepNonEmpty(d.Text) {
				fmt.Fprintf(cc.Out, "%s%s\n", prefix, line)
			}
		}
	}
	return cli.ExitCodeErr(1)
}

func splitKeepNonEmpty(text string) []string {
	var ret []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			ret = append(ret, text[start:i])
			start = i + 1
		}
	}
	if start < len(text) {
		ret = append(ret, text[start:])
	}
	return ret
}
