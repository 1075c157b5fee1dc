package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/deck-tools/deckfmt/deck"

	"github.com/scott-cotton/cli"
)

func getDeckFile(cc *cli.Context, path string) (*deck.Deck, error) {
	d, err := readFileArg(cc, path)
	if err != nil {
		return nil, err
	}
	return deck.Parse(d)
}

func readFileArg(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// splitTarget parses record designators like "c2" or "m1".
func splitTarget(arg string) (kind string, number int, err error) {
	i := 0
	for i < len(arg) && (arg[i] < '0' || arg[i] > '9') {
		i++
	}
	kind = strings.ToLower(arg[:i])
	n, aerr := strconv.Atoi(arg[i:])
	if aerr != nil || n <= 0 {
		return "", 0, fmt.Errorf("%w: %q is not a record designator", cli.ErrUsage, arg)
	}
	switch kind {
	case "c", "cell":
		kind = "cell"
	case "m", "material":
		kind = "material"
	default:
		return "", 0, fmt.Errorf("%w: unknown record kind %q", cli.ErrUsage, kind)
	}
	return kind, n, nil
}
