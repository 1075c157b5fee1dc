package encode

import (
	"fmt"
	"math"
	"strconv"

	"github.com/deck-tools/deckfmt/debug"
	"github.com/deck-tools/deckfmt/token"
)

// DefaultTolerance is the relative tolerance under which two numeric
// values are considered equal for run-length compression. It mirrors
// the legacy behavior of writing physically indistinguishable values
// as a repeat.
const DefaultTolerance = 1e-1

type compState struct {
	tolerance float64
}

type CompressOption func(*compState)

// Tolerance sets the relative tolerance for numeric run detection.
func Tolerance(eps float64) CompressOption {
	return func(cs *compState) { cs.tolerance = eps }
}

// Compress renders a sequence of data as card words, collapsing
// maximal runs of two or more equal numeric values into "<v> NR"
// (N additional repeats) and maximal runs of two or more jumps into
// "NJ". Runs never span a value/jump boundary, never mix int and
// float data, and a run of one never compresses. String values are
// emitted as-is.
func Compress(data []token.Datum, opts ...CompressOption) []string {
	cs := &compState{tolerance: DefaultTolerance}
	for _, opt := range opts {
		opt(cs)
	}
	var words []string
	i := 0
	n := len(data)
	for i < n {
		d := data[i]
		switch d.Type {
		case token.JumpType:
			count := 0
			for i < n && data[i].Type == token.JumpType {
				count += data[i].Count
				i++
			}
			words = append(words, jumpWord(count))
		case token.IntType, token.FloatType:
			v, _ := d.Number()
			run := 1
			for i+run < n {
				nd := data[i+run]
				// runs never mix int and float data
				if nd.Type != d.Type {
					break
				}
				next, ok := nd.Number()
				if !ok || !cs.close(v, next) {
					break
				}
				run++
			}
			words = append(words, d.Word())
			if run > 1 {
				words = append(words, strconv.Itoa(run-1)+"R")
			}
			i += run
		case token.StringType:
			words = append(words, d.Word())
			i++
		case token.RepeatType:
			// already-compressed input passes through
			words = append(words, d.Word())
			i++
		}
	}
	if debug.Compress() {
		debug.Logf("compress: %d data -> %d words", len(data), len(words))
	}
	return words
}

// close is the documented equality rule: symmetric relative
// comparison, |a-b| <= eps * max(|a|, |b|), with exact equality
// covering zero runs.
func (cs *compState) close(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= cs.tolerance*math.Max(math.Abs(a), math.Abs(b))
}

func jumpWord(count int) string {
	if count == 1 {
		return "J"
	}
	return strconv.Itoa(count) + "J"
}

// Decompress expands a compressed word stream back into a flat datum
// sequence: repeat markers re-emit the previous value, jump markers
// expand into single jumps. The result carries canonical (empty) Raw
// spellings, so Decompress(Compress(seq)) == seq for any sequence of
// values and single jumps.
func Decompress(words []string) ([]token.Datum, error) {
	var data []token.Datum
	for _, word := range words {
		d, err := token.ParseDatum(word)
		if err != nil {
			return nil, err
		}
		d.Raw = ""
		switch d.Type {
		case token.RepeatType:
			if len(data) == 0 || !data[len(data)-1].IsValue() {
				return nil, fmt.Errorf("%w: %q repeats nothing", ErrDecompress, word)
			}
			last := data[len(data)-1]
			for range d.Count {
				data = append(data, last)
			}
		case token.JumpType:
			for range d.Count {
				data = append(data, token.Jump())
			}
		case token.IntType, token.FloatType, token.StringType:
			data = append(data, d)
		}
	}
	return data, nil
}
