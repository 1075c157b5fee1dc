package token

import (
	"strconv"
	"strings"
)

type DatumType int

const (
	JumpType DatumType = iota
	IntType
	FloatType
	StringType
	RepeatType
)

func (t DatumType) String() string {
	s, ok := map[DatumType]string{
		JumpType:   "Jump",
		IntType:    "Int",
		FloatType:  "Float",
		StringType: "String",
		RepeatType: "Repeat",
	}[t]
	if ok {
		return s
	}
	return "<unknown datum type>"
}

// Datum is one value slot on a card: a typed scalar, a jump
// (an explicit "use the default" placeholder), or a repeat marker
// produced by compression. The Raw field holds the original source
// spelling when the datum was read from a file; it is empty for data
// built programmatically.
type Datum struct {
	Type DatumType
	Raw  string

	Int    int64
	Float  float64
	String string

	// Count is the run length for JumpType and RepeatType markers.
	// A plain jump has Count 1. A repeat marker means "the previous
	// value, Count more times".
	Count int
}

func Jump() Datum {
	return Datum{Type: JumpType, Count: 1}
}

func Jumps(n int) Datum {
	return Datum{Type: JumpType, Count: n}
}

func Repeat(n int) Datum {
	return Datum{Type: RepeatType, Count: n}
}

func FromInt(v int64) Datum {
	return Datum{Type: IntType, Int: v, Float: float64(v)}
}

func FromFloat(v float64) Datum {
	return Datum{Type: FloatType, Float: v}
}

func FromString(v string) Datum {
	return Datum{Type: StringType, String: v}
}

// IsValue reports whether d carries a scalar (as opposed to a jump or
// a compression marker).
func (d Datum) IsValue() bool {
	switch d.Type {
	case IntType, FloatType, StringType:
		return true
	case JumpType, RepeatType:
		return false
	}
	return false
}

// Number returns the numeric value of an Int or Float datum.
func (d Datum) Number() (float64, bool) {
	switch d.Type {
	case IntType:
		return float64(d.Int), true
	case FloatType:
		return d.Float, true
	default:
		return 0, false
	}
}

// Word renders d as a single card token. Data read from a file keep
// their original spelling; programmatic data get canonical forms.
func (d Datum) Word() string {
	if d.Raw != "" {
		return d.Raw
	}
	switch d.Type {
	case JumpType:
		if d.Count == 1 {
			return "J"
		}
		return strconv.Itoa(d.Count) + "J"
	case RepeatType:
		return strconv.Itoa(d.Count) + "R"
	case IntType:
		return strconv.FormatInt(d.Int, 10)
	case FloatType:
		w := strconv.FormatFloat(d.Float, 'g', -1, 64)
		// whole values must not read back as integers
		if !strings.ContainsAny(w, ".eE") {
			w += ".0"
		}
		return w
	case StringType:
		return d.String
	}
	return ""
}

// ParseDatum reads one card word into a datum. Jump markers ("j",
// "2j") and repeat markers ("3r") are case-insensitive, as is the rest
// of the format. Words that are neither markers nor numbers come back
// as string data with the original spelling preserved.
func ParseDatum(word string) (Datum, error) {
	if word == "" {
		return Datum{}, ErrEmptyWord
	}
	if n, ok := marker(word, 'j'); ok {
		d := Jumps(n)
		d.Raw = word
		return d, nil
	}
	if n, ok := marker(word, 'r'); ok {
		if n < 1 {
			return Datum{}, ErrBadRepeat
		}
		d := Repeat(n)
		d.Raw = word
		return d, nil
	}
	if i, err := strconv.ParseInt(word, 10, 64); err == nil {
		d := FromInt(i)
		d.Raw = word
		return d, nil
	}
	if f, err := ParseFloat(word); err == nil {
		d := FromFloat(f)
		d.Raw = word
		return d, nil
	}
	d := FromString(word)
	d.Raw = word
	return d, nil
}

// marker matches "<N><c>" and bare "<c>" (count 1), ignoring case.
func marker(word string, c byte) (int, bool) {
	w := strings.ToLower(word)
	if len(w) == 1 && w[0] == c {
		return 1, true
	}
	if w[len(w)-1] != c {
		return 0, false
	}
	n, err := strconv.Atoi(w[:len(w)-1])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
