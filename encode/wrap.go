package encode

import (
	"strings"

	"github.com/deck-tools/deckfmt/format"
)

// WrapWords joins card words with single spaces and wraps the result
// for the version's line profile. See WrapString.
func WrapWords(words []string, v format.Version, firstLine bool) []string {
	return WrapString(strings.Join(words, " "), v, firstLine)
}

// WrapString word-wraps a card body to the version's maximum line
// width. The first line of a record is not indented; every
// continuation line is indented by the profile's indent width. A
// word is never split: one longer than the width overflows its line.
func WrapString(s string, v format.Version, firstLine bool) []string {
	var (
		width  = v.LineWidth()
		indent = strings.Repeat(" ", v.Indent())
		words  = strings.Fields(s)
	)
	if len(words) == 0 {
		return nil
	}
	var (
		lines []string
		cur   strings.Builder
	)
	if !firstLine {
		cur.WriteString(indent)
	}
	lineHasWord := false
	for _, word := range words {
		need := len(word)
		if lineHasWord {
			need++ // joining space
		}
		if lineHasWord && cur.Len()+need > width {
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(indent)
			lineHasWord = false
		}
		if lineHasWord {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
		lineHasWord = true
	}
	lines = append(lines, cur.String())
	return lines
}
