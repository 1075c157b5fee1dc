package card

import (
	"strings"

	"github.com/deck-tools/deckfmt/debug"
)

// Card is one raw card: a first line plus any continuation lines,
// exactly as they appeared in the input. Comment cards found around
// or inside the card are recorded separately with the offset of the
// card line they preceded, so verbatim replay can re-insert them.
type Card struct {
	Lines    []string
	Comments []Comment
}

// Comment is a block of consecutive comment-card lines. Line is the
// index into the owning card's Lines before which the block sat; a
// block with Line 0 led the card, anything else is a cutting comment
// that interrupted the card's continuation lines.
type Comment struct {
	Lines []string
	Line  int
}

func (c Comment) Cutting() bool {
	return c.Line > 0
}

// Words splits the card into its tokens: inline "$" comments are
// dropped, continuation ampersands are dropped, and the remaining
// text of all lines is split on spaces, tabs and commas.
func (c *Card) Words() []string {
	var words []string
	for _, line := range c.Lines {
		words = append(words, LineWords(line)...)
	}
	return words
}

// LineWords tokenizes a single card line.
func LineWords(line string) []string {
	if i := strings.IndexByte(line, '$'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSuffix(strings.TrimRight(line, " \t"), "&")
	line = strings.ReplaceAll(line, ",", " ")
	return strings.Fields(line)
}

// IsComment reports whether a raw line is a comment card: a "c" (any
// case) alone or followed by a space, starting within the first five
// columns.
func IsComment(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	indent := len(line) - len(trimmed)
	if indent >= 5 {
		return false
	}
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] != 'c' && trimmed[0] != 'C' {
		return false
	}
	return len(trimmed) == 1 || trimmed[1] == ' ' || trimmed[1] == '\t'
}

// IsContinuation reports whether a raw line continues the previous
// card rather than starting a new one.
func IsContinuation(line string, prevAmpersand bool) bool {
	if prevAmpersand {
		return true
	}
	return strings.HasPrefix(line, "     ") && strings.TrimSpace(line) != ""
}

func endsWithAmpersand(line string) bool {
	if i := strings.IndexByte(line, '$'); i >= 0 {
		line = line[:i]
	}
	return strings.HasSuffix(strings.TrimRight(line, " \t"), "&")
}

// Scan groups the raw lines of one block into cards. Comment cards
// attach to the card they precede (or cut into); comment cards after
// the final card attach to it as trailing cutting comments at
// len(Lines).
func Scan(lines []string) []Card {
	var (
		cards   []Card
		cur     *Card
		pending []string
		amp     bool
	)
	flushComment := func() {
		if len(pending) == 0 {
			return
		}
		if cur == nil {
			// leading comments: start a card-to-be
			cards = append(cards, Card{})
			cur = &cards[len(cards)-1]
		}
		cur.Comments = append(cur.Comments, Comment{
			Lines: pending,
			Line:  len(cur.Lines),
		})
		pending = nil
	}
	for _, line := range lines {
		switch {
		case IsComment(line):
			pending = append(pending, line)
		case IsContinuation(line, amp) && cur != nil && len(cur.Lines) > 0:
			flushComment()
			cur.Lines = append(cur.Lines, line)
			amp = endsWithAmpersand(line)
		default:
			if cur == nil || len(cur.Lines) > 0 {
				cards = append(cards, Card{})
				cur = &cards[len(cards)-1]
			}
			flushComment()
			cur.Lines = append(cur.Lines, line)
			amp = endsWithAmpersand(line)
		}
	}
	flushComment()
	if debug.Scan() {
		debug.Logf("scan: %d lines -> %d cards", len(lines), len(cards))
	}
	return cards
}

// Keyword returns the lowercased directive keyword of the card, split
// into its alphabetic prefix and numeric suffix when one is present.
// "M4" gives ("m", 4, true); "lat" gives ("lat", 0, false).
func (c *Card) Keyword() (prefix string, number int, hasNumber bool) {
	words := c.Words()
	if len(words) == 0 {
		return "", 0, false
	}
	return SplitKeyword(words[0])
}

// SplitKeyword splits a directive word into a lowercased alphabetic
// prefix and an optional numeric suffix.
func SplitKeyword(word string) (prefix string, number int, hasNumber bool) {
	w := strings.ToLower(word)
	i := 0
	for i < len(w) && (w[i] < '0' || w[i] > '9') {
		i++
	}
	prefix = w[:i]
	if i == len(w) {
		return prefix, 0, false
	}
	n := 0
	for ; i < len(w); i++ {
		if w[i] < '0' || w[i] > '9' {
			// trailing junk after the number, e.g. particle
			// designators: not a plain numbered keyword
			return prefix, 0, false
		}
		n = n*10 + int(w[i]-'0')
	}
	return prefix, n, true
}
