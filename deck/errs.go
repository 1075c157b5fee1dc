package deck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deck-tools/deckfmt/card"
)

var (
	// ErrMalformedInput reports raw text that cannot be parsed into
	// the expected card shape. It is raised during parse, never
	// during programmatic construction.
	ErrMalformedInput = errors.New("malformed input")

	// ErrRedundantDefinition reports the same logical attribute
	// declared through more than one representation for one scope.
	ErrRedundantDefinition = errors.New("redundant definition")

	// ErrBadValue reports programmatic misuse of a setter. The
	// mutation is rejected and the record keeps its prior state.
	ErrBadValue = errors.New("bad value")

	// ErrLinked reports a second run of the one-shot cross-reference
	// resolution pass.
	ErrLinked = errors.New("cross references already resolved")
)

// MalformedInputError carries enough context to locate the offending
// input: the card text and the directive keyword being parsed.
type MalformedInputError struct {
	Card    card.Card
	Keyword string
	Reason  string
}

func (e *MalformedInputError) Error() string {
	text := ""
	if len(e.Card.Lines) > 0 {
		text = fmt.Sprintf(" in %q", strings.TrimSpace(e.Card.Lines[0]))
	}
	return fmt.Sprintf("%s: %s card: %s%s", ErrMalformedInput, e.Keyword, e.Reason, text)
}

func (e *MalformedInputError) Unwrap() error {
	return ErrMalformedInput
}

func malformedf(c *card.Card, keyword, format string, args ...any) error {
	e := &MalformedInputError{Keyword: keyword, Reason: fmt.Sprintf(format, args...)}
	if c != nil {
		e.Card = *c
	}
	return e
}
