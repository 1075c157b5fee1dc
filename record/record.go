package record

import (
	"github.com/deck-tools/deckfmt/card"
	"github.com/deck-tools/deckfmt/format"
)

// Record is the base of every semantic deck record. It owns the raw
// source lines the record was parsed from, the comment cards attached
// to it, and the mutation flag deciding between verbatim replay and
// regeneration on output.
//
// A record parsed from a card starts clean; a record built
// programmatically has no raw text to replay and is mutated from
// birth. Serialization never clears the flag.
type Record struct {
	raw      []string
	comments []card.Comment
	mutated  bool
}

// FromCard builds the base record for a parsed card.
func FromCard(c *card.Card) Record {
	return Record{
		raw:      c.Lines,
		comments: c.Comments,
	}
}

// New builds the base record for a programmatically constructed
// record. It has no raw lines and is therefore always regenerated.
func New() Record {
	return Record{mutated: true}
}

func (r *Record) Mutated() bool {
	return r.mutated
}

// MarkMutated is called by every setter that feeds output.
func (r *Record) MarkMutated() {
	r.mutated = true
}

// RawLines returns the original input lines, without comments.
func (r *Record) RawLines() []string {
	return r.raw
}

func (r *Record) Comments() []card.Comment {
	return r.comments
}

func (r *Record) SetComments(comments []card.Comment) {
	r.mutated = true
	r.comments = comments
}

// ReplayLines reproduces the record's original text: the leading
// comment block, then the raw lines with cutting comments re-inserted
// at their recorded offsets. It is the output path for clean records
// and is O(lines).
func (r *Record) ReplayLines() []string {
	cutting := map[int]card.Comment{}
	var ret []string
	for _, c := range r.comments {
		if c.Cutting() {
			cutting[c.Line] = c
		} else {
			ret = append(ret, c.Lines...)
		}
	}
	for i, line := range r.raw {
		if c, ok := cutting[i]; ok {
			ret = append(ret, c.Lines...)
		}
		ret = append(ret, line)
	}
	if c, ok := cutting[len(r.raw)]; ok {
		ret = append(ret, c.Lines...)
	}
	return ret
}

// CommentLines returns every attached comment line in order. It is
// the comment output path for regenerated records, which have no
// original offsets to honor.
func (r *Record) CommentLines() []string {
	var ret []string
	for _, c := range r.comments {
		ret = append(ret, c.Lines...)
	}
	return ret
}

// Serializer is the output contract every record satisfies: clean
// records replay their original text, mutated records regenerate from
// field state for the given version profile.
type Serializer interface {
	Mutated() bool
	Lines(v format.Version) ([]string, error)
}
