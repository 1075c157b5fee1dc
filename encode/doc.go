// Package encode regenerates card text from structured data.
//
// It covers the two halves of the output path for mutated records:
// run-length compression of value and jump sequences ("<v> NR", "NJ")
// and word-wrapping the resulting token stream to the target
// version's line profile.
//
// # Related Packages
//
//   - github.com/deck-tools/deckfmt/format - line width profiles
//   - github.com/deck-tools/deckfmt/token - the datum variant
package encode
