// Package format selects output profiles by target code version.
//
// A profile fixes the maximum line width and the continuation indent
// used when a record is regenerated rather than replayed verbatim.
//
// # Related Packages
//
//   - github.com/deck-tools/deckfmt/encode - line wrapping against a profile
package format
