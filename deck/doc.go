// Package deck models a card-based input deck as an editable object
// graph with lossless round-trip output.
//
// Records the user never touches replay their original text byte for
// byte; records the user edits are regenerated deterministically from
// structured state. Cross-references written as bare numbers in the
// format (a material's thermal scattering law, a cell's material) are
// resolved once, right after parse, into direct links.
//
// The lattice attribute demonstrates the format's dual-representation
// rule: it may be declared per cell (LAT= on cell cards) or once for
// the whole problem (a LAT data card listing every cell in order),
// never both.
//
// # Related Packages
//
//   - github.com/deck-tools/deckfmt/record - the mutation-tracked base
//   - github.com/deck-tools/deckfmt/encode - compression and wrapping
//   - github.com/deck-tools/deckfmt/registry - number uniqueness
package deck
