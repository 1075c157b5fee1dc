// Package record provides the mutation-tracked base every deck record
// embeds.
//
// The contract: a record parsed from a card and never touched replays
// its original lines byte for byte, comments included; any setter
// marks the record mutated, after which output is regenerated from
// structured state through the encode package.
package record
