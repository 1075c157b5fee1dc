// Package card turns the raw lines of a deck block into card groups.
//
// A card is a first line plus its continuation lines (five-space
// indent, or a trailing ampersand on the previous line). Comment
// cards are collected alongside, keyed by the card line they preceded,
// so an untouched card can be replayed byte for byte, comments and
// all.
package card
