// Package registry tracks the identity numbers of deck entities.
//
// One registry per entity kind per document guarantees that no two
// live entities hold the same current number, allocates fresh numbers
// deterministically, and implements the clone protocol: deep copy,
// then scan for a free number and commit it, leaving source and
// registry untouched on failure.
package registry
