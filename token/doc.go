// Package token models the value slots of a card.
//
// A Datum is a closed tagged variant: a typed scalar (int, float,
// string), a jump placeholder meaning "use the format default", or a
// repeat marker produced by run-length compression. Consumers switch
// exhaustively on Datum.Type; there is no runtime type inspection.
//
// Data read from a file keep their original spelling in Raw so that
// untouched records can be replayed byte for byte.
package token
