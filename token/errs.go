package token

import "errors"

var (
	ErrNumber    = errors.New("bad number")
	ErrEmptyWord = errors.New("empty word")
	ErrBadRepeat = errors.New("bad repeat count")
)
