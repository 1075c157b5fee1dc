package record

import (
	"errors"
	"fmt"
)

// ErrInvalid reports a structural invariant violated at serialization
// or validation time, such as a required field that is absent.
var ErrInvalid = errors.New("invalid record")

// Invalidf wraps ErrInvalid with context naming the violated field.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
