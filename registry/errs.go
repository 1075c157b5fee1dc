package registry

import (
	"errors"
	"fmt"
)

var (
	ErrNumberConflict = errors.New("number conflict")
	ErrBadNumber      = errors.New("bad number")
)

// NumberConflictError reports an assignment that would give two live
// entities of the same kind the same number.
type NumberConflictError struct {
	Kind   string
	Number int
}

func (e *NumberConflictError) Error() string {
	return fmt.Sprintf("%s: %s number %d already in use", ErrNumberConflict, e.Kind, e.Number)
}

func (e *NumberConflictError) Unwrap() error {
	return ErrNumberConflict
}
