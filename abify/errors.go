package abify

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrPayloadMismatch is returned for results whose payload or error info does
// not belong to the class of their type.
var ErrPayloadMismatch = errors.New("payload does not match type class")

// UnknownUserDefinedTypeError aborts a normalization when a struct or enum id
// has no definition, or when an enum result cannot be interpreted.
type UnknownUserDefinedTypeError struct {
	ID          string
	DisplayName string
}

func (e *UnknownUserDefinedTypeError) Error() string {
	return fmt.Sprintf("unknown user-defined type %s (id %s)", e.DisplayName, e.ID)
}

// InconsistentEnumValueError reports a successfully decoded enum whose ordinal
// does not fit the enum's own width. A correct decoder never produces one.
type InconsistentEnumValueError struct {
	ID      string
	Numeric *big.Int
	Bits    int
}

func (e *InconsistentEnumValueError) Error() string {
	return fmt.Sprintf("enum %s decoded to %s, which does not fit in %d bits", e.ID, e.Numeric, e.Bits)
}
