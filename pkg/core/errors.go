package core

import (
	"errors"
	"fmt"
)

// ErrZeroVector is returned whenever an operation would produce the zero vector
var ErrZeroVector = errors.New("zero vector")

// InvalidVectorError describes the operation that degenerated to the zero vector.
// It unwraps to ErrZeroVector.
type InvalidVectorError struct {
	Op      string
	X, Y, Z float64
}

func (e *InvalidVectorError) Error() string {
	return fmt.Sprintf("%s: (%g, %g, %g) is a zero vector", e.Op, e.X, e.Y, e.Z)
}

func (e *InvalidVectorError) Unwrap() error {
	return ErrZeroVector
}
