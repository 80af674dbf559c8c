package perceptron

import (
	"errors"
	"fmt"
)

var (
	ErrDimensionMismatch   = errors.New("dimension mismatch")
	ErrDidNotConverge      = errors.New("did not converge")
	ErrInvalidLabel        = errors.New("label must be 0 or 1")
	ErrInvalidLearningRate = errors.New("learning rate must be within [0, 1]")
	ErrInvalidState        = errors.New("invalid perceptron state")
)

// DimensionError reports an input vector whose length does not line up with
// the weight vector.
type DimensionError struct {
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("dimension mismatch: want %d values, got %d", e.Want, e.Got)
}

func (e *DimensionError) Unwrap() error {
	return ErrDimensionMismatch
}
