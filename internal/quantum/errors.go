package quantum

import (
	"errors"
	"fmt"
)

// Domain errors for orbital computations.
var (
	// ErrInvalidState indicates quantum numbers outside n ≥ 1, 0 ≤ l < n, |m| ≤ l.
	ErrInvalidState = errors.New("quantum: invalid quantum numbers")

	// ErrAtomicNumber indicates a non-positive or non-finite nuclear charge.
	ErrAtomicNumber = errors.New("quantum: atomic number must be positive and finite")

	// ErrGridResolution indicates fewer than two samples per axis.
	ErrGridResolution = errors.New("quantum: grid needs at least 2 steps per axis")

	// ErrGridSpan indicates a non-positive or non-finite grid half-width.
	ErrGridSpan = errors.New("quantum: grid span must be positive and finite")

	// ErrShapeMismatch indicates arrays that were not produced from the same grid.
	ErrShapeMismatch = errors.New("quantum: array shape mismatch")

	// ErrEmptyField indicates an operation on a field with no samples.
	ErrEmptyField = errors.New("quantum: empty field")

	// ErrFraction indicates a negative or NaN enclosed-probability fraction.
	ErrFraction = errors.New("quantum: enclosed fraction must be a non-negative number")

	// ErrChannel indicates an unknown magnitude channel selector.
	ErrChannel = errors.New("quantum: unknown magnitude channel")
)

// StateError wraps an error with the state that caused it.
type StateError struct {
	Op      string
	State   State
	Wrapped error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.State, e.Wrapped)
}

func (e *StateError) Unwrap() error {
	return e.Wrapped
}
