package model

import "errors"

var (
	// ErrForeignVar reports a variable used with a model that does not own it.
	ErrForeignVar = errors.New("model: variable belongs to another model")

	// ErrInvalidBounds reports a lower bound above the upper bound, or a NaN bound.
	ErrInvalidBounds = errors.New("model: invalid bounds")

	// ErrNoSolution reports a read of solution values when the solver found none.
	ErrNoSolution = errors.New("model: no solution available")

	// ErrInvalidCount reports a non-positive run count.
	ErrInvalidCount = errors.New("model: count must be at least 1")

	// ErrNoLogOutput reports a missing log writer where one is required.
	ErrNoLogOutput = errors.New("model: log output is required")
)
