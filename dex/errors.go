package dex

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps exactly one of them;
// test with errors.Is.
var (
	// ErrShape reports a key or pattern whose shape does not fit the container.
	ErrShape = errors.New("shape mismatch")

	// ErrDuplicateKey reports repeated keys where keys must be unique.
	ErrDuplicateKey = fmt.Errorf("%w: duplicate key", ErrShape)

	// ErrTypeConstraint reports a value of the wrong kind, such as a
	// non-scalar key element or an invalid variable handle.
	ErrTypeConstraint = errors.New("type constraint violated")

	// ErrPatternUsage reports a wildcard pattern with no wildcard or with
	// wildcards in every position.
	ErrPatternUsage = errors.New("invalid wildcard pattern")

	// ErrCapabilityDisabled reports an attempt to mutate a variable dictionary.
	ErrCapabilityDisabled = errors.New("operation not supported")

	// ErrEmptyInput reports an empty source where a populated one is required.
	ErrEmptyInput = errors.New("empty input")

	// ErrUnbound reports use of a variable dictionary that was not created
	// through AddVariables1D or AddVariablesND.
	ErrUnbound = errors.New("variable dict is not bound to a modeler")
)

// Error describes a failed container operation.
type Error struct {
	Op   string // Operation that failed (e.g., "NewIndexSet1D", "VarDictND.Sum")
	Kind error  // One of the Err* kinds above
	Msg  string // Additional context
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("dex: %s: %v: %s", e.Op, e.Kind, e.Msg)
	}
	return fmt.Sprintf("dex: %s: %v", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(op string, kind error, format string, args ...any) error {
	return &Error{Op: op, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
