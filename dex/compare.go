package dex

// CompareOp selects one of the six set comparisons.
type CompareOp int

const (
	OpLess         CompareOp = iota // proper subset
	OpLessEqual                     // subset
	OpEqual                         // same elements
	OpNotEqual                      // different elements
	OpGreater                       // proper superset
	OpGreaterEqual                  // superset
)

var compareOpNames = [...]string{"<", "<=", "==", "!=", ">", ">="}

func (op CompareOp) String() string {
	if op < 0 || int(op) >= len(compareOpNames) {
		return "?"
	}
	return compareOpNames[op]
}

// keySet is the part of an index set the comparisons need. T is the key
// type of a 1D set and the encoded tuple of an ND set.
type keySet[T comparable] interface {
	Len() int
	hasKey(T) bool
	keyList() []T
}

func isSubset[T comparable](a, b keySet[T]) bool {
	if a.Len() > b.Len() {
		return false
	}
	for _, k := range a.keyList() {
		if !b.hasKey(k) {
			return false
		}
	}
	return true
}

func setEqual[T comparable](a, b keySet[T]) bool {
	return a.Len() == b.Len() && isSubset(a, b)
}

func compare[T comparable](op CompareOp, a, b keySet[T]) (bool, error) {
	switch op {
	case OpLess:
		return isSubset(a, b) && a.Len() < b.Len(), nil
	case OpLessEqual:
		return isSubset(a, b), nil
	case OpEqual:
		return setEqual(a, b), nil
	case OpNotEqual:
		return !setEqual(a, b), nil
	case OpGreater:
		return isSubset(b, a) && b.Len() < a.Len(), nil
	case OpGreaterEqual:
		return isSubset(b, a), nil
	}
	return false, newError("Compare", ErrTypeConstraint, "unknown operator %d", int(op))
}
