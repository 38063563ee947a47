package dex

import (
	"fmt"
	"iter"
	"strings"
)

// IndexSet1D is an immutable, ordered set of unique scalar keys.
type IndexSet1D[K comparable] struct {
	name string
	keys []K
	pos  map[K]int
}

// NewIndexSet1D builds a set from keys in order. Repeated keys fail with
// ErrDuplicateKey and non-scalar keys with ErrTypeConstraint. An empty input
// gives an empty set.
func NewIndexSet1D[K comparable](keys []K, opts ...Option) (*IndexSet1D[K], error) {
	const op = "NewIndexSet1D"
	m := applyOptions(opts)
	s := &IndexSet1D[K]{
		name: m.name,
		keys: make([]K, 0, len(keys)),
		pos:  make(map[K]int, len(keys)),
	}
	for _, k := range keys {
		if !isScalar(k) {
			return nil, newError(op, ErrTypeConstraint, "key %v is not a scalar (%T)", k, k)
		}
		if _, dup := s.pos[k]; dup {
			return nil, newError(op, ErrDuplicateKey, "%v", k)
		}
		s.pos[k] = len(s.keys)
		s.keys = append(s.keys, k)
	}
	return s, nil
}

// Name returns the set's name, possibly empty.
func (s *IndexSet1D[K]) Name() string {
	return s.name
}

// Len returns the number of keys.
func (s *IndexSet1D[K]) Len() int {
	return len(s.keys)
}

// Contains reports whether k is in the set.
func (s *IndexSet1D[K]) Contains(k K) bool {
	_, ok := s.pos[k]
	return ok
}

// Index returns the position of k, or -1.
func (s *IndexSet1D[K]) Index(k K) int {
	if i, ok := s.pos[k]; ok {
		return i
	}
	return -1
}

// At returns the i-th key. It panics if i is out of range.
func (s *IndexSet1D[K]) At(i int) K {
	return s.keys[i]
}

// Values returns a copy of the keys in order.
func (s *IndexSet1D[K]) Values() []K {
	return append([]K(nil), s.keys...)
}

// All iterates over the keys in order.
func (s *IndexSet1D[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, k := range s.keys {
			if !yield(k) {
				return
			}
		}
	}
}

func (s *IndexSet1D[K]) hasKey(k K) bool { return s.Contains(k) }
func (s *IndexSet1D[K]) keyList() []K    { return s.keys }

// IsSubset reports whether every key of s is in o.
func (s *IndexSet1D[K]) IsSubset(o *IndexSet1D[K]) bool {
	return isSubset[K](s, o)
}

// IsProperSubset reports whether s is a subset of o and not equal to it.
func (s *IndexSet1D[K]) IsProperSubset(o *IndexSet1D[K]) bool {
	return s.Len() < o.Len() && s.IsSubset(o)
}

// Equal reports whether s and o hold the same keys, in any order.
func (s *IndexSet1D[K]) Equal(o *IndexSet1D[K]) bool {
	return setEqual[K](s, o)
}

// NotEqual is the negation of Equal.
func (s *IndexSet1D[K]) NotEqual(o *IndexSet1D[K]) bool {
	return !s.Equal(o)
}

// IsSuperset reports whether every key of o is in s.
func (s *IndexSet1D[K]) IsSuperset(o *IndexSet1D[K]) bool {
	return o.IsSubset(s)
}

// IsProperSuperset reports whether s is a superset of o and not equal to it.
func (s *IndexSet1D[K]) IsProperSuperset(o *IndexSet1D[K]) bool {
	return o.IsProperSubset(s)
}

// Compare applies op against other, which must be an *IndexSet1D with the
// same key type. Anything else fails with ErrTypeConstraint.
func (s *IndexSet1D[K]) Compare(op CompareOp, other any) (bool, error) {
	o, ok := other.(*IndexSet1D[K])
	if !ok || o == nil {
		return false, newError("IndexSet1D.Compare", ErrTypeConstraint,
			"cannot compare %T %s %T", s, op, other)
	}
	return compare[K](op, s, o)
}

// Union returns the keys of s followed by the keys of o not in s.
func (s *IndexSet1D[K]) Union(o *IndexSet1D[K]) *IndexSet1D[K] {
	out := s.derive(len(s.keys) + len(o.keys))
	for _, k := range s.keys {
		out.add(k)
	}
	for _, k := range o.keys {
		if !out.Contains(k) {
			out.add(k)
		}
	}
	return out
}

// Intersection returns the keys of s that are also in o.
func (s *IndexSet1D[K]) Intersection(o *IndexSet1D[K]) *IndexSet1D[K] {
	out := s.derive(min(len(s.keys), len(o.keys)))
	for _, k := range s.keys {
		if o.Contains(k) {
			out.add(k)
		}
	}
	return out
}

// Difference returns the keys of s that are not in o.
func (s *IndexSet1D[K]) Difference(o *IndexSet1D[K]) *IndexSet1D[K] {
	out := s.derive(len(s.keys))
	for _, k := range s.keys {
		if !o.Contains(k) {
			out.add(k)
		}
	}
	return out
}

func (s *IndexSet1D[K]) derive(capacity int) *IndexSet1D[K] {
	return &IndexSet1D[K]{
		name: s.name,
		keys: make([]K, 0, capacity),
		pos:  make(map[K]int, capacity),
	}
}

func (s *IndexSet1D[K]) add(k K) {
	s.pos[k] = len(s.keys)
	s.keys = append(s.keys, k)
}

func (s *IndexSet1D[K]) String() string {
	var b strings.Builder
	b.WriteString("IndexSet1D: ")
	if s.name != "" {
		b.WriteString(s.name)
		b.WriteByte(' ')
	}
	fmt.Fprint(&b, s.keys)
	return b.String()
}

func (s *IndexSet1D[K]) dimName() string { return s.name }

func (s *IndexSet1D[K]) dimValues() []any {
	out := make([]any, len(s.keys))
	for i, k := range s.keys {
		out[i] = k
	}
	return out
}

// Dimension is one component of a Cartesian product. *IndexSet1D and the
// result of Dim implement it.
type Dimension interface {
	dimName() string
	dimValues() []any
}

type dim struct {
	name string
	vals []any
}

func (d dim) dimName() string  { return d.name }
func (d dim) dimValues() []any { return d.vals }

// Dim wraps plain values as an unnamed product component.
func Dim[K comparable](vals ...K) Dimension {
	d := dim{vals: make([]any, len(vals))}
	for i, v := range vals {
		d.vals[i] = v
	}
	return d
}

// NamedDim wraps plain values as a named product component.
func NamedDim[K comparable](name string, vals ...K) Dimension {
	d := Dim(vals...).(dim)
	d.name = name
	return d
}
