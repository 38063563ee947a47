package dex

import (
	"iter"
	"strings"
)

// IndexSetND is an immutable, ordered set of unique tuples of one length.
type IndexSetND struct {
	names    []string
	tupleLen int
	tuples   []Tuple
	enc      []string
	pos      map[string]int
}

// NewIndexSetND builds a set from explicit tuples in order. Tuples must share
// one length (ErrShape), hold scalars only (ErrTypeConstraint) and be unique
// (ErrDuplicateKey).
func NewIndexSetND(tuples []Tuple, opts ...Option) (*IndexSetND, error) {
	const op = "NewIndexSetND"
	m := applyOptions(opts)
	s := newIndexSetND(m.names, 0, len(tuples))
	for _, t := range tuples {
		if err := s.insert(op, t); err != nil {
			return nil, err
		}
	}
	if err := s.checkNames(op); err != nil {
		return nil, err
	}
	return s, nil
}

// NewIndexSetProduct builds the Cartesian product of dims, varying the last
// dimension fastest. Names given WithNames win; otherwise the dimension names
// are used when every dimension has one.
func NewIndexSetProduct(dims []Dimension, opts ...Option) (*IndexSetND, error) {
	const op = "NewIndexSetProduct"
	if len(dims) == 0 {
		return nil, newError(op, ErrEmptyInput, "no dimensions")
	}
	m := applyOptions(opts)
	names := m.names
	if names == nil {
		names = make([]string, len(dims))
		for i, d := range dims {
			if d.dimName() == "" {
				names = nil
				break
			}
			names[i] = d.dimName()
		}
	}

	axes := make([][]any, len(dims))
	total := 1
	for i, d := range dims {
		vals := d.dimValues()
		seen := make(map[any]struct{}, len(vals))
		for _, v := range vals {
			if !isScalar(v) {
				return nil, newError(op, ErrTypeConstraint, "dimension %d: %v is not a scalar (%T)", i, v, v)
			}
			if _, dup := seen[v]; dup {
				return nil, newError(op, ErrDuplicateKey, "dimension %d: %v", i, v)
			}
			seen[v] = struct{}{}
		}
		axes[i] = vals
		total *= len(vals)
	}

	s := newIndexSetND(names, len(dims), total)
	if total > 0 {
		idx := make([]int, len(axes))
		for {
			t := make(Tuple, len(axes))
			for i, j := range idx {
				t[i] = axes[i][j]
			}
			s.add(t)

			i := len(idx) - 1
			for ; i >= 0; i-- {
				idx[i]++
				if idx[i] < len(axes[i]) {
					break
				}
				idx[i] = 0
			}
			if i < 0 {
				break
			}
		}
	}
	if err := s.checkNames(op); err != nil {
		return nil, err
	}
	return s, nil
}

func newIndexSetND(names []string, tupleLen, capacity int) *IndexSetND {
	return &IndexSetND{
		names:    names,
		tupleLen: tupleLen,
		tuples:   make([]Tuple, 0, capacity),
		enc:      make([]string, 0, capacity),
		pos:      make(map[string]int, capacity),
	}
}

func (s *IndexSetND) insert(op string, t Tuple) error {
	if len(t) == 0 {
		return newError(op, ErrShape, "empty tuple")
	}
	if s.tupleLen == 0 {
		s.tupleLen = len(t)
	} else if len(t) != s.tupleLen {
		return newError(op, ErrShape, "tuple %v has length %d, expected %d", t, len(t), s.tupleLen)
	}
	if err := checkTuple(op, t); err != nil {
		return err
	}
	if _, dup := s.pos[tupleKey(t)]; dup {
		return newError(op, ErrDuplicateKey, "%v", t)
	}
	s.add(t.clone())
	return nil
}

func (s *IndexSetND) add(t Tuple) {
	k := tupleKey(t)
	s.pos[k] = len(s.tuples)
	s.tuples = append(s.tuples, t)
	s.enc = append(s.enc, k)
}

func (s *IndexSetND) checkNames(op string) error {
	if s.names != nil && s.tupleLen > 0 && len(s.names) != s.tupleLen {
		return newError(op, ErrShape, "%d names for tuples of length %d", len(s.names), s.tupleLen)
	}
	return nil
}

// Names returns a copy of the per-dimension names, nil when unnamed.
func (s *IndexSetND) Names() []string {
	if s.names == nil {
		return nil
	}
	return append([]string(nil), s.names...)
}

// Len returns the number of tuples.
func (s *IndexSetND) Len() int {
	return len(s.tuples)
}

// TupleLen returns the length of every tuple, 0 for an empty explicit set.
func (s *IndexSetND) TupleLen() int {
	return s.tupleLen
}

// Contains reports whether the tuple formed by key is in the set.
func (s *IndexSetND) Contains(key ...any) bool {
	if len(key) != s.tupleLen {
		return false
	}
	_, ok := s.pos[tupleKey(key)]
	return ok
}

// At returns a copy of the i-th tuple. It panics if i is out of range.
func (s *IndexSetND) At(i int) Tuple {
	return s.tuples[i].clone()
}

// Values returns copies of the tuples in order.
func (s *IndexSetND) Values() []Tuple {
	out := make([]Tuple, len(s.tuples))
	for i, t := range s.tuples {
		out[i] = t.clone()
	}
	return out
}

// All iterates over copies of the tuples in order.
func (s *IndexSetND) All() iter.Seq[Tuple] {
	return func(yield func(Tuple) bool) {
		for _, t := range s.tuples {
			if !yield(t.clone()) {
				return
			}
		}
	}
}

func (s *IndexSetND) hasKey(k string) bool {
	_, ok := s.pos[k]
	return ok
}

func (s *IndexSetND) keyList() []string { return s.enc }

// IsSubset reports whether every tuple of s is in o.
func (s *IndexSetND) IsSubset(o *IndexSetND) bool {
	return isSubset[string](s, o)
}

// IsProperSubset reports whether s is a subset of o and not equal to it.
func (s *IndexSetND) IsProperSubset(o *IndexSetND) bool {
	return s.Len() < o.Len() && s.IsSubset(o)
}

// Equal reports whether s and o hold the same tuples, in any order.
func (s *IndexSetND) Equal(o *IndexSetND) bool {
	return setEqual[string](s, o)
}

// NotEqual is the negation of Equal.
func (s *IndexSetND) NotEqual(o *IndexSetND) bool {
	return !s.Equal(o)
}

// IsSuperset reports whether every tuple of o is in s.
func (s *IndexSetND) IsSuperset(o *IndexSetND) bool {
	return o.IsSubset(s)
}

// IsProperSuperset reports whether s is a superset of o and not equal to it.
func (s *IndexSetND) IsProperSuperset(o *IndexSetND) bool {
	return o.IsProperSubset(s)
}

// Compare applies op against other, which must be an *IndexSetND. Anything
// else, including a []Tuple, fails with ErrTypeConstraint.
func (s *IndexSetND) Compare(op CompareOp, other any) (bool, error) {
	o, ok := other.(*IndexSetND)
	if !ok || o == nil {
		return false, newError("IndexSetND.Compare", ErrTypeConstraint,
			"cannot compare %T %s %T", s, op, other)
	}
	return compare[string](op, s, o)
}

// Union returns the tuples of s followed by the tuples of o not in s.
func (s *IndexSetND) Union(o *IndexSetND) (*IndexSetND, error) {
	out, err := s.derive("IndexSetND.Union", o, len(s.tuples)+len(o.tuples))
	if err != nil {
		return nil, err
	}
	for i, t := range s.tuples {
		out.addEncoded(t, s.enc[i])
	}
	for i, t := range o.tuples {
		if !out.hasKey(o.enc[i]) {
			out.addEncoded(t, o.enc[i])
		}
	}
	return out, nil
}

// Intersection returns the tuples of s that are also in o.
func (s *IndexSetND) Intersection(o *IndexSetND) (*IndexSetND, error) {
	out, err := s.derive("IndexSetND.Intersection", o, min(len(s.tuples), len(o.tuples)))
	if err != nil {
		return nil, err
	}
	for i, t := range s.tuples {
		if o.hasKey(s.enc[i]) {
			out.addEncoded(t, s.enc[i])
		}
	}
	return out, nil
}

// Difference returns the tuples of s that are not in o.
func (s *IndexSetND) Difference(o *IndexSetND) (*IndexSetND, error) {
	out, err := s.derive("IndexSetND.Difference", o, len(s.tuples))
	if err != nil {
		return nil, err
	}
	for i, t := range s.tuples {
		if !o.hasKey(s.enc[i]) {
			out.addEncoded(t, s.enc[i])
		}
	}
	return out, nil
}

func (s *IndexSetND) derive(op string, o *IndexSetND, capacity int) (*IndexSetND, error) {
	n := s.tupleLen
	switch {
	case n == 0:
		n = o.tupleLen
	case o.tupleLen != 0 && o.tupleLen != n:
		return nil, newError(op, ErrShape, "tuple lengths %d and %d differ", s.tupleLen, o.tupleLen)
	}
	return newIndexSetND(s.Names(), n, capacity), nil
}

func (s *IndexSetND) addEncoded(t Tuple, k string) {
	s.pos[k] = len(s.tuples)
	s.tuples = append(s.tuples, t)
	s.enc = append(s.enc, k)
}

func (s *IndexSetND) String() string {
	var b strings.Builder
	b.WriteString("IndexSetND: ")
	if s.names != nil {
		b.WriteString("(" + strings.Join(s.names, ", ") + ") ")
	}
	b.WriteByte('[')
	for i, t := range s.tuples {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	b.WriteByte(']')
	return b.String()
}

// index returns the position of the encoded tuple, or -1.
func (s *IndexSetND) index(k string) int {
	if i, ok := s.pos[k]; ok {
		return i
	}
	return -1
}
