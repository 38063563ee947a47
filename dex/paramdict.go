package dex

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// ParamDict1D is a mutable, insertion-ordered mapping from scalar keys to
// numbers. Absent keys read as zero through Lookup.
type ParamDict1D[K comparable, N Number] struct {
	keyName   string
	valueName string
	keys      []K
	vals      map[K]N
}

// NewParamDict1D builds a dictionary from values. Map iteration order is
// unspecified; use ParamDict1DFromPairs when order matters. A nil map gives an
// empty dictionary.
func NewParamDict1D[K comparable, N Number](values map[K]N, opts ...Option) (*ParamDict1D[K, N], error) {
	d := newParamDict1D[K, N](len(values), opts)
	for k, v := range values {
		if err := d.Set(k, v); err != nil {
			return nil, relabel(err, "NewParamDict1D")
		}
	}
	return d, nil
}

// ParamDict1DFromPairs builds a dictionary from parallel key and value slices,
// keeping the order of keys.
func ParamDict1DFromPairs[K comparable, N Number](keys []K, values []N, opts ...Option) (*ParamDict1D[K, N], error) {
	const op = "ParamDict1DFromPairs"
	if len(keys) != len(values) {
		return nil, newError(op, ErrShape, "%d keys for %d values", len(keys), len(values))
	}
	d := newParamDict1D[K, N](len(keys), opts)
	for i, k := range keys {
		if d.Has(k) {
			return nil, newError(op, ErrDuplicateKey, "%v", k)
		}
		if err := d.Set(k, values[i]); err != nil {
			return nil, relabel(err, op)
		}
	}
	return d, nil
}

func newParamDict1D[K comparable, N Number](capacity int, opts []Option) *ParamDict1D[K, N] {
	m := applyOptions(opts)
	return &ParamDict1D[K, N]{
		keyName:   m.name,
		valueName: m.valueName,
		keys:      make([]K, 0, capacity),
		vals:      make(map[K]N, capacity),
	}
}

// Get returns the value stored for k.
func (d *ParamDict1D[K, N]) Get(k K) (N, bool) {
	v, ok := d.vals[k]
	return v, ok
}

// Has reports whether k is stored.
func (d *ParamDict1D[K, N]) Has(k K) bool {
	_, ok := d.vals[k]
	return ok
}

// Lookup returns the value stored for k, or zero. It never adds k.
func (d *ParamDict1D[K, N]) Lookup(k K) N {
	return d.vals[k]
}

// Set stores v under k, appending k if it is new.
func (d *ParamDict1D[K, N]) Set(k K, v N) error {
	if _, ok := d.vals[k]; !ok {
		if !isScalar(k) {
			return newError("ParamDict1D.Set", ErrTypeConstraint, "key %v is not a scalar (%T)", k, k)
		}
		d.keys = append(d.keys, k)
	}
	d.vals[k] = v
	return nil
}

// Delete removes k and reports whether it was present.
func (d *ParamDict1D[K, N]) Delete(k K) bool {
	if _, ok := d.vals[k]; !ok {
		return false
	}
	delete(d.vals, k)
	i := slices.Index(d.keys, k)
	d.keys = slices.Delete(d.keys, i, i+1)
	return true
}

// Len returns the number of stored keys.
func (d *ParamDict1D[K, N]) Len() int {
	return len(d.keys)
}

// Keys returns the keys in insertion order.
func (d *ParamDict1D[K, N]) Keys() []K {
	return append([]K(nil), d.keys...)
}

// Values returns the values in key order.
func (d *ParamDict1D[K, N]) Values() []N {
	out := make([]N, len(d.keys))
	for i, k := range d.keys {
		out[i] = d.vals[k]
	}
	return out
}

// All iterates over key/value pairs in insertion order.
func (d *ParamDict1D[K, N]) All() iter.Seq2[K, N] {
	return func(yield func(K, N) bool) {
		for _, k := range d.keys {
			if !yield(k, d.vals[k]) {
				return
			}
		}
	}
}

// Sum returns the sum of all values, added in insertion order.
func (d *ParamDict1D[K, N]) Sum() N {
	var total N
	for _, k := range d.keys {
		total += d.vals[k]
	}
	return total
}

func (d *ParamDict1D[K, N]) KeyName() string          { return d.keyName }
func (d *ParamDict1D[K, N]) SetKeyName(name string)   { d.keyName = name }
func (d *ParamDict1D[K, N]) ValueName() string        { return d.valueName }
func (d *ParamDict1D[K, N]) SetValueName(name string) { d.valueName = name }

func (d *ParamDict1D[K, N]) String() string {
	var b strings.Builder
	b.WriteString("ParamDict1D: ")
	writeHeader(&b, d.keyName, d.valueName)
	b.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v: %v", k, d.vals[k])
	}
	b.WriteByte('}')
	return b.String()
}

// Entry is one key/value pair of an N-dimensional dictionary.
type Entry[N Number] struct {
	Key   Tuple
	Value N
}

// ParamDictND is a mutable, insertion-ordered mapping from tuples to numbers.
// All keys share one length.
type ParamDictND[N Number] struct {
	keyNames  []string
	valueName string
	tupleLen  int
	keys      []Tuple
	enc       []string
	vals      map[string]N
}

// NewParamDictND builds a dictionary from entries in order. Keys must be
// unique tuples of scalars of one length.
func NewParamDictND[N Number](entries []Entry[N], opts ...Option) (*ParamDictND[N], error) {
	const op = "NewParamDictND"
	m := applyOptions(opts)
	d := &ParamDictND[N]{
		keyNames:  m.names,
		valueName: m.valueName,
		keys:      make([]Tuple, 0, len(entries)),
		enc:       make([]string, 0, len(entries)),
		vals:      make(map[string]N, len(entries)),
	}
	for _, e := range entries {
		if d.Has(e.Key...) {
			return nil, newError(op, ErrDuplicateKey, "%v", e.Key)
		}
		if err := d.Set(e.Key, e.Value); err != nil {
			return nil, relabel(err, op)
		}
	}
	if d.keyNames != nil && d.tupleLen > 0 && len(d.keyNames) != d.tupleLen {
		return nil, newError(op, ErrShape, "%d names for keys of length %d", len(d.keyNames), d.tupleLen)
	}
	return d, nil
}

// TupleLen returns the key length, 0 while the dictionary has never held a key.
func (d *ParamDictND[N]) TupleLen() int {
	return d.tupleLen
}

// Get returns the value stored for the tuple formed by key.
func (d *ParamDictND[N]) Get(key ...any) (N, bool) {
	v, ok := d.vals[tupleKey(key)]
	return v, ok
}

// Has reports whether the tuple formed by key is stored.
func (d *ParamDictND[N]) Has(key ...any) bool {
	_, ok := d.vals[tupleKey(key)]
	return ok
}

// Lookup returns the value stored for the tuple formed by key, or zero. It
// never fails and never adds the key.
func (d *ParamDictND[N]) Lookup(key ...any) N {
	return d.vals[tupleKey(key)]
}

// Set stores v under key. The key must hold scalars and match the length of
// the keys already stored.
func (d *ParamDictND[N]) Set(key Tuple, v N) error {
	const op = "ParamDictND.Set"
	k := tupleKey(key)
	if _, ok := d.vals[k]; !ok {
		if len(key) == 0 {
			return newError(op, ErrShape, "empty key")
		}
		if d.tupleLen != 0 && len(key) != d.tupleLen {
			return newError(op, ErrShape, "key %v has length %d, expected %d", key, len(key), d.tupleLen)
		}
		if err := checkTuple(op, key); err != nil {
			return err
		}
		d.tupleLen = len(key)
		d.keys = append(d.keys, key.clone())
		d.enc = append(d.enc, k)
	}
	d.vals[k] = v
	return nil
}

// Delete removes the tuple formed by key and reports whether it was present.
func (d *ParamDictND[N]) Delete(key ...any) bool {
	k := tupleKey(key)
	if _, ok := d.vals[k]; !ok {
		return false
	}
	delete(d.vals, k)
	i := slices.Index(d.enc, k)
	d.enc = slices.Delete(d.enc, i, i+1)
	d.keys = slices.Delete(d.keys, i, i+1)
	return true
}

// Len returns the number of stored keys.
func (d *ParamDictND[N]) Len() int {
	return len(d.keys)
}

// Keys returns copies of the keys in insertion order.
func (d *ParamDictND[N]) Keys() []Tuple {
	out := make([]Tuple, len(d.keys))
	for i, t := range d.keys {
		out[i] = t.clone()
	}
	return out
}

// Values returns the values in key order.
func (d *ParamDictND[N]) Values() []N {
	out := make([]N, len(d.enc))
	for i, k := range d.enc {
		out[i] = d.vals[k]
	}
	return out
}

// All iterates over key/value pairs in insertion order.
func (d *ParamDictND[N]) All() iter.Seq2[Tuple, N] {
	return func(yield func(Tuple, N) bool) {
		for i, t := range d.keys {
			if !yield(t.clone(), d.vals[d.enc[i]]) {
				return
			}
		}
	}
}

// Sum returns the sum of all values, added in insertion order.
func (d *ParamDictND[N]) Sum() N {
	var total N
	for _, k := range d.enc {
		total += d.vals[k]
	}
	return total
}

// SumPattern returns the sum of the values whose keys match pattern, one
// token per dimension with Any as wildcard. It is zero when nothing matches.
func (d *ParamDictND[N]) SumPattern(pattern ...any) (N, error) {
	var total N
	p, err := parsePattern("ParamDictND.SumPattern", d.tupleLen, pattern)
	if err != nil {
		return total, err
	}
	for i, t := range d.keys {
		if p.match(t) {
			total += d.vals[d.enc[i]]
		}
	}
	return total, nil
}

// SubsetKeys returns the keys matching pattern in insertion order.
func (d *ParamDictND[N]) SubsetKeys(pattern ...any) ([]Tuple, error) {
	p, err := parsePattern("ParamDictND.SubsetKeys", d.tupleLen, pattern)
	if err != nil {
		return nil, err
	}
	var out []Tuple
	for _, t := range d.keys {
		if p.match(t) {
			out = append(out, t.clone())
		}
	}
	return out, nil
}

func (d *ParamDictND[N]) KeyNames() []string {
	if d.keyNames == nil {
		return nil
	}
	return append([]string(nil), d.keyNames...)
}

func (d *ParamDictND[N]) SetKeyNames(names ...string) { d.keyNames = append([]string(nil), names...) }
func (d *ParamDictND[N]) ValueName() string           { return d.valueName }
func (d *ParamDictND[N]) SetValueName(name string)    { d.valueName = name }

func (d *ParamDictND[N]) String() string {
	var b strings.Builder
	b.WriteString("ParamDictND: ")
	writeHeader(&b, namesHeader(d.keyNames), d.valueName)
	b.WriteByte('{')
	for i, t := range d.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", t, d.vals[d.enc[i]])
	}
	b.WriteByte('}')
	return b.String()
}

func namesHeader(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return "(" + strings.Join(names, ", ") + ")"
}

func writeHeader(b *strings.Builder, key, value string) {
	if key == "" && value == "" {
		return
	}
	if key == "" {
		key = "KEY"
	}
	if value == "" {
		value = "VALUE"
	}
	b.WriteString(key + " -> " + value + " ")
}

// relabel moves a nested *Error under the outer operation name.
func relabel(err error, op string) error {
	if e, ok := err.(*Error); ok {
		return &Error{Op: op, Kind: e.Kind, Msg: e.Msg}
	}
	return err
}
