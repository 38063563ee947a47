package dex

import (
	"fmt"
	"iter"
	"strings"
)

// Modeler creates and aggregates the variables held by variable dictionaries.
// V is the modeler's variable handle and E its linear expression.
//
// AddVariables1D and AddVariablesND stop at the first variable NewVar fails
// to create or IsVar rejects. Variables created before that stay in the
// modeler; Modeler has no way to remove them.
type Modeler[V, E any] interface {
	// NewVar creates one variable.
	NewVar(spec VarSpec, name string) (V, error)
	// IsVar reports whether v is a live handle owned by this modeler.
	IsVar(v V) bool
	// SumVars returns the sum of vars; the zero expression for none.
	SumVars(vars []V) E
}

// VarDict1D maps the keys of a one-dimensional index set to variables. It is
// created by AddVariables1D and cannot be modified.
type VarDict1D[K comparable, V, E any] struct {
	m         Modeler[V, E]
	set       *IndexSet1D[K]
	vars      map[K]V
	keyName   string
	valueName string
}

// AddVariables1D creates one variable per key of set in m and returns them
// bound to set. Variables are named <spec.Name>_<key> when spec.Name is set.
func AddVariables1D[K comparable, V, E any](m Modeler[V, E], set *IndexSet1D[K], spec VarSpec) (*VarDict1D[K, V, E], error) {
	const op = "AddVariables1D"
	if m == nil {
		return nil, newError(op, ErrUnbound, "nil modeler")
	}
	if set == nil || set.Len() == 0 {
		return nil, newError(op, ErrEmptyInput, "index set is empty")
	}
	vars := make(map[K]V, set.Len())
	for _, k := range set.keys {
		v, err := m.NewVar(spec, varName(spec.Name, k))
		if err != nil {
			return nil, fmt.Errorf("%s: key %v: %w", op, k, err)
		}
		if !m.IsVar(v) {
			return nil, newError(op, ErrTypeConstraint, "value for key %v is not a variable", k)
		}
		vars[k] = v
	}
	return newVarDict1D(op, m, set, vars, set.Name(), spec.Name)
}

func newVarDict1D[K comparable, V, E any](op string, m Modeler[V, E], set *IndexSet1D[K], vars map[K]V, keyName, valueName string) (*VarDict1D[K, V, E], error) {
	if len(vars) == 0 {
		return nil, newError(op, ErrEmptyInput, "no variables")
	}
	if len(vars) != set.Len() {
		return nil, newError(op, ErrShape, "%d variables for %d keys", len(vars), set.Len())
	}
	for k, v := range vars {
		if !set.Contains(k) {
			return nil, newError(op, ErrShape, "key %v is not in the index set", k)
		}
		if !m.IsVar(v) {
			return nil, newError(op, ErrTypeConstraint, "value for key %v is not a variable", k)
		}
	}
	return &VarDict1D[K, V, E]{m: m, set: set, vars: vars, keyName: keyName, valueName: valueName}, nil
}

// IndexSet returns the index set the dictionary is bound to.
func (d *VarDict1D[K, V, E]) IndexSet() *IndexSet1D[K] {
	return d.set
}

// Get returns the variable for k.
func (d *VarDict1D[K, V, E]) Get(k K) (V, bool) {
	v, ok := d.vars[k]
	return v, ok
}

// Has reports whether k has a variable.
func (d *VarDict1D[K, V, E]) Has(k K) bool {
	_, ok := d.vars[k]
	return ok
}

// Len returns the number of variables.
func (d *VarDict1D[K, V, E]) Len() int {
	return len(d.vars)
}

// Keys returns the keys in index-set order.
func (d *VarDict1D[K, V, E]) Keys() []K {
	if d.set == nil {
		return nil
	}
	return d.set.Values()
}

// Values returns the variables in index-set order.
func (d *VarDict1D[K, V, E]) Values() []V {
	if d.set == nil {
		return nil
	}
	out := make([]V, 0, len(d.vars))
	for _, k := range d.set.keys {
		out = append(out, d.vars[k])
	}
	return out
}

// All iterates over key/variable pairs in index-set order.
func (d *VarDict1D[K, V, E]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if d.set == nil {
			return
		}
		for _, k := range d.set.keys {
			if !yield(k, d.vars[k]) {
				return
			}
		}
	}
}

// Lookup returns the variable for k as an expression, or the zero expression
// when k is absent. On the zero VarDict1D it returns the zero E.
func (d *VarDict1D[K, V, E]) Lookup(k K) E {
	if d.m == nil {
		var zero E
		return zero
	}
	if v, ok := d.vars[k]; ok {
		return d.m.SumVars([]V{v})
	}
	return d.m.SumVars(nil)
}

// Sum returns the sum of all variables, or the zero E on the zero VarDict1D.
func (d *VarDict1D[K, V, E]) Sum() E {
	if d.m == nil {
		var zero E
		return zero
	}
	return d.m.SumVars(d.Values())
}

func (d *VarDict1D[K, V, E]) KeyName() string   { return d.keyName }
func (d *VarDict1D[K, V, E]) ValueName() string { return d.valueName }

func (d *VarDict1D[K, V, E]) String() string {
	var b strings.Builder
	b.WriteString("VarDict1D: ")
	writeHeader(&b, d.keyName, d.valueName)
	b.WriteByte('{')
	i := 0
	for k, v := range d.All() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v: %v", k, v)
		i++
	}
	b.WriteByte('}')
	return b.String()
}

const varDict1D = "VarDict1D"

// Set is not supported.
func (d *VarDict1D[K, V, E]) Set(K, V) error { return disabled(varDict1D, "Set") }

// Delete is not supported.
func (d *VarDict1D[K, V, E]) Delete(K) error { return disabled(varDict1D, "Delete") }

// Clear is not supported.
func (d *VarDict1D[K, V, E]) Clear() error { return disabled(varDict1D, "Clear") }

// Pop is not supported.
func (d *VarDict1D[K, V, E]) Pop(K) (V, error) {
	var zero V
	return zero, disabled(varDict1D, "Pop")
}

// PopItem is not supported.
func (d *VarDict1D[K, V, E]) PopItem() (K, V, error) {
	var (
		k K
		v V
	)
	return k, v, disabled(varDict1D, "PopItem")
}

// SetDefault is not supported.
func (d *VarDict1D[K, V, E]) SetDefault(K, V) (V, error) {
	var zero V
	return zero, disabled(varDict1D, "SetDefault")
}

// Update is not supported.
func (d *VarDict1D[K, V, E]) Update(map[K]V) error { return disabled(varDict1D, "Update") }

// Copy is not supported; variables are owned by the modeler.
func (d *VarDict1D[K, V, E]) Copy() (*VarDict1D[K, V, E], error) {
	return nil, disabled(varDict1D, "Copy")
}

// FromKeys is not supported. It does not depend on the receiver, so the zero
// value can be used: VarDict1D[K, V, E]{}.FromKeys(keys, v).
func (VarDict1D[K, V, E]) FromKeys([]K, V) (*VarDict1D[K, V, E], error) {
	return nil, disabled(varDict1D, "FromKeys")
}

// VarDictND maps the tuples of an N-dimensional index set to variables. It is
// created by AddVariablesND and cannot be modified.
type VarDictND[V, E any] struct {
	m         Modeler[V, E]
	set       *IndexSetND
	vars      map[string]V
	keyNames  []string
	valueName string
}

// AddVariablesND creates one variable per tuple of set in m and returns them
// bound to set. Variables are named <spec.Name>_<k1>_<k2>... when spec.Name is
// set.
func AddVariablesND[V, E any](m Modeler[V, E], set *IndexSetND, spec VarSpec) (*VarDictND[V, E], error) {
	const op = "AddVariablesND"
	if m == nil {
		return nil, newError(op, ErrUnbound, "nil modeler")
	}
	if set == nil || set.Len() == 0 {
		return nil, newError(op, ErrEmptyInput, "index set is empty")
	}
	byKey := make(map[string]V, set.Len())
	for i, t := range set.tuples {
		v, err := m.NewVar(spec, varName(spec.Name, t...))
		if err != nil {
			return nil, fmt.Errorf("%s: key %v: %w", op, t, err)
		}
		if !m.IsVar(v) {
			return nil, newError(op, ErrTypeConstraint, "value for key %v is not a variable", t)
		}
		byKey[set.enc[i]] = v
	}
	return newVarDictND(op, m, set, byKey, set.Names(), spec.Name)
}

func newVarDictND[V, E any](op string, m Modeler[V, E], set *IndexSetND, vars map[string]V, keyNames []string, valueName string) (*VarDictND[V, E], error) {
	if len(vars) == 0 {
		return nil, newError(op, ErrEmptyInput, "no variables")
	}
	if len(vars) != set.Len() {
		return nil, newError(op, ErrShape, "%d variables for %d keys", len(vars), set.Len())
	}
	for k, v := range vars {
		i := set.index(k)
		if i < 0 {
			return nil, newError(op, ErrShape, "key is not in the index set")
		}
		if !m.IsVar(v) {
			return nil, newError(op, ErrTypeConstraint, "value for key %v is not a variable", set.tuples[i])
		}
	}
	return &VarDictND[V, E]{m: m, set: set, vars: vars, keyNames: keyNames, valueName: valueName}, nil
}

func (d *VarDictND[V, E]) bound(op string) error {
	if d.m == nil || d.set == nil {
		return newError(op, ErrUnbound, "use AddVariablesND")
	}
	return nil
}

// IndexSet returns the index set the dictionary is bound to.
func (d *VarDictND[V, E]) IndexSet() *IndexSetND {
	return d.set
}

// TupleLen returns the key length.
func (d *VarDictND[V, E]) TupleLen() int {
	if d.set == nil {
		return 0
	}
	return d.set.TupleLen()
}

// Get returns the variable for the tuple formed by key.
func (d *VarDictND[V, E]) Get(key ...any) (V, bool) {
	v, ok := d.vars[tupleKey(key)]
	return v, ok
}

// Has reports whether the tuple formed by key has a variable.
func (d *VarDictND[V, E]) Has(key ...any) bool {
	_, ok := d.vars[tupleKey(key)]
	return ok
}

// Len returns the number of variables.
func (d *VarDictND[V, E]) Len() int {
	return len(d.vars)
}

// Keys returns copies of the keys in index-set order.
func (d *VarDictND[V, E]) Keys() []Tuple {
	if d.set == nil {
		return nil
	}
	return d.set.Values()
}

// Values returns the variables in index-set order.
func (d *VarDictND[V, E]) Values() []V {
	if d.set == nil {
		return nil
	}
	out := make([]V, len(d.set.enc))
	for i, k := range d.set.enc {
		out[i] = d.vars[k]
	}
	return out
}

// All iterates over key/variable pairs in index-set order.
func (d *VarDictND[V, E]) All() iter.Seq2[Tuple, V] {
	return func(yield func(Tuple, V) bool) {
		if d.set == nil {
			return
		}
		for i, t := range d.set.tuples {
			if !yield(t.clone(), d.vars[d.set.enc[i]]) {
				return
			}
		}
	}
}

// Lookup returns the variable for the tuple formed by key as an expression,
// or the zero expression when the tuple is absent. The key must hold TupleLen
// scalars.
func (d *VarDictND[V, E]) Lookup(key ...any) (E, error) {
	const op = "VarDictND.Lookup"
	var zero E
	if err := d.bound(op); err != nil {
		return zero, err
	}
	if err := checkKey(op, d.set.tupleLen, key); err != nil {
		return zero, err
	}
	if v, ok := d.vars[tupleKey(key)]; ok {
		return d.m.SumVars([]V{v}), nil
	}
	return d.m.SumVars(nil), nil
}

// Sum returns the sum of all variables.
func (d *VarDictND[V, E]) Sum() (E, error) {
	var zero E
	if err := d.bound("VarDictND.Sum"); err != nil {
		return zero, err
	}
	return d.m.SumVars(d.Values()), nil
}

// SumPattern returns the sum of the variables whose keys match pattern, one
// token per dimension with Any as wildcard. The zero expression is returned
// when nothing matches.
func (d *VarDictND[V, E]) SumPattern(pattern ...any) (E, error) {
	var zero E
	vars, err := d.match("VarDictND.SumPattern", pattern)
	if err != nil {
		return zero, err
	}
	return d.m.SumVars(vars), nil
}

// SubsetKeys returns the keys matching pattern in index-set order.
func (d *VarDictND[V, E]) SubsetKeys(pattern ...any) ([]Tuple, error) {
	const op = "VarDictND.SubsetKeys"
	if err := d.bound(op); err != nil {
		return nil, err
	}
	p, err := parsePattern(op, d.set.tupleLen, pattern)
	if err != nil {
		return nil, err
	}
	var out []Tuple
	for _, t := range d.set.tuples {
		if p.match(t) {
			out = append(out, t.clone())
		}
	}
	return out, nil
}

// SubsetValues returns the variables whose keys match pattern, in index-set
// order.
func (d *VarDictND[V, E]) SubsetValues(pattern ...any) ([]V, error) {
	return d.match("VarDictND.SubsetValues", pattern)
}

func (d *VarDictND[V, E]) match(op string, pattern []any) ([]V, error) {
	if err := d.bound(op); err != nil {
		return nil, err
	}
	p, err := parsePattern(op, d.set.tupleLen, pattern)
	if err != nil {
		return nil, err
	}
	var out []V
	for i, t := range d.set.tuples {
		if p.match(t) {
			out = append(out, d.vars[d.set.enc[i]])
		}
	}
	return out, nil
}

func (d *VarDictND[V, E]) KeyNames() []string {
	if d.keyNames == nil {
		return nil
	}
	return append([]string(nil), d.keyNames...)
}

func (d *VarDictND[V, E]) ValueName() string { return d.valueName }

func (d *VarDictND[V, E]) String() string {
	var b strings.Builder
	b.WriteString("VarDictND: ")
	writeHeader(&b, namesHeader(d.keyNames), d.valueName)
	b.WriteByte('{')
	i := 0
	for t, v := range d.All() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", t, v)
		i++
	}
	b.WriteByte('}')
	return b.String()
}

const varDictND = "VarDictND"

// Set is not supported.
func (d *VarDictND[V, E]) Set(Tuple, V) error { return disabled(varDictND, "Set") }

// Delete is not supported.
func (d *VarDictND[V, E]) Delete(...any) error { return disabled(varDictND, "Delete") }

// Clear is not supported.
func (d *VarDictND[V, E]) Clear() error { return disabled(varDictND, "Clear") }

// Pop is not supported.
func (d *VarDictND[V, E]) Pop(...any) (V, error) {
	var zero V
	return zero, disabled(varDictND, "Pop")
}

// PopItem is not supported.
func (d *VarDictND[V, E]) PopItem() (Tuple, V, error) {
	var zero V
	return nil, zero, disabled(varDictND, "PopItem")
}

// SetDefault is not supported.
func (d *VarDictND[V, E]) SetDefault(Tuple, V) (V, error) {
	var zero V
	return zero, disabled(varDictND, "SetDefault")
}

// Update is not supported.
func (d *VarDictND[V, E]) Update([]Tuple, []V) error { return disabled(varDictND, "Update") }

// Copy is not supported; variables are owned by the modeler.
func (d *VarDictND[V, E]) Copy() (*VarDictND[V, E], error) {
	return nil, disabled(varDictND, "Copy")
}

// FromKeys is not supported. It does not depend on the receiver.
func (VarDictND[V, E]) FromKeys([]Tuple, V) (*VarDictND[V, E], error) {
	return nil, disabled(varDictND, "FromKeys")
}

func disabled(typeName, op string) error {
	return newError(typeName+"."+op, ErrCapabilityDisabled, "%s is not supported by %s", op, typeName)
}
