package dex

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Tuple is an N-dimensional key. Its elements must be scalars: comparable
// values that are not collections (slices, arrays, maps, channels, funcs,
// Tuples) and not the wildcard.
type Tuple []any

// T builds a Tuple from its elements.
func T(elems ...any) Tuple {
	return Tuple(elems)
}

// Len returns the number of elements.
func (t Tuple) Len() int {
	return len(t)
}

// Equal reports whether both tuples have the same length and equal elements.
func (t Tuple) Equal(o Tuple) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if t[i] != o[i] {
			return false
		}
	}
	return true
}

func (t Tuple) String() string {
	parts := make([]string, len(t))
	for i, e := range t {
		parts[i] = fmt.Sprint(e)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t Tuple) clone() Tuple {
	return append(Tuple(nil), t...)
}

// wildcard is the type of Any. It is unexported so no domain value can
// collide with it.
type wildcard struct{}

func (wildcard) String() string { return "*" }

// Any is the wildcard token for patterns passed to Sum, SubsetKeys and
// SubsetValues. It matches every value in its position. The string "*" is an
// ordinary key value, not a wildcard.
var Any any = wildcard{}

func isWildcard(v any) bool {
	_, ok := v.(wildcard)
	return ok
}

// isScalar reports whether v can be used as a key element.
func isScalar(v any) bool {
	if v == nil || isWildcard(v) {
		return false
	}
	if _, ok := v.(Tuple); ok {
		return false
	}
	rt := reflect.TypeOf(v)
	switch rt.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return false
	}
	return rt.Comparable()
}

// checkTuple validates the elements of a key tuple.
func checkTuple(op string, t Tuple) error {
	for i, e := range t {
		if !isScalar(e) {
			return newError(op, ErrTypeConstraint, "element %d of %v is not a scalar (%T)", i, t, e)
		}
	}
	return nil
}

// tupleKey encodes a tuple as a map key. Elements of different dynamic types
// never share an encoding.
func tupleKey(t Tuple) string {
	var b strings.Builder
	for _, e := range t {
		switch v := e.(type) {
		case string:
			b.WriteString("s:")
			b.WriteString(strconv.Quote(v))
		case int:
			b.WriteString("i:")
			b.WriteString(strconv.Itoa(v))
		case int64:
			b.WriteString("i64:")
			b.WriteString(strconv.FormatInt(v, 10))
		case float64:
			if v == 0 {
				v = 0 // -0 == 0
			}
			b.WriteString("f:")
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		case float32:
			if v == 0 {
				v = 0
			}
			b.WriteString("f32:")
			b.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
		case bool:
			b.WriteString("b:")
			b.WriteString(strconv.FormatBool(v))
		default:
			fmt.Fprintf(&b, "%T:%#v", v, v)
		}
		b.WriteByte(0x1f)
	}
	return b.String()
}

// pattern is a validated wildcard pattern.
type pattern Tuple

// parsePattern validates tokens against a key space of tupleLen dimensions.
// Checks run in order: scalar tokens, token count, wildcard usage.
// A tupleLen of zero skips the count check (empty dictionaries).
func parsePattern(op string, tupleLen int, tokens []any) (pattern, error) {
	wild := 0
	for i, tok := range tokens {
		if isWildcard(tok) {
			wild++
			continue
		}
		if !isScalar(tok) {
			return nil, newError(op, ErrTypeConstraint, "token %d is not a scalar (%T)", i, tok)
		}
	}
	if tupleLen > 0 && len(tokens) != tupleLen {
		return nil, newError(op, ErrShape, "pattern has %d tokens, keys have %d", len(tokens), tupleLen)
	}
	if wild == 0 {
		return nil, newError(op, ErrPatternUsage, "pattern has no wildcard")
	}
	if wild == len(tokens) {
		return nil, newError(op, ErrPatternUsage, "pattern has only wildcards")
	}
	return pattern(tokens), nil
}

// checkKey validates a lookup key: scalar tokens first, then the count.
func checkKey(op string, tupleLen int, key []any) error {
	for i, k := range key {
		if !isScalar(k) {
			return newError(op, ErrTypeConstraint, "key element %d is not a scalar (%T)", i, k)
		}
	}
	if len(key) != tupleLen {
		return newError(op, ErrShape, "key has %d elements, keys have %d", len(key), tupleLen)
	}
	return nil
}

func (p pattern) match(t Tuple) bool {
	if len(p) != len(t) {
		return false
	}
	for i, tok := range p {
		if isWildcard(tok) {
			continue
		}
		if t[i] != tok {
			return false
		}
	}
	return true
}
