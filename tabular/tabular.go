// Package tabular converts labelled columnar data into dex containers.
//
// The types here are the minimal shape of a labelled index or series: values
// in row order plus names. Conversions keep order and names, and reject
// duplicate labels with dex.ErrDuplicateKey.
package tabular

import (
	"fmt"
	"reflect"

	"github.com/bartolsthoorn/highsdex/dex"
)

// Index is a named one-level index.
type Index[K comparable] struct {
	Name   string
	Values []K
}

// MultiIndex is an index whose labels are tuples, one name per level.
type MultiIndex struct {
	Names []string
	Rows  []dex.Tuple
}

// Levels returns the number of levels, taken from the names or the first row.
func (mi MultiIndex) Levels() int {
	if len(mi.Names) > 0 {
		return len(mi.Names)
	}
	if len(mi.Rows) > 0 {
		return len(mi.Rows[0])
	}
	return 0
}

// Level returns the distinct values of level i in order of first appearance.
func (mi MultiIndex) Level(i int) (Index[any], error) {
	if i < 0 || i >= mi.Levels() {
		return Index[any]{}, fmt.Errorf("tabular: level %d out of range [0, %d)", i, mi.Levels())
	}
	out := Index[any]{}
	if i < len(mi.Names) {
		out.Name = mi.Names[i]
	}
	seen := make(map[any]struct{})
	for r, row := range mi.Rows {
		if i >= len(row) {
			return Index[any]{}, fmt.Errorf("tabular: row %d has %d levels", r, len(row))
		}
		v := row[i]
		if t := reflect.TypeOf(v); t == nil || !t.Comparable() {
			return Index[any]{}, fmt.Errorf("tabular: row %d level %d: %T is not a label", r, i, v)
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out.Values = append(out.Values, v)
	}
	return out, nil
}

// Series is a numeric column over a one-level index.
type Series[K comparable, N dex.Number] struct {
	Index  Index[K]
	Values []N
	Name   string
}

// MultiSeries is a numeric column over a multi-level index.
type MultiSeries[N dex.Number] struct {
	Index  MultiIndex
	Values []N
	Name   string
}

// IndexToSet converts idx into an index set named after it.
func IndexToSet[K comparable](idx Index[K]) (*dex.IndexSet1D[K], error) {
	return dex.NewIndexSet1D(idx.Values, dex.WithName(idx.Name))
}

// MultiIndexToSet converts mi into an N-dimensional index set with the level
// names.
func MultiIndexToSet(mi MultiIndex) (*dex.IndexSetND, error) {
	return dex.NewIndexSetND(mi.Rows, dex.WithNames(mi.Names...))
}

// SeriesToParamDict converts s into a dictionary keyed by its index. The key
// name is the index name and the value name is the series name.
func SeriesToParamDict[K comparable, N dex.Number](s Series[K, N]) (*dex.ParamDict1D[K, N], error) {
	return dex.ParamDict1DFromPairs(s.Index.Values, s.Values,
		dex.WithName(s.Index.Name), dex.WithValueName(s.Name))
}

// MultiSeriesToParamDict converts s into an N-dimensional dictionary.
func MultiSeriesToParamDict[N dex.Number](s MultiSeries[N]) (*dex.ParamDictND[N], error) {
	if len(s.Index.Rows) != len(s.Values) {
		return nil, fmt.Errorf("tabular: %d index rows for %d values: %w",
			len(s.Index.Rows), len(s.Values), dex.ErrShape)
	}
	entries := make([]dex.Entry[N], len(s.Values))
	for i, v := range s.Values {
		entries[i] = dex.Entry[N]{Key: s.Index.Rows[i], Value: v}
	}
	return dex.NewParamDictND(entries, dex.WithNames(s.Index.Names...), dex.WithValueName(s.Name))
}
