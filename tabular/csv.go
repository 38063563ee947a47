package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/bartolsthoorn/highsdex/dex"
)

// ReadCSV reads a headed CSV table into a series keyed by keyColumns, with
// values from valueColumn. A key column whose cells all parse as integers
// yields int labels; any other key column yields strings.
func ReadCSV(r io.Reader, keyColumns []string, valueColumn string) (*MultiSeries[float64], error) {
	if len(keyColumns) == 0 {
		return nil, errors.New("tabular: no key columns")
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("tabular: read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("tabular: csv has no header")
	}

	header := records[0]
	keyIdx := make([]int, len(keyColumns))
	for i, name := range keyColumns {
		if keyIdx[i] = slices.Index(header, name); keyIdx[i] < 0 {
			return nil, fmt.Errorf("tabular: column %q not found", name)
		}
	}
	valIdx := slices.Index(header, valueColumn)
	if valIdx < 0 {
		return nil, fmt.Errorf("tabular: column %q not found", valueColumn)
	}

	rows := records[1:]
	s := &MultiSeries[float64]{
		Index:  MultiIndex{Names: slices.Clone(keyColumns), Rows: make([]dex.Tuple, len(rows))},
		Values: make([]float64, len(rows)),
		Name:   valueColumn,
	}
	for i, rec := range rows {
		cell := strings.TrimSpace(rec[valIdx])
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("tabular: line %d column %q: %w", i+2, valueColumn, err)
		}
		s.Values[i] = v
		s.Index.Rows[i] = make(dex.Tuple, len(keyIdx))
	}
	for level, col := range keyIdx {
		ints, ok := intColumn(rows, col)
		for i, rec := range rows {
			if ok {
				s.Index.Rows[i][level] = ints[i]
			} else {
				s.Index.Rows[i][level] = strings.TrimSpace(rec[col])
			}
		}
	}
	return s, nil
}

func intColumn(rows [][]string, col int) ([]int, bool) {
	out := make([]int, len(rows))
	for i, rec := range rows {
		n, err := strconv.Atoi(strings.TrimSpace(rec[col]))
		if err != nil {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}
