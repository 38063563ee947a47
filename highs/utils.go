package highs

import (
	"math"
	"sort"
)

// Inf returns positive infinity, suitable for unbounded variable bounds.
func Inf() float64 {
	return math.Inf(1)
}

// NegInf returns negative infinity, suitable for unbounded variable bounds.
func NegInf() float64 {
	return math.Inf(-1)
}

// nonzerosToCSR converts nonzeros to compressed sparse row format with one
// start entry per row, including rows without entries.
// Duplicate (row, col) entries keep the last value.
func nonzerosToCSR(nz []Nonzero, numRow int) (start, index []int, value []float64, err error) {
	sorted := make([]Nonzero, len(nz))
	copy(sorted, nz)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		return sorted[i].Col < sorted[j].Col
	})

	filtered := make([]Nonzero, 0, len(sorted))
	for _, n := range sorted {
		if n.Row < 0 || n.Col < 0 {
			return nil, nil, nil, newErrorMsg("nonzerosToCSR", "negative row or column index")
		}
		if n.Row >= numRow {
			return nil, nil, nil, newErrorMsg("nonzerosToCSR", "row index out of range")
		}
		if last := len(filtered) - 1; last >= 0 && filtered[last].Row == n.Row && filtered[last].Col == n.Col {
			filtered[last].Val = n.Val
			continue
		}
		filtered = append(filtered, n)
	}

	start = make([]int, numRow)
	index = make([]int, len(filtered))
	value = make([]float64, len(filtered))

	next := 0
	for row := 0; row < numRow; row++ {
		start[row] = next
		for next < len(filtered) && filtered[next].Row == row {
			index[next] = filtered[next].Col
			value[next] = filtered[next].Val
			next++
		}
	}

	return start, index, value, nil
}

// expandSlice expands an empty slice to length n filled with fillValue.
// Returns the original slice if it already has length n, and an error if it
// has a non-zero length that differs from n.
func expandSlice(n int, slice []float64, fillValue float64) ([]float64, error) {
	if len(slice) == n {
		return slice, nil
	}
	if len(slice) == 0 {
		result := make([]float64, n)
		for i := range result {
			result[i] = fillValue
		}
		return result, nil
	}
	return nil, newErrorMsg("expandSlice", "inconsistent slice length")
}
