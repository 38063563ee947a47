package tabular_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartolsthoorn/highsdex/dex"
	"github.com/bartolsthoorn/highsdex/tabular"
)

func TestIndexToSet(t *testing.T) {
	set, err := tabular.IndexToSet(tabular.Index[string]{Name: "FOOD", Values: []string{"C", "A", "B"}})
	require.NoError(t, err)
	assert.Equal(t, "FOOD", set.Name())
	assert.Equal(t, []string{"C", "A", "B"}, set.Values())

	_, err = tabular.IndexToSet(tabular.Index[string]{Values: []string{"A", "A"}})
	assert.ErrorIs(t, err, dex.ErrDuplicateKey)
}

func TestMultiIndex(t *testing.T) {
	mi := tabular.MultiIndex{
		Names: []string{"NUTR", "FOOD"},
		Rows:  []dex.Tuple{dex.T("A", "BEEF"), dex.T("A", "CHK"), dex.T("C", "BEEF")},
	}
	set, err := tabular.MultiIndexToSet(mi)
	require.NoError(t, err)
	assert.Equal(t, []string{"NUTR", "FOOD"}, set.Names())
	assert.Equal(t, 3, set.Len())
	assert.True(t, set.Contains("C", "BEEF"))

	lvl, err := mi.Level(1)
	require.NoError(t, err)
	assert.Equal(t, "FOOD", lvl.Name)
	assert.Equal(t, []any{"BEEF", "CHK"}, lvl.Values)

	_, err = mi.Level(2)
	assert.Error(t, err)

	mi.Rows = append(mi.Rows, dex.T("A", "BEEF"))
	_, err = tabular.MultiIndexToSet(mi)
	assert.ErrorIs(t, err, dex.ErrDuplicateKey)

	bad := tabular.MultiIndex{Rows: []dex.Tuple{dex.T([]int{1}, 2)}}
	_, err = bad.Level(0)
	assert.Error(t, err)
}

func TestSeriesToParamDict(t *testing.T) {
	s := tabular.Series[string, float64]{
		Index:  tabular.Index[string]{Name: "FOOD", Values: []string{"BEEF", "CHK"}},
		Values: []float64{3.19, 2.59},
		Name:   "COST",
	}
	d, err := tabular.SeriesToParamDict(s)
	require.NoError(t, err)
	assert.Equal(t, "FOOD", d.KeyName())
	assert.Equal(t, "COST", d.ValueName())
	assert.Equal(t, []string{"BEEF", "CHK"}, d.Keys())
	assert.InDelta(t, 5.78, d.Sum(), 1e-9)

	s.Values = s.Values[:1]
	_, err = tabular.SeriesToParamDict(s)
	assert.ErrorIs(t, err, dex.ErrShape)
}

func TestMultiSeriesToParamDict(t *testing.T) {
	s := tabular.MultiSeries[int]{
		Index: tabular.MultiIndex{
			Names: []string{"I", "J"},
			Rows:  []dex.Tuple{dex.T("A", "B"), dex.T("A", "C")},
		},
		Values: []int{60, 8},
		Name:   "amt",
	}
	d, err := tabular.MultiSeriesToParamDict(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"I", "J"}, d.KeyNames())
	sum, err := d.SumPattern("A", dex.Any)
	require.NoError(t, err)
	assert.Equal(t, 68, sum)

	s.Values = []int{1}
	_, err = tabular.MultiSeriesToParamDict(s)
	assert.ErrorIs(t, err, dex.ErrShape)
}

func TestReadCSV(t *testing.T) {
	const data = `NUTR,FOOD,DAY,AMT
A, BEEF, 1, 60
A, CHK, 1, 8
C, BEEF, 2, 20.5
`
	s, err := tabular.ReadCSV(strings.NewReader(data), []string{"NUTR", "FOOD", "DAY"}, "AMT")
	require.NoError(t, err)
	assert.Equal(t, "AMT", s.Name)
	assert.Equal(t, []string{"NUTR", "FOOD", "DAY"}, s.Index.Names)
	assert.Equal(t, []dex.Tuple{dex.T("A", "BEEF", 1), dex.T("A", "CHK", 1), dex.T("C", "BEEF", 2)}, s.Index.Rows)
	assert.Equal(t, []float64{60, 8, 20.5}, s.Values)

	d, err := tabular.MultiSeriesToParamDict(*s)
	require.NoError(t, err)
	assert.Equal(t, 20.5, d.Lookup("C", "BEEF", 2))
	assert.Equal(t, 0.0, d.Lookup("C", "BEEF", "2"), "int labels differ from strings")
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		keys []string
		val  string
	}{
		{name: "no keys", data: "A,B\n1,2\n", val: "B"},
		{name: "empty", data: "", keys: []string{"A"}, val: "B"},
		{name: "missing key column", data: "A,B\n1,2\n", keys: []string{"X"}, val: "B"},
		{name: "missing value column", data: "A,B\n1,2\n", keys: []string{"A"}, val: "X"},
		{name: "bad number", data: "A,B\n1,x\n", keys: []string{"A"}, val: "B"},
		{name: "ragged", data: "A,B\n1,2,3\n", keys: []string{"A"}, val: "B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tabular.ReadCSV(strings.NewReader(tt.data), tt.keys, tt.val)
			assert.Error(t, err)
		})
	}
}
