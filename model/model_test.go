package model_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartolsthoorn/highsdex/dex"
	"github.com/bartolsthoorn/highsdex/highs"
	"github.com/bartolsthoorn/highsdex/model"
)

// referenceModel is the HiGHS reference problem with an integer x1:
//
//	Min    f  =  x_0 +  x_1 + 3
//	s.t.                x_1 <= 7
//	       5 <=  x_0 + 2x_1 <= 15
//	       6 <= 3x_0 + 2x_1
//	0 <= x_0 <= 4; 1 <= x_1
func referenceModel(t *testing.T, x1 dex.VarType) (*model.Model, *model.Var, *model.Var) {
	t.Helper()
	m := model.New("reference")
	x0, err := m.AddVar(dex.Spec(dex.Continuous, dex.UpperBound(4)), "x0")
	require.NoError(t, err)
	y, err := m.AddVar(dex.Spec(x1, dex.LowerBound(1)), "x1")
	require.NoError(t, err)

	_, err = m.AddLE(m.Expr().AddTerm(y, 1), 7, "")
	require.NoError(t, err)
	_, err = m.AddRange(5, m.Expr().AddTerm(x0, 1).AddTerm(y, 2), 15, "")
	require.NoError(t, err)
	_, err = m.AddGE(m.Expr().AddTerm(x0, 3).AddTerm(y, 2), 6, "")
	require.NoError(t, err)
	require.NoError(t, m.Minimize(m.Expr().AddTerm(x0, 1).AddTerm(y, 1).AddConstant(3)))
	return m, x0, y
}

func TestAddVar(t *testing.T) {
	m := model.New("vars")

	v, err := m.AddVar(dex.VarSpec{Type: dex.Binary, Lower: -5, Upper: 5}, "")
	require.NoError(t, err)
	lb, ub := v.Bounds()
	assert.Equal(t, []float64{0, 1}, []float64{lb, ub})
	assert.Equal(t, "x0", v.Name())
	assert.Equal(t, 0, v.Index())

	_, err = m.AddVar(dex.Spec(dex.Continuous, dex.LowerBound(3), dex.UpperBound(1)), "bad")
	assert.ErrorIs(t, err, model.ErrInvalidBounds)
	_, err = m.AddVar(dex.Spec(dex.Continuous, dex.LowerBound(math.NaN())), "nan")
	assert.ErrorIs(t, err, model.ErrInvalidBounds)
	_, err = m.AddVar(dex.VarSpec{Type: dex.VarType(42)}, "unknown")
	assert.Error(t, err)

	assert.Equal(t, 1, m.NumVars(), "failed variables are not added")

	x, err := m.AddVar(dex.Spec(dex.Continuous), "x")
	require.NoError(t, err)
	require.NoError(t, m.SetBounds(x, -2, 2))
	lb, ub = x.Bounds()
	assert.Equal(t, []float64{-2, 2}, []float64{lb, ub})
	assert.ErrorIs(t, m.SetBounds(x, 3, 2), model.ErrInvalidBounds)
	assert.ErrorIs(t, model.New("other").SetBounds(x, 0, 1), model.ErrForeignVar)

	require.NoError(t, m.SetBounds(v, 5, 6))
	lb, ub = v.Bounds()
	assert.Equal(t, []float64{0, 1}, []float64{lb, ub}, "binary bounds are fixed")
}

func TestConstraints(t *testing.T) {
	m := model.New("cons")
	x := addVars(t, m, "x")[0]

	c, err := m.AddLE(m.Expr().AddTerm(x, 1).AddConstant(2), 5, "cap")
	require.NoError(t, err)
	assert.Equal(t, model.LessEqual, c.Sense())
	assert.Equal(t, 3.0, c.RHS(), "constant moves to the right-hand side")
	assert.Equal(t, "cap: x <= 3", c.String())
	assert.Equal(t, 0.0, c.Expr().Constant())

	c, err = m.AddEQ(m.Expr().AddTerm(x, 2), 4, "")
	require.NoError(t, err)
	assert.Equal(t, model.Equal, c.Sense())
	assert.Equal(t, "c1", c.Name())
	assert.Equal(t, "c1: 2 x == 4", c.String())

	c, err = m.AddRange(1, m.Expr().AddTerm(x, 1), 2, "r")
	require.NoError(t, err)
	assert.Equal(t, model.Ranged, c.Sense())
	assert.Equal(t, "r: 1 <= x <= 2", c.String())
	lo, up := c.Bounds()
	assert.Equal(t, []float64{1, 2}, []float64{lo, up})

	c, err = m.AddConstraint(m.Expr().AddTerm(x, 1), model.GreaterEqual, 0.5, "ge")
	require.NoError(t, err)
	assert.Equal(t, "ge: x >= 0.5", c.String())

	_, err = m.AddConstraint(m.Expr().AddTerm(x, 1), model.Ranged, 1, "bad")
	assert.Error(t, err)
	_, err = m.AddRange(5, m.Expr().AddTerm(x, 1), 1, "bad")
	assert.ErrorIs(t, err, model.ErrInvalidBounds)

	assert.Equal(t, 4, m.NumConstraints())
	names := make([]string, 0, 4)
	for _, c := range m.Constraints() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"cap", "c1", "r", "ge"}, names)
}

func TestBuild(t *testing.T) {
	m, _, _ := referenceModel(t, dex.Integer)
	hm := m.Build()

	assert.False(t, hm.Maximize)
	assert.Equal(t, 3.0, hm.Offset)
	assert.Equal(t, []float64{1, 1}, hm.ColCosts)
	assert.Equal(t, []float64{0, 1}, hm.ColLower)
	assert.Equal(t, 4.0, hm.ColUpper[0])
	assert.True(t, math.IsInf(hm.ColUpper[1], 1))
	assert.Equal(t, []highs.VariableType{highs.Continuous, highs.Integer}, hm.VarTypes)
	assert.Equal(t, 2, hm.NumVars())
	assert.Equal(t, 3, hm.NumConstraints())
	assert.Equal(t, []float64{5, 6}, hm.RowLower[1:])
	assert.Equal(t, []float64{7, 15}, hm.RowUpper[:2])
	assert.Len(t, hm.ConstMatrix, 5)
}

func TestStats(t *testing.T) {
	m, _, _ := referenceModel(t, dex.Integer)
	st := m.Stats()

	assert.Equal(t, "MIP", st.ProblemType())
	assert.Equal(t, 2, st.Vars)
	assert.Equal(t, 1, st.VarsByType[dex.Integer])
	assert.Equal(t, 2, st.ObjNonzeros)
	assert.Equal(t, 3, st.Constraints)
	assert.Equal(t, 5, st.Nonzeros)
	assert.Equal(t, 3, st.RHSNonzeros)
	assert.Equal(t, model.Span{Min: 1, Max: 3, Count: 5}, st.MatrixCoeffs)
	assert.Equal(t, model.Span{Min: 5, Max: 7, Count: 3}, st.RHSCoeffs)
	assert.Equal(t, model.Span{Min: 4, Max: 4, Count: 1}, st.UpperBounds)

	var b strings.Builder
	require.NoError(t, st.Format(&b))
	out := b.String()
	for _, line := range []string{
		"Problem name         : reference\n",
		"Objective sense      : Minimize\n",
		"Variables            :       2  [continuous: 1, integer: 1]\n",
		"Objective nonzeros   :       2\n",
		"Linear constraints   :       3  [Less: 1, Greater: 1, Range: 1]\n",
		"  Nonzeros           :       5\n",
		"  RHS nonzeros       :       3\n",
	} {
		assert.Contains(t, out, line)
	}
	assert.Contains(t, out, "Min LB: 0 ")
	assert.Contains(t, out, "Max UB: 4 ")

	empty := model.New("empty").Stats()
	assert.Equal(t, "LP", empty.ProblemType())
	b.Reset()
	require.NoError(t, empty.Format(&b))
	assert.Contains(t, b.String(), "Min LB: all infinite")
	assert.Contains(t, b.String(), "Min   : all zero")
}
