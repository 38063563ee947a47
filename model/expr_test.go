package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartolsthoorn/highsdex/dex"
	"github.com/bartolsthoorn/highsdex/model"
)

func addVars(t *testing.T, m *model.Model, names ...string) []*model.Var {
	t.Helper()
	out := make([]*model.Var, len(names))
	for i, n := range names {
		v, err := m.AddVar(dex.Spec(dex.Continuous), n)
		require.NoError(t, err)
		out[i] = v
	}
	return out
}

func TestLinExprBuild(t *testing.T) {
	m := model.New("expr")
	v := addVars(t, m, "x", "y", "z")

	e := m.Expr().AddTerm(v[0], 2).AddTerm(v[1], 1).AddConstant(-3)
	require.NoError(t, e.Err())
	assert.Equal(t, "2 x + y - 3", e.String())
	assert.Equal(t, 2, e.Len())
	assert.Equal(t, 2.0, e.Coef(v[0]))
	assert.Equal(t, 0.0, e.Coef(v[2]))
	assert.Equal(t, -3.0, e.Constant())
	assert.Equal(t, []*model.Var{v[0], v[1]}, e.Vars())

	e.AddTerm(v[1], -1)
	assert.Equal(t, 1, e.Len(), "cancelled term is dropped")

	f := m.Expr().AddTerm(v[2], -1).Add(e).Scale(2)
	assert.Equal(t, "4 x - 2 z - 6", f.String())
	assert.Equal(t, 4.0*1-2*3-6, f.Eval([]float64{1, 0, 3}))

	g := f.Clone().AddScaled(e, -2)
	assert.Equal(t, "-2 z", g.String())
	assert.Equal(t, 0.0, g.Coef(v[0]))
	assert.Equal(t, 0.0, g.Constant())
	assert.Equal(t, "4 x - 2 z - 6", f.String(), "clone is independent")

	assert.Equal(t, "0", m.Expr().String())
	assert.Equal(t, "0", f.Clone().Scale(0).String())
}

func TestLinExprForeignVar(t *testing.T) {
	a, b := model.New("a"), model.New("b")
	x := addVars(t, a, "x")[0]
	y := addVars(t, b, "y")[0]

	e := a.Expr().AddTerm(x, 1).AddTerm(y, 1)
	require.Error(t, e.Err())
	assert.True(t, errors.Is(e.Err(), model.ErrForeignVar))
	assert.Equal(t, 1, e.Len(), "terms after the error are ignored")

	_, err := a.AddLE(e, 1, "c")
	assert.ErrorIs(t, err, model.ErrForeignVar)
	assert.ErrorIs(t, a.Minimize(e), model.ErrForeignVar)

	other := b.Expr().AddTerm(y, 1)
	_, err = a.AddGE(other, 0, "c")
	assert.ErrorIs(t, err, model.ErrForeignVar)

	e = a.Expr().AddTerm(nil, 1)
	assert.ErrorIs(t, e.Err(), model.ErrForeignVar)

	e = a.Expr().AddTerm(x, 1).Add(b.Expr().AddTerm(nil, 1))
	assert.ErrorIs(t, e.Err(), model.ErrForeignVar, "error of an added expression propagates")
}

func TestSumVarsViaVarDict(t *testing.T) {
	m := model.New("sum")
	set, err := dex.NewIndexSet1D([]string{"a", "b", "c"}, dex.WithName("K"))
	require.NoError(t, err)

	d, err := dex.AddVariables1D(m, set, dex.Spec(dex.Integer, dex.UpperBound(5), dex.Named("n")))
	require.NoError(t, err)
	assert.Equal(t, 3, m.NumVars())

	sum := d.Sum()
	require.NoError(t, sum.Err())
	assert.Equal(t, "n_a + n_b + n_c", sum.String())

	v, ok := d.Get("b")
	require.True(t, ok)
	assert.Equal(t, "n_b", v.Name())
	assert.Equal(t, dex.Integer, v.Type())
	lb, ub := v.Bounds()
	assert.Equal(t, 0.0, lb)
	assert.Equal(t, 5.0, ub)
	assert.True(t, m.IsVar(v))
	assert.False(t, model.New("other").IsVar(v))
}
