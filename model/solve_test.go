package model_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartolsthoorn/highsdex/dex"
	"github.com/bartolsthoorn/highsdex/highs"
	"github.com/bartolsthoorn/highsdex/model"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSolveReference(t *testing.T) {
	tests := []struct {
		name      string
		typ       dex.VarType
		maximize  bool
		x0, x1    float64
		objective float64
	}{
		{name: "lp min", typ: dex.Continuous, x0: 0.5, x1: 2.25, objective: 5.75},
		{name: "lp max", typ: dex.Continuous, maximize: true, x0: 4, x1: 5.5, objective: 12.5},
		{name: "mip max", typ: dex.Integer, maximize: true, x0: 4, x1: 5, objective: 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, x0, x1 := referenceModel(t, tt.typ)
			if tt.maximize {
				require.NoError(t, m.Maximize(m.Objective()))
			}

			res, err := model.Solve(context.Background(), m, model.WithLogger(quietLogger()))
			require.NoError(t, err)
			require.True(t, res.HasSolution())
			assert.Equal(t, highs.ModelStatusOptimal, res.Status)
			assert.NotEmpty(t, res.RunID)
			assert.InDelta(t, tt.objective, res.Objective, 1e-6)

			v, err := res.Value(x0)
			require.NoError(t, err)
			assert.InDelta(t, tt.x0, v, 1e-6)
			v, err = res.Value(x1)
			require.NoError(t, err)
			assert.InDelta(t, tt.x1, v, 1e-6)

			obj, err := res.ValueOf(m.Objective())
			require.NoError(t, err)
			assert.InDelta(t, tt.objective, obj, 1e-6)
			assert.Len(t, res.Values(), 2)
		})
	}
}

func TestSolveLogOutput(t *testing.T) {
	m, _, _ := referenceModel(t, dex.Continuous)
	var out bytes.Buffer
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	res, err := model.Solve(context.Background(), m, model.WithLogOutput(&out), model.WithLogger(logger))
	require.NoError(t, err)
	require.True(t, res.HasSolution())

	text := out.String()
	header := strings.Repeat("-", 30) + "  LP problem statistics  " + strings.Repeat("-", 30)
	assert.True(t, strings.HasPrefix(text, header+"\n\n"), "header divider: %q", text[:min(len(text), 100)])
	assert.Contains(t, text, "  HiGHS optimizer log  ")
	assert.Contains(t, text, "  Solution quality statistics  ")
	assert.Contains(t, text, "There are no bound infeasibilities.")
	assert.True(t, strings.HasSuffix(text, "\n"+strings.Repeat("-", 85)+"\n"))

	assert.Contains(t, logs.String(), "solve started")
	assert.Contains(t, logs.String(), "solve finished")
	assert.Contains(t, logs.String(), "run_id="+res.RunID)
	assert.Contains(t, logs.String(), "status=Optimal")
}

func TestSolveInfeasible(t *testing.T) {
	m := model.New("infeasible")
	x := addVars(t, m, "x")[0]
	_, err := m.AddGE(m.Expr().AddTerm(x, 1), 5, "")
	require.NoError(t, err)
	_, err = m.AddLE(m.Expr().AddTerm(x, 1), 3, "")
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := model.Solve(context.Background(), m, model.WithLogOutput(&out), model.WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, highs.ModelStatusInfeasible, res.Status)
	assert.False(t, res.HasSolution())

	_, err = res.Value(x)
	assert.ErrorIs(t, err, model.ErrNoSolution)
	assert.Nil(t, res.Values())
	assert.Contains(t, out.String(), "Model `infeasible` has no incumbent solution.")
}

func TestSolveCancelled(t *testing.T) {
	m, _, _ := referenceModel(t, dex.Continuous)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := model.Solve(ctx, m)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolveBadOption(t *testing.T) {
	m, _, _ := referenceModel(t, dex.Continuous)
	reg := prometheus.NewRegistry()
	mt := model.NewMetrics(reg)

	_, err := model.Solve(context.Background(), m,
		model.WithLogger(quietLogger()),
		model.WithMetrics(mt),
		model.WithSolverOptions(highs.WithBoolOption("no_such_option", true)))
	require.Error(t, err)

	var herr *highs.Error
	assert.True(t, errors.As(err, &herr))

	n, err := testutil.GatherAndCount(reg, "highsdex_solver_solves_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSolveMetrics(t *testing.T) {
	m, _, _ := referenceModel(t, dex.Continuous)
	reg := prometheus.NewRegistry()
	mt := model.NewMetrics(reg)

	for range 2 {
		_, err := model.Solve(context.Background(), m, model.WithLogger(quietLogger()), model.WithMetrics(mt))
		require.NoError(t, err)
	}

	expected := `
# HELP highsdex_solver_solves_total Total solver runs by final model status
# TYPE highsdex_solver_solves_total counter
highsdex_solver_solves_total{model="reference",status="Optimal"} 2
# HELP highsdex_model_columns Number of columns of the last solved model
# TYPE highsdex_model_columns gauge
highsdex_model_columns{model="reference"} 2
# HELP highsdex_model_nonzeros Number of constraint matrix nonzeros of the last solved model
# TYPE highsdex_model_nonzeros gauge
highsdex_model_nonzeros{model="reference"} 5
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"highsdex_solver_solves_total", "highsdex_model_columns", "highsdex_model_nonzeros"))

	n, err := testutil.GatherAndCount(reg, "highsdex_solver_solve_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSolutionValuesAsParamDicts(t *testing.T) {
	m := model.New("grid")
	set, err := dex.NewIndexSetProduct([]dex.Dimension{dex.NamedDim("I", 0, 1), dex.NamedDim("J", 0, 1)})
	require.NoError(t, err)
	x, err := dex.AddVariablesND(m, set, dex.Spec(dex.Binary, dex.Named("x")))
	require.NoError(t, err)
	items, err := dex.NewIndexSet1D([]string{"a", "b"}, dex.WithName("ITEM"))
	require.NoError(t, err)
	y, err := dex.AddVariables1D(m, items, dex.Spec(dex.Continuous, dex.UpperBound(3), dex.Named("y")))
	require.NoError(t, err)

	row, err := x.SumPattern(0, dex.Any)
	require.NoError(t, err)
	_, err = m.AddLE(row, 1, "row0")
	require.NoError(t, err)
	all, err := x.Sum()
	require.NoError(t, err)
	require.NoError(t, m.Maximize(all.Add(y.Sum())))

	res, err := model.Solve(context.Background(), m, model.WithLogger(quietLogger()))
	require.NoError(t, err)
	require.True(t, res.HasSolution())
	assert.InDelta(t, 3+6, res.Objective, 1e-6)

	xs, err := model.ValuesND(res, x)
	require.NoError(t, err)
	assert.Equal(t, []string{"I", "J"}, xs.KeyNames())
	assert.InDelta(t, 1, xs.Lookup(0, 0)+xs.Lookup(0, 1), 1e-6)
	assert.InDelta(t, 1, xs.Lookup(1, 0), 1e-6)

	ys, err := model.Values1D(res, y)
	require.NoError(t, err)
	assert.Equal(t, "ITEM", ys.KeyName())
	assert.Equal(t, []string{"a", "b"}, ys.Keys())
	assert.InDelta(t, 6, ys.Sum(), 1e-6)
}

func TestEmptyModelSolves(t *testing.T) {
	m := model.New("empty")
	require.NoError(t, m.Minimize(m.Expr().AddConstant(2)))

	res, err := model.Solve(context.Background(), m, model.WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.True(t, res.HasSolution())
	assert.Equal(t, 2.0, res.Objective)
}
