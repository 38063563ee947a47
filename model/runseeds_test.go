package model_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartolsthoorn/highsdex/dex"
	"github.com/bartolsthoorn/highsdex/highs"
	"github.com/bartolsthoorn/highsdex/model"
)

// scriptedRunner returns canned results per seed.
type scriptedRunner struct {
	seeds []int
	fail  map[int]error
}

func (r *scriptedRunner) Name() string { return "scripted" }

func (r *scriptedRunner) RunWithSeed(_ context.Context, seed int, _ ...highs.SolveOption) (*highs.Solution, error) {
	r.seeds = append(r.seeds, seed)
	if err := r.fail[seed]; err != nil {
		return nil, err
	}
	return &highs.Solution{Status: highs.ModelStatusOptimal, Objective: float64(seed)}, nil
}

func TestRunSeedsValidation(t *testing.T) {
	r := &scriptedRunner{}
	var out bytes.Buffer

	_, err := model.RunSeeds(context.Background(), r, 0, model.WithLogOutput(&out))
	assert.ErrorIs(t, err, model.ErrInvalidCount)

	_, err = model.RunSeeds(context.Background(), r, 3)
	assert.ErrorIs(t, err, model.ErrNoLogOutput)

	assert.Empty(t, r.seeds)
	assert.Zero(t, out.Len())
}

func TestRunSeedsReport(t *testing.T) {
	r := &scriptedRunner{fail: map[int]error{2: errors.New("solver crashed")}}
	var out bytes.Buffer

	report, err := model.RunSeeds(context.Background(), r, 4,
		model.WithLogOutput(&out), model.WithLogger(quietLogger()))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 3}, r.seeds)
	require.Len(t, report.Runs, 4)
	assert.Equal(t, "scripted", report.Model)
	assert.Equal(t, map[string]int{"OK": 3, "solver crashed": 1}, report.ExitCodes())
	assert.Equal(t, map[string]int{"Optimal": 3}, report.StatusCodes())
	assert.Equal(t, 3.0, report.Runs[3].Objective)

	text := out.String()
	assert.Contains(t, text, "  Runs with 4 random seeds  ")
	assert.Contains(t, text, "Exit codes:\n  OK:")
	assert.Contains(t, text, "Optimization status codes:\n  Optimal:")
	assert.Contains(t, text, "Mean time:")
}

func TestSeedReportTimes(t *testing.T) {
	report := &model.SeedReport{Runs: []model.SeedRun{
		{Duration: 1 * time.Second},
		{Duration: 3 * time.Second},
	}}
	assert.Equal(t, 2*time.Second, report.MeanTime())
	assert.Equal(t, 1*time.Second, report.StdDevTime())

	assert.Zero(t, (&model.SeedReport{}).MeanTime())
	assert.Zero(t, (&model.SeedReport{Runs: report.Runs[:1]}).StdDevTime())
}

func TestRunSeedsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer

	_, err := model.RunSeeds(ctx, &scriptedRunner{}, 2, model.WithLogOutput(&out), model.WithLogger(quietLogger()))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunSeedsModel(t *testing.T) {
	m, _, _ := referenceModel(t, dex.Integer)
	var out bytes.Buffer

	report, err := model.RunSeeds(context.Background(), m, 3,
		model.WithLogOutput(&out),
		model.WithLogger(quietLogger()),
		model.WithSolverOptions(highs.WithOutput(false)))
	require.NoError(t, err)
	for _, run := range report.Runs {
		require.NoError(t, run.Err)
		assert.Equal(t, highs.ModelStatusOptimal, run.Status)
		assert.InDelta(t, 6.0, run.Objective, 1e-6)
	}
}
