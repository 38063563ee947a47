package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartolsthoorn/highsdex/highs"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, 5, s.Seeds)
	assert.Equal(t, slog.LevelInfo, s.Level())
	assert.Len(t, s.SolveOptions(), 1)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "solve.toml", `
log_level = "debug"
time_limit = 30.0
mip_rel_gap = 0.01
threads = 2
presolve = "off"
random_seed = 7
seeds = 3

[options.bool]
mip_detect_symmetry = false

[options.float]
primal_feasibility_tolerance = 1e-8
`)
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, s.Level())
	assert.Equal(t, 30.0, s.TimeLimit)
	require.NotNil(t, s.MIPRelGap)
	assert.Equal(t, 0.01, *s.MIPRelGap)
	assert.Nil(t, s.MIPAbsGap)
	require.NotNil(t, s.RandomSeed)
	assert.Equal(t, 7, *s.RandomSeed)
	assert.Equal(t, 3, s.Seeds)
	assert.Equal(t, map[string]bool{"mip_detect_symmetry": false}, s.Options.Bool)
	assert.Len(t, s.SolveOptions(), 8)

	solver, err := highs.NewSolver()
	require.NoError(t, err)
	defer solver.Close()
	assert.NoError(t, highs.ApplyOptions(solver, s.SolveOptions()...))
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "solve.yml", `
output: true
mip_abs_gap: 0.5
options:
  string:
    solver: simplex
`)
	s, err := Load(path)
	require.NoError(t, err)
	assert.True(t, s.Output)
	require.NotNil(t, s.MIPAbsGap)
	assert.Equal(t, 0.5, *s.MIPAbsGap)
	assert.Equal(t, 5, s.Seeds, "defaults survive")
	assert.Equal(t, "simplex", s.Options.String["solver"])
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		invalid bool
	}{
		{name: "unknown extension", file: "solve.json", content: "{}"},
		{name: "bad toml", file: "solve.toml", content: "seeds = ["},
		{name: "bad yaml", file: "solve.yaml", content: "seeds: [1"},
		{name: "zero seeds", file: "solve.toml", content: "seeds = 0", invalid: true},
		{name: "gap above one", file: "solve.toml", content: "mip_rel_gap = 2.0", invalid: true},
		{name: "bad presolve", file: "solve.yaml", content: "presolve: maybe", invalid: true},
		{name: "bad level", file: "solve.yaml", content: "log_level: loud", invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			var verrs validator.ValidationErrors
			assert.Equal(t, tt.invalid, errors.As(err, &verrs))
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestUnknownRawOptionFailsOnApply(t *testing.T) {
	s := Default()
	s.Options.Int = map[string]int{"no_such_option": 1}
	require.NoError(t, s.Validate())

	solver, err := highs.NewSolver()
	require.NoError(t, err)
	defer solver.Close()
	assert.Error(t, highs.ApplyOptions(solver, s.SolveOptions()...))
}
