package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/bartolsthoorn/highsdex/highs"
	"github.com/bartolsthoorn/highsdex/model"
)

// fileRunner solves a model file, reading it afresh for every run.
type fileRunner struct {
	path string
}

var _ model.Runner = fileRunner{}

func (r fileRunner) Name() string {
	return filepath.Base(r.path)
}

// open returns a solver holding the model with opts applied. The caller
// closes it.
func (r fileRunner) open(opts ...highs.SolveOption) (*highs.Solver, error) {
	s, err := highs.NewSolver()
	if err != nil {
		return nil, err
	}
	if err := highs.ApplyOptions(s, opts...); err != nil {
		s.Close()
		return nil, err
	}
	if err := s.ReadModel(r.path); err != nil {
		s.Close()
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	return s, nil
}

func (r fileRunner) RunWithSeed(ctx context.Context, seed int, opts ...highs.SolveOption) (*highs.Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts = append(append([]highs.SolveOption(nil), opts...), highs.WithRandomSeed(seed))
	s, err := r.open(opts...)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Run()
}
