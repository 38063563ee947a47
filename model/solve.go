package model

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bartolsthoorn/highsdex/dex"
	"github.com/bartolsthoorn/highsdex/highs"
)

var tracer = otel.Tracer("highsdex.model")

const dividerWidth = 85

// Option configures Solve and RunSeeds.
type Option func(*solveConfig)

type solveConfig struct {
	logger  *slog.Logger
	out     io.Writer
	metrics *Metrics
	solver  []highs.SolveOption
}

func newSolveConfig(opts []Option) *solveConfig {
	cfg := &solveConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLogger sets the structured logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *solveConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithLogOutput writes a human-readable solve log to w: problem statistics,
// the HiGHS log and solution quality statistics.
func WithLogOutput(w io.Writer) Option {
	return func(c *solveConfig) { c.out = w }
}

// WithMetrics records solves in mt.
func WithMetrics(mt *Metrics) Option {
	return func(c *solveConfig) { c.metrics = mt }
}

// WithSolverOptions passes options through to the HiGHS solver.
func WithSolverOptions(opts ...highs.SolveOption) Option {
	return func(c *solveConfig) { c.solver = append(c.solver, opts...) }
}

// SolveResult is the outcome of one Solve call.
type SolveResult struct {
	RunID     string
	Status    highs.ModelStatus
	Objective float64
	Solution  *highs.Solution
	Duration  time.Duration

	model *Model
}

// HasSolution reports whether primal values are available.
func (r *SolveResult) HasSolution() bool {
	return r.Solution != nil && r.Solution.HasSolution() && len(r.Solution.ColValues) >= len(r.model.vars)
}

// Values returns a copy of the column values in variable creation order, nil
// without a solution.
func (r *SolveResult) Values() []float64 {
	if !r.HasSolution() {
		return nil
	}
	return append([]float64(nil), r.Solution.ColValues[:len(r.model.vars)]...)
}

// Value returns the solution value of v.
func (r *SolveResult) Value(v *Var) (float64, error) {
	if !r.model.IsVar(v) {
		return 0, ErrForeignVar
	}
	if !r.HasSolution() {
		return 0, ErrNoSolution
	}
	return r.Solution.ColValues[v.index], nil
}

// ValueOf evaluates e at the solution.
func (r *SolveResult) ValueOf(e *LinExpr) (float64, error) {
	if err := r.model.check(e); err != nil {
		return 0, err
	}
	if !r.HasSolution() {
		return 0, ErrNoSolution
	}
	if e == nil {
		return 0, nil
	}
	return e.Eval(r.Solution.ColValues), nil
}

// Values1D collects the solution values of a one-dimensional variable
// dictionary into a parameter dictionary with the same keys and names.
func Values1D[K comparable](r *SolveResult, d *dex.VarDict1D[K, *Var, *LinExpr]) (*dex.ParamDict1D[K, float64], error) {
	keys := d.Keys()
	vals := make([]float64, 0, len(keys))
	for _, v := range d.Values() {
		x, err := r.Value(v)
		if err != nil {
			return nil, err
		}
		vals = append(vals, x)
	}
	return dex.ParamDict1DFromPairs(keys, vals, dex.WithName(d.KeyName()), dex.WithValueName(d.ValueName()))
}

// ValuesND is Values1D for N-dimensional dictionaries.
func ValuesND(r *SolveResult, d *dex.VarDictND[*Var, *LinExpr]) (*dex.ParamDictND[float64], error) {
	entries := make([]dex.Entry[float64], 0, d.Len())
	for key, v := range d.All() {
		x, err := r.Value(v)
		if err != nil {
			return nil, err
		}
		entries = append(entries, dex.Entry[float64]{Key: key, Value: x})
	}
	return dex.NewParamDictND(entries, dex.WithNames(d.KeyNames()...), dex.WithValueName(d.ValueName()))
}

// Solve solves m. With WithLogOutput the run is logged as a framed text
// report; the HiGHS log is captured through a temporary file and never goes to
// the console.
func Solve(ctx context.Context, m *Model, opts ...Option) (*SolveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := newSolveConfig(opts)
	runID := uuid.NewString()
	stats := m.Stats()

	ctx, span := tracer.Start(ctx, "model.Solve",
		trace.WithAttributes(
			attribute.String("model", m.name),
			attribute.String("run_id", runID),
			attribute.String("problem_type", stats.ProblemType()),
			attribute.Int("columns", stats.Vars),
			attribute.Int("rows", stats.Constraints),
			attribute.Int("nonzeros", stats.Nonzeros),
		))
	defer span.End()

	logger := cfg.logger.With(slog.String("model", m.name), slog.String("run_id", runID))
	logger.InfoContext(ctx, "solve started",
		slog.String("problem_type", stats.ProblemType()),
		slog.Int("columns", stats.Vars),
		slog.Int("rows", stats.Constraints),
		slog.Int("nonzeros", stats.Nonzeros))
	cfg.metrics.observeModel(m.name, stats)

	// Quiet unless a log writer is set; later options may turn output back on.
	solverOpts := append([]highs.SolveOption{highs.WithOutput(false)}, cfg.solver...)
	var logPath string
	if cfg.out != nil {
		if err := writeHeader(cfg.out, stats); err != nil {
			return nil, fail(span, fmt.Errorf("model: write log: %w", err))
		}
		f, err := os.CreateTemp("", "highsdex-*.log")
		if err != nil {
			return nil, fail(span, fmt.Errorf("model: create log file: %w", err))
		}
		logPath = f.Name()
		f.Close()
		defer os.Remove(logPath)
		solverOpts = append(solverOpts,
			highs.WithOutput(true),
			highs.WithBoolOption("log_to_console", false),
			highs.WithLogFile(logPath))
	}

	start := time.Now()
	sol, err := m.Build().Solve(solverOpts...)
	elapsed := time.Since(start)
	if err != nil {
		cfg.metrics.observeSolve(m.name, "error", elapsed)
		logger.ErrorContext(ctx, "solve failed", slog.String("error", err.Error()), slog.Duration("duration", elapsed))
		return nil, fail(span, fmt.Errorf("model: solve %s: %w", m.name, err))
	}

	res := &SolveResult{
		RunID:     runID,
		Status:    sol.Status,
		Objective: sol.Objective,
		Solution:  sol,
		Duration:  elapsed,
		model:     m,
	}
	cfg.metrics.observeSolve(m.name, sol.Status.String(), elapsed)
	span.SetAttributes(
		attribute.String("status", sol.Status.String()),
		attribute.Float64("objective", sol.Objective))
	logger.InfoContext(ctx, "solve finished",
		slog.String("status", sol.Status.String()),
		slog.Float64("objective", sol.Objective),
		slog.Duration("duration", elapsed))

	if cfg.out != nil {
		if err := writeFooter(cfg.out, logPath, SolutionQuality(m, sol)); err != nil {
			return nil, fail(span, fmt.Errorf("model: write log: %w", err))
		}
	}
	return res, nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func writeHeader(w io.Writer, stats ProblemStats) error {
	var b strings.Builder
	b.WriteString(divider(fmt.Sprintf("  %s problem statistics  ", stats.ProblemType())))
	b.WriteString("\n\n")
	if err := stats.Format(&b); err != nil {
		return err
	}
	b.WriteString("\n")
	b.WriteString(divider("  HiGHS optimizer log  "))
	b.WriteString("\n\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeFooter(w io.Writer, logPath string, q Quality) error {
	f, err := os.Open(logPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(divider("  Solution quality statistics  "))
	b.WriteString("\n\n")
	if err := q.Format(&b); err != nil {
		return err
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", dividerWidth))
	b.WriteString("\n")
	_, err = io.WriteString(w, b.String())
	return err
}

// divider centres title in a line of dashes dividerWidth wide.
func divider(title string) string {
	pad := dividerWidth - len(title)
	if pad <= 0 {
		return title
	}
	left := pad / 2
	return strings.Repeat("-", left) + title + strings.Repeat("-", pad-left)
}
