package model

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/bartolsthoorn/highsdex/highs"
)

// Runner is something that can be solved repeatedly with different random
// seeds. *Model implements it.
type Runner interface {
	Name() string
	RunWithSeed(ctx context.Context, seed int, opts ...highs.SolveOption) (*highs.Solution, error)
}

var _ Runner = (*Model)(nil)

// SeedRun is the outcome of one seeded run.
type SeedRun struct {
	Seed      int
	Status    highs.ModelStatus
	Objective float64
	Duration  time.Duration
	Err       error
}

// ExitCode is "OK" for a run that returned, else the error text.
func (r SeedRun) ExitCode() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return "OK"
}

// SeedReport summarizes RunSeeds.
type SeedReport struct {
	RunID string
	Model string
	Runs  []SeedRun
}

// MeanTime returns the mean run duration.
func (r *SeedReport) MeanTime() time.Duration {
	if len(r.Runs) == 0 {
		return 0
	}
	var total time.Duration
	for _, run := range r.Runs {
		total += run.Duration
	}
	return total / time.Duration(len(r.Runs))
}

// StdDevTime returns the population standard deviation of run durations.
func (r *SeedReport) StdDevTime() time.Duration {
	if len(r.Runs) < 2 {
		return 0
	}
	mean := float64(r.MeanTime())
	var ss float64
	for _, run := range r.Runs {
		d := float64(run.Duration) - mean
		ss += d * d
	}
	return time.Duration(math.Sqrt(ss / float64(len(r.Runs))))
}

// ExitCodes counts runs by exit code.
func (r *SeedReport) ExitCodes() map[string]int {
	out := make(map[string]int)
	for _, run := range r.Runs {
		out[run.ExitCode()]++
	}
	return out
}

// StatusCodes counts runs that returned by model status.
func (r *SeedReport) StatusCodes() map[string]int {
	out := make(map[string]int)
	for _, run := range r.Runs {
		if run.Err == nil {
			out[run.Status.String()]++
		}
	}
	return out
}

// Format writes the per-run table and the summary blocks.
func (r *SeedReport) Format(w io.Writer) error {
	var b strings.Builder
	b.WriteString(divider(fmt.Sprintf("  Runs with %d random seeds  ", len(r.Runs))))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%-6s %-24s %16s %12s\n", "Seed", "Status", "Objective", "Time (s)")
	for _, run := range r.Runs {
		status := run.Status.String()
		if run.Err != nil {
			status = "error"
		}
		fmt.Fprintf(&b, "%-6d %-24s %16.6g %12.3f\n", run.Seed, status, run.Objective, run.Duration.Seconds())
	}
	b.WriteString("\nExit codes:\n")
	writeCounts(&b, r.ExitCodes())
	b.WriteString("\nOptimization status codes:\n")
	writeCounts(&b, r.StatusCodes())
	fmt.Fprintf(&b, "\nMean time: %.3f s, standard deviation: %.3f s\n",
		r.MeanTime().Seconds(), r.StdDevTime().Seconds())
	b.WriteString(strings.Repeat("-", dividerWidth))
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeCounts(b *strings.Builder, counts map[string]int) {
	if len(counts) == 0 {
		b.WriteString("  none\n")
		return
	}
	for _, k := range slices.Sorted(maps.Keys(counts)) {
		fmt.Fprintf(b, "  %-24s %d\n", k+":", counts[k])
	}
}

// RunSeeds solves r count times with random seeds 0 to count-1 and writes the
// report to the log output, which is required. Solver errors are recorded per
// run; only a cancelled context stops the loop.
func RunSeeds(ctx context.Context, r Runner, count int, opts ...Option) (*SeedReport, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidCount, count)
	}
	cfg := newSolveConfig(opts)
	if cfg.out == nil {
		return nil, ErrNoLogOutput
	}

	report := &SeedReport{RunID: uuid.NewString(), Model: r.Name()}
	ctx, span := tracer.Start(ctx, "model.RunSeeds",
		trace.WithAttributes(
			attribute.String("model", report.Model),
			attribute.String("run_id", report.RunID),
			attribute.Int("count", count),
		))
	defer span.End()

	logger := cfg.logger.With(slog.String("model", report.Model), slog.String("run_id", report.RunID))
	logger.InfoContext(ctx, "runseeds started", slog.Int("count", count))

	for seed := range count {
		if err := ctx.Err(); err != nil {
			return nil, fail(span, err)
		}
		start := time.Now()
		sol, err := r.RunWithSeed(ctx, seed, cfg.solver...)
		run := SeedRun{Seed: seed, Duration: time.Since(start), Err: err}
		status := "error"
		if err == nil {
			run.Status = sol.Status
			run.Objective = sol.Objective
			status = sol.Status.String()
		}
		cfg.metrics.observeSolve(report.Model, status, run.Duration)
		logger.DebugContext(ctx, "seed finished",
			slog.Int("seed", seed),
			slog.String("status", status),
			slog.Float64("objective", run.Objective),
			slog.Duration("duration", run.Duration))
		report.Runs = append(report.Runs, run)
	}

	logger.InfoContext(ctx, "runseeds finished",
		slog.Duration("mean", report.MeanTime()),
		slog.Duration("stddev", report.StdDevTime()))
	if err := report.Format(cfg.out); err != nil {
		return nil, fail(span, fmt.Errorf("model: write log: %w", err))
	}
	return report, nil
}
