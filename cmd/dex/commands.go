package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bartolsthoorn/highsdex/highs"
	"github.com/bartolsthoorn/highsdex/model"
)

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats FILE",
		Short: "Print the dimensions of a model file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := fileRunner{path: args[0]}
			s, err := r.open(highs.WithOutput(false))
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-21s: %s\n", "Problem name", r.Name())
			fmt.Fprintf(out, "%-21s: %7d\n", "Variables", s.NumCol())
			fmt.Fprintf(out, "%-21s: %7d\n", "Linear constraints", s.NumRow())
			fmt.Fprintf(out, "%-21s: %7d\n", "  Nonzeros", s.NumNonzero())
			return nil
		},
	}
}

func (a *app) solveCmd() *cobra.Command {
	var logPath string
	var values bool
	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Solve a model file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := fileRunner{path: args[0]}
			opts := a.settings.SolveOptions()
			if logPath != "" {
				opts = append(opts,
					highs.WithOutput(true),
					highs.WithBoolOption("log_to_console", false),
					highs.WithLogFile(logPath))
			}

			runID := uuid.NewString()
			logger := a.logger.With(slog.String("model", r.Name()), slog.String("run_id", runID))
			logger.InfoContext(cmd.Context(), "solve started")

			s, err := r.open(opts...)
			if err != nil {
				return err
			}
			defer s.Close()
			start := time.Now()
			sol, err := s.Run()
			if err != nil {
				logger.ErrorContext(cmd.Context(), "solve failed", slog.String("error", err.Error()))
				return err
			}
			elapsed := time.Since(start)
			logger.InfoContext(cmd.Context(), "solve finished",
				slog.String("status", sol.Status.String()),
				slog.Float64("objective", sol.Objective),
				slog.Duration("duration", elapsed))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-21s: %s\n", "Status", sol.Status)
			if sol.HasSolution() {
				fmt.Fprintf(out, "%-21s: %.10g\n", "Objective", sol.Objective)
			}
			fmt.Fprintf(out, "%-21s: %d\n", "Simplex iterations", sol.SimplexIterations)
			fmt.Fprintf(out, "%-21s: %.3f s\n", "Time", elapsed.Seconds())
			if values && sol.HasSolution() {
				for i, x := range sol.ColValues {
					if x != 0 {
						fmt.Fprintf(out, "  x%-6d %.10g\n", i, x)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&logPath, "log", "", "write the HiGHS log to this file")
	cmd.Flags().BoolVar(&values, "values", false, "print nonzero column values")
	return cmd
}

func (a *app) runSeedsCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "runseeds FILE",
		Short: "Solve a model file repeatedly with different random seeds",
		Long: `runseeds solves FILE once per random seed 0..count-1 and reports the
status, objective and time of every run, to judge performance variability.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("count") {
				count = a.settings.Seeds
			}
			_, err := model.RunSeeds(cmd.Context(), fileRunner{path: args[0]}, count,
				model.WithLogOutput(cmd.OutOrStdout()),
				model.WithLogger(a.logger),
				model.WithSolverOptions(a.settings.SolveOptions()...))
			return err
		},
	}
	cmd.Flags().IntVar(&count, "count", 5, "number of runs (default from settings)")
	return cmd
}
