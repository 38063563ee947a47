package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bartolsthoorn/highsdex/internal/config"
)

// app carries what the subcommands share once flags are parsed.
type app struct {
	cfgFile  string
	verbose  bool
	settings *config.Settings
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "dex",
		Short: "Inspect and solve optimization models with HiGHS",
		Long: `dex reads LP and MPS model files and solves them with HiGHS.

Solver settings come from a TOML or YAML file given with --config.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "settings file (.toml, .yaml or .yml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(a.statsCmd(), a.solveCmd(), a.runSeedsCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.settings = config.Default()
	if a.cfgFile != "" {
		s, err := config.Load(a.cfgFile)
		if err != nil {
			return err
		}
		a.settings = s
	}
	level := a.settings.Level()
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}
