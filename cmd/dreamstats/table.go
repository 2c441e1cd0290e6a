package main

import (
	"github.com/colorfulnotion/dreamstats/config"
	"github.com/colorfulnotion/dreamstats/pipeline"
	"github.com/spf13/cobra"
)

// addExtractFlags binds the quality filter and extraction switches.
func addExtractFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	f.BoolVar(&cfg.Extract.FilterLowMPKI, "filter_low_mpki", cfg.Extract.FilterLowMPKI, "Drop workloads whose average MPKI is below the threshold")
	f.Float64Var(&cfg.Extract.MPKIThreshold, "mpki-threshold", cfg.Extract.MPKIThreshold, "MPKI threshold for --filter_low_mpki")
	f.BoolVar(&cfg.Extract.FilterLowAPKI, "filter_low_apki", cfg.Extract.FilterLowAPKI, "Drop workloads whose APKI is below the threshold, and excluded paths")
	f.Float64Var(&cfg.Extract.APKIThreshold, "apki-threshold", cfg.Extract.APKIThreshold, "APKI threshold for --filter_low_apki")
	f.StringSliceVar(&cfg.Extract.Exclude, "exclude", cfg.Extract.Exclude, "Path substrings dropped by --filter_low_apki")
	f.BoolVar(&cfg.Extract.RowActivations, "row-activations", cfg.Extract.RowActivations, "Emit the activations-per-row distribution")
	f.StringVar(&cfg.Cache, "cache", cfg.Cache, "LevelDB directory caching extraction results")
	f.StringSliceVar(&cfg.SuiteOrder, "suite-order", cfg.SuiteOrder, "Suite order of the output rows")
}

// addTableFlags binds the table shaping options.
func addTableFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	f.StringVar(&cfg.Pivot, "pivot", cfg.Pivot, "Metric to tabulate per configuration")
	f.StringVar(&cfg.Type, "type", cfg.Type, "Tabulate every metric of one configuration instead of pivoting")
	f.BoolVar(&cfg.Mean, "mean", cfg.Mean, "Add a MEAN row")
	f.BoolVar(&cfg.Geomean, "gmean", cfg.Geomean, "Add a GEOMEAN row")
	f.BoolVar(&cfg.GeomeanSuite, "gmean_suite", cfg.GeomeanSuite, "Add a geomean row after each suite")
	f.BoolVar(&cfg.DropNA, "dropna", cfg.DropNA, "Drop rows with missing values")
	f.StringSliceVar(&cfg.IgnoreCols, "ignorecols", cfg.IgnoreCols, "Columns to drop")
	f.StringSliceVar(&cfg.Cols, "cols", cfg.Cols, "Columns to keep, in order")
	f.BoolVar(&cfg.NoSlowdown, "noslowdown", cfg.NoSlowdown, "Keep raw values instead of normalizing to the baseline")
	f.StringVar(&cfg.Baseline, "baseline", cfg.Baseline, "Baseline column for normalization (best = row maximum)")
	f.StringVar(&cfg.Suite, "suite", cfg.Suite, "Keep only rows of this suite")
	f.StringVarP(&cfg.Out, "out", "o", cfg.Out, "Output CSV path (default: print a table)")
	f.StringVar(&cfg.Meta, "meta", cfg.Meta, "Write a JSON metadata sidecar to this path")
}

func newTableCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table <dir>...",
		Short: "Build a result table from simulator logs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Dirs = args
			res, err := pipeline.Run(cfg)
			if err != nil {
				return err
			}
			return res.Write(cfg, cmd.OutOrStdout())
		},
	}
	addTableFlags(cmd, cfg)
	addExtractFlags(cmd, cfg)
	return cmd
}
