package main

import (
	"fmt"

	"github.com/colorfulnotion/dreamstats/config"
	"github.com/colorfulnotion/dreamstats/pipeline"
	"github.com/colorfulnotion/dreamstats/report"
	"github.com/colorfulnotion/dreamstats/timing"
	"github.com/spf13/cobra"
)

func newInventoryCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory <dir>...",
		Short: "List the suites, workloads and configurations found in the logs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Dirs = args
			records, sum, err := pipeline.Collect(cfg, timing.New())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.Inventory(records, sum.Skipped, cfg.SuiteOrder))
			return nil
		},
	}
	addExtractFlags(cmd, cfg)
	return cmd
}
