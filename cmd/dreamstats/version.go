package main

import (
	"fmt"

	"github.com/colorfulnotion/dreamstats/common"
	"github.com/colorfulnotion/dreamstats/timing"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dreamstats %s (commit %s, stage timing %t)\n",
				common.Version, common.GetCommitHash(), timing.Enabled)
		},
	}
}
