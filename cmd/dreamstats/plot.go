package main

import (
	"fmt"
	"os"

	"github.com/colorfulnotion/dreamstats/plot"
	"github.com/spf13/cobra"
)

func newPlotCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "plot <figures.yaml> [figure]...",
		Short: "Render the figures described in a figure file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			figs, err := plot.LoadFigures(args[0])
			if err != nil {
				return err
			}
			if figs, err = plot.Select(figs, args[1:]); err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			for _, f := range figs {
				t, err := plot.LoadTable(f)
				if err != nil {
					return err
				}
				written, err := plot.Render(f, t, outDir)
				if err != nil {
					return err
				}
				for _, p := range written {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "outdir", ".", "Directory for rendered figures")
	return cmd
}
