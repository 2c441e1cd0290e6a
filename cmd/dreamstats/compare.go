package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/colorfulnotion/dreamstats/common"
	"github.com/colorfulnotion/dreamstats/report"
	"github.com/colorfulnotion/dreamstats/table"
	"github.com/spf13/cobra"
)

var errTablesDiffer = errors.New("tables differ")

func newCompareCmd() *cobra.Command {
	var (
		tolerance float64
		color     bool
	)
	cmd := &cobra.Command{
		Use:   "compare <old.csv> <new.csv>",
		Short: "Diff two result tables",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := readTable(args[0])
			if err != nil {
				return err
			}
			right, err := readTable(args[1])
			if err != nil {
				return err
			}
			cmp, err := report.Compare(left, right, tolerance, color)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cmp.Differs() {
				fmt.Fprintln(out, "tables match")
				return nil
			}
			fmt.Fprintln(out, cmp.Text)
			for _, r := range cmp.AddedRows {
				fmt.Fprintln(out, common.Colorize(color, common.ColorGreen, "+ "+r))
			}
			for _, r := range cmp.RemovedRows {
				fmt.Fprintln(out, common.Colorize(color, common.ColorRed, "- "+r))
			}
			for _, c := range cmp.Changes {
				fmt.Fprintln(out, common.Colorize(color, common.ColorYellow, "~ "+c.String()))
			}
			return errTablesDiffer
		},
	}
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "Ignore cell differences up to this amount")
	cmd.Flags().BoolVar(&color, "color", false, "Color the structural diff")
	return cmd
}

func readTable(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := table.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
