// dreamstats turns DRAM refresh-mitigation simulator logs into result
// tables and paper figures.
package main

import (
	"fmt"
	"os"

	"github.com/colorfulnotion/dreamstats/config"
	"github.com/colorfulnotion/dreamstats/log"
	"github.com/colorfulnotion/dreamstats/statserrors"
	"github.com/spf13/cobra"
)

func main() {
	cfg := config.Defaults()
	if err := config.LoadEnv(&cfg); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	var rootCmd = &cobra.Command{
		Use:           "dreamstats",
		Short:         "Extract, aggregate and plot DRAM simulator statistics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := log.InitLogger(cfg.LogLevel, cfg.LogJSON); err != nil {
				return err
			}
			log.EnableModules(cfg.Debug)
			return nil
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (trace|debug|info|warn|error|crit)")
	rootCmd.PersistentFlags().BoolVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "Emit JSON log records")
	rootCmd.PersistentFlags().StringVar(&cfg.Debug, "debug", cfg.Debug, "Comma separated modules with debug logging (walk,extract,table,cache,plot,report,watch,all)")

	rootCmd.AddCommand(
		newTableCmd(&cfg),
		newWatchCmd(&cfg),
		newInventoryCmd(&cfg),
		newPlotCmd(),
		newCompareCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		if code := statserrors.GetErrorCodeWithName(statserrors.Root(err)); code != "" {
			fmt.Printf("[%s] %v\n", code, err)
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
