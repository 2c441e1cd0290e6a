package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/colorfulnotion/dreamstats/config"
	"github.com/colorfulnotion/dreamstats/log"
	"github.com/colorfulnotion/dreamstats/pipeline"
	"github.com/spf13/cobra"
)

func newWatchCmd(cfg *config.Config) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch <dir>...",
		Short: "Rebuild the result table whenever the logs change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Dirs = args
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger := log.Root().With("dirs", strings.Join(args, ","))
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return pipeline.Watch(ctx, cfg, debounce, func(res *pipeline.Result, err error) {
				if err != nil {
					logger.Error(log.WatchModule, "run failed", "err", err)
					return
				}
				if err := res.Write(cfg, cmd.OutOrStdout()); err != nil {
					logger.Error(log.WatchModule, "write failed", "err", err)
				}
			})
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", pipeline.DefaultDebounce, "Quiet period before re-running")
	addTableFlags(cmd, cfg)
	addExtractFlags(cmd, cfg)
	return cmd
}
