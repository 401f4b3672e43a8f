package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"legally/internal/app"
	"legally/internal/logger"
)

func newAskCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Answer one legal question and print the formatted advice",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			log := logger.Discard()
			if verbose {
				log = logger.NewWriter(os.Stderr, cfg.LogLevel)
			}
			deps, err := app.BuildWith(cfg, log)
			if err != nil {
				return fmt.Errorf("build dependencies: %w", err)
			}
			defer func() { _ = deps.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			res := deps.Processor.Answer(ctx, strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), res.Text)
			if res.Failed {
				return fmt.Errorf("no advice could be produced")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline events to stderr")
	return cmd
}
