package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/sandevgo/raider/internal/transport/cli"
	"github.com/sandevgo/raider/pkg/log"
	"github.com/sandevgo/raider/pkg/srv"
	"github.com/spf13/cobra"
)

var chatSubject string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to Raider in the terminal",
	Long:  `Opens an interactive session. Pick a subject with /subject <name> or --subject, then ask questions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// readline handles ctrl+c itself
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupStderrLogger(ctx)
		defer flushLog()

		a := newApp(ctx, chatSubject)

		repl, err := cli.NewReadLine(a.chat, a.cfg.GetRuntimePath())
		if err != nil {
			return fmt.Errorf("start terminal: %w", err)
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		group := srv.NewGroup(a.cleanup())
		group.Start(ctx, cancel)

		err = repl.Start(ctx)
		interrupted := ctx.Err() != nil
		if shutdownErr := repl.Shutdown(ctx); shutdownErr != nil {
			log.FromCtx(ctx).Warn().Err(shutdownErr).Msg("failed to close terminal")
		}
		cancel()
		group.Wait(ctx)

		if err != nil && !interrupted {
			return err
		}
		return nil
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatSubject, "subject", "s", "", "subject to start with")
	rootCmd.AddCommand(chatCmd)
}
