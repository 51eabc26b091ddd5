package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/raider/internal/config"
	"github.com/sandevgo/raider/internal/transport/httpapi"
	"github.com/sandevgo/raider/internal/transport/telegram"
	"github.com/sandevgo/raider/pkg/log"
	"github.com/sandevgo/raider/pkg/srv"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API and the Telegram bot",
	Long:  `Starts every enabled transport (HTTP API with /metrics, Telegram) on top of the configured store and AI backend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting raider")

		a := newApp(ctx, "")
		group := srv.NewGroup(a.cleanup())

		if a.cfg.IsHTTPEnabled() {
			group.Add(httpapi.New(a.httpCfg, a.dialogue, a.store, a.metrics))
		}

		// Telegram Bot
		if a.cfg.IsTelegramSelected() {
			bot, err := telegram.NewBot(ctx, config.NewTelegramConfig(ctx), a.chat)
			if err != nil {
				logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
			}
			group.Add(bot)
		}

		if !a.cfg.IsHTTPEnabled() && !a.cfg.IsTelegramSelected() {
			logger.Warn().Msg("no transport enabled, use 'raider chat' for the terminal")
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		group.Start(ctx, cancel)
		group.Wait(ctx)

		logger.Info().Msg("raider has been shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
