package main

import (
	"github.com/joho/godotenv"
	"github.com/sandevgo/raider/internal/config"
	"github.com/sandevgo/raider/internal/service/installer"
	"github.com/sandevgo/raider/pkg/log"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:           "init",
	Short:         "Create the Raider configuration interactively",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Setup logger
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		envPath := config.GetEnvPath()

		// run wizard (includes save step)
		if _, err := installer.RunWizard(envPath); err != nil {
			return err
		}

		// Check the written file parses the way serve will read it
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
			return err
		}
		if _, err := config.ParseAppConfig(); err != nil {
			return err
		}
		if _, err := config.ParseProviderConfig(); err != nil {
			return err
		}

		logger.Info().Msgf("configuration written to: %s", envPath)
		logger.Info().Msg("Setup complete! Run 'raider chat' or 'raider serve'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
