package main

import (
	"context"
	"os"

	"github.com/sandevgo/raider/internal/config"
	"github.com/sandevgo/raider/internal/core"
	"github.com/sandevgo/raider/internal/service/ui"
	"github.com/sandevgo/raider/pkg/log"
	"github.com/spf13/cobra"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:     "raider",
	Short:   "Raider: a subject-scoped AI assistant",
	Long:    `Raider answers questions about a subject you choose and remembers the conversation per subject.`,
	Version: core.AppVersion,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	isDebug := debug || config.IsDebug()
	return log.NewContextWithLogger(ctx, isDebug)
}

// setupStderrLogger keeps stdout free for the interactive commands.
func setupStderrLogger(ctx context.Context) (context.Context, func()) {
	return log.NewContextWithOptions(ctx, log.Options{
		Debug: debug || config.IsDebug(),
		JSON:  os.Getenv("LOG_FORMAT") == "json",
		Out:   os.Stderr,
	})
}

func CustomizeHelp(rootCmd *cobra.Command) {
	cobra.AddTemplateFunc("StyleTitle", func(s string) string { return ui.TitleStyle.Render(s) })
	cobra.AddTemplateFunc("StyleUsage", func(s string) string { return ui.UsageStyle.Render(s) })
	cobra.AddTemplateFunc("StyleFlag", func(s string) string { return ui.FlagStyle.Render(s) })
	cobra.AddTemplateFunc("StyleDesc", func(s string) string { return ui.DescStyle.Render(s) })

	template := `
{{StyleTitle "USAGE"}}
  {{StyleUsage .UseLine}}
{{if gt (len .Commands) 0}}{{StyleTitle "AVAILABLE COMMANDS"}}
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding}} {{StyleDesc .Short}}{{end}}
{{end}}{{end}}
{{if .HasAvailableLocalFlags}}{{StyleTitle "FLAGS"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces | StyleFlag}}
{{end}}
`
	rootCmd.SetHelpTemplate(template)
}
