package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/sandevgo/raider/internal/config"
	"github.com/sandevgo/raider/internal/providers/llm"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models offered by the configured AI backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupStderrLogger(ctx)
		defer flushLog()

		if err := initEnv(ctx, config.GetEnvPath()); err != nil {
			return err
		}
		cfg, err := config.ParseProviderConfig()
		if err != nil {
			return err
		}

		provider, err := llm.NewProvider(ctx, cfg)
		if err != nil {
			return err
		}
		models, err := provider.Models(ctx)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tCONTEXT")
		for _, m := range models {
			current := ""
			if m.ID == cfg.GetModel() {
				current = " *"
			}
			fmt.Fprintf(tw, "%s%s\t%s\t%d\n", m.ID, current, m.Name, m.ContextLength)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
