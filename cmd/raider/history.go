package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sandevgo/raider/internal/config"
	"github.com/sandevgo/raider/internal/core"
	"github.com/sandevgo/raider/internal/service/dialogue"
	"github.com/sandevgo/raider/internal/storage"
	"github.com/sandevgo/raider/pkg/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	historyFormat string
	historyLast   int
)

var historyCmd = &cobra.Command{
	Use:   "history [subject]",
	Short: "Print the stored dialogue of a subject",
	Long:  `Without a subject, lists the known subjects. With one, prints its turns oldest first as text, json or yaml.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupStderrLogger(ctx)
		defer flushLog()

		if err := initEnv(ctx, config.GetEnvPath()); err != nil {
			return err
		}
		cfg, err := config.ParseAppConfig()
		if err != nil {
			return err
		}

		store, err := storage.NewTurnStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.FromCtx(ctx).Warn().Err(err).Msg("failed to close store")
			}
		}()

		out := cmd.OutOrStdout()

		if len(args) == 0 {
			subjects, err := store.Subjects(ctx)
			if err != nil {
				return err
			}
			for _, s := range subjects {
				fmt.Fprintln(out, s)
			}
			return nil
		}

		subject, err := dialogue.ValidateSubject(args[0])
		if err != nil {
			return err
		}
		turns, err := store.Load(ctx, subject)
		if err != nil {
			return err
		}
		if historyLast > 0 && len(turns) > historyLast {
			turns = turns[len(turns)-historyLast:]
		}
		return writeTurns(out, historyFormat, turns)
	},
}

func writeTurns(w io.Writer, format string, turns []core.Turn) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(turns)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(turns); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		for _, t := range turns {
			fmt.Fprintf(w, "#%d %s\nUser: %s\nBot: %s\n\n", t.Seq, t.CreatedAt.Format("2006-01-02 15:04"), t.UserText, t.BotText)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (text, json, yaml)", format)
	}
}

func init() {
	historyCmd.Flags().StringVarP(&historyFormat, "format", "f", "text", "output format: text, json or yaml")
	historyCmd.Flags().IntVarP(&historyLast, "last", "n", 0, "only the last n turns")
	rootCmd.AddCommand(historyCmd)
}
