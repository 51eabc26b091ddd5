package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/chzyer/readline"
	"github.com/sandevgo/raider/internal/service/chat"
	"github.com/sandevgo/raider/pkg/log"
)

const defaultSessionID = "cli-local"

type ReadLine struct {
	chat     *chat.Chat
	rl       *readline.Instance
	renderer *glamour.TermRenderer
}

func NewReadLine(chat *chat.Chat, runtimePath string) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(runtimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(runtimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		chat:     chat,
		rl:       rl,
		renderer: newRenderer(),
	}, nil
}

func newRenderer() *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil
	}
	return r
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("ReadLine chat started. Type 'exit' to quit.")
	r.print(r.rl.Stdout(), "Choose a subject with `/subject <name>`, then ask away. `/help` lists commands.")

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if r.process(ctx, line, r.rl.Stdout()) {
			return nil
		}
	}
}

// process handles one input line and reports whether the session should end.
func (r *ReadLine) process(ctx context.Context, line string, out io.Writer) bool {
	trimmed := strings.TrimSpace(line)
	switch trimmed {
	case "exit", "quit":
		return true
	case "":
		return false
	}

	r.print(out, r.chat.Handle(ctx, defaultSessionID, line))
	return false
}

func (r *ReadLine) print(out io.Writer, md string) {
	if r.renderer != nil {
		if rendered, err := r.renderer.Render(md); err == nil {
			fmt.Fprint(out, rendered)
			return
		}
	}
	fmt.Fprintf(out, "%s\n", md)
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
