package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandevgo/raider/internal/core"
)

const defaultHistoryTurns = 5

type HistoryCommand struct {
	subjects  core.SubjectState
	store     core.TurnStore
	formatter *ResponseFormatter
}

func NewHistoryCommand(subjects core.SubjectState, store core.TurnStore) *HistoryCommand {
	return &HistoryCommand{
		subjects:  subjects,
		store:     store,
		formatter: NewResponseFormatter(),
	}
}

func (c *HistoryCommand) Name() string {
	return "history"
}

func (c *HistoryCommand) Description() string {
	return "Show the latest turns of the current subject"
}

func (c *HistoryCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	subject, ok := c.subjects.Subject(sessionID)
	if !ok {
		return "", fmt.Errorf("no subject selected, use /subject <name>")
	}

	limit := defaultHistoryTurns
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return "", fmt.Errorf("invalid number of turns: %q", args[0])
		}
		limit = n
	}

	turns, err := c.store.Load(ctx, subject)
	if err != nil {
		return "", err
	}
	if len(turns) == 0 {
		return c.formatter.Info("No history for " + subject), nil
	}

	shown := turns
	if len(shown) > limit {
		shown = shown[len(shown)-limit:]
	}

	var sb strings.Builder
	for _, t := range shown {
		sb.WriteString(fmt.Sprintf("**#%d** %s\n› %s\n\n", t.Seq, t.UserText, t.BotText))
	}

	return c.formatter.Combine(
		c.formatter.Info(fmt.Sprintf("%s: %d of %d turns", subject, len(shown), len(turns))),
		sb.String(),
	), nil
}
