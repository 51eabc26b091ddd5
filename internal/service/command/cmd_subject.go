package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/raider/internal/core"
	"github.com/sandevgo/raider/internal/service/dialogue"
)

type SubjectCommand struct {
	subjects  core.SubjectState
	formatter *ResponseFormatter
}

func NewSubjectCommand(subjects core.SubjectState) *SubjectCommand {
	return &SubjectCommand{
		subjects:  subjects,
		formatter: NewResponseFormatter(),
	}
}

func (c *SubjectCommand) Name() string {
	return "subject"
}

func (c *SubjectCommand) Description() string {
	return "Show or choose the subject of the conversation"
}

func (c *SubjectCommand) Execute(_ context.Context, sessionID string, args []string) (string, error) {
	if len(args) == 0 {
		current, ok := c.subjects.Subject(sessionID)
		if !ok {
			current = "none"
		}
		return c.formatter.Combine(
			c.formatter.Label("Subject", current),
			c.formatter.Usage("/subject <name>"),
			c.formatter.Examples([]string{"/subject Physics", "/subject Roman history"}),
		), nil
	}

	subject, err := dialogue.ValidateSubject(strings.Join(args, " "))
	if err != nil {
		return "", err
	}
	c.subjects.SetSubject(sessionID, subject)

	return fmt.Sprintf("New subject selected: %s\nAsk your questions about this subject.", subject), nil
}
