package command

import (
	"context"
	"fmt"
)

type helpCommand struct {
	router    *Router
	formatter *ResponseFormatter
}

func newHelpCommand(router *Router) *helpCommand {
	return &helpCommand{router: router, formatter: NewResponseFormatter()}
}

func (c *helpCommand) Name() string {
	return "help"
}

func (c *helpCommand) Description() string {
	return "List commands"
}

func (c *helpCommand) Execute(_ context.Context, _ string, _ []string) (string, error) {
	items := make([]string, 0)
	for _, cmd := range c.router.ListCommands() {
		items = append(items, fmt.Sprintf("/%s: %s", cmd.Name(), cmd.Description()))
	}
	return c.formatter.Combine(
		c.formatter.Info("Commands"),
		c.formatter.List(items),
		c.formatter.Tip("anything that is not a command is a question about the current subject"),
	), nil
}
