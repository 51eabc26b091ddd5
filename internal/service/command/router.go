package command

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sandevgo/raider/internal/core"
)

type Router struct {
	commands map[string]core.Command
}

func New(commands []core.Command) *Router {
	c := &Router{
		commands: make(map[string]core.Command),
	}

	for _, cmd := range commands {
		c.commands[cmd.Name()] = cmd
	}
	c.commands["help"] = newHelpCommand(c)
	return c
}

// Execute runs input as a slash command. The bool reports whether input
// was a command at all.
func (c *Router) Execute(ctx context.Context, sessionID, input string) (string, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return "", false
	}

	parts := strings.Fields(input)
	name := strings.TrimPrefix(parts[0], "/")
	// Telegram appends the bot name in groups: /subject@raider_bot
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	args := parts[1:]

	cmd, ok := c.commands[name]
	if !ok {
		return fmt.Sprintf("Unknown command: /%s. Try /help.", name), true
	}

	result, err := cmd.Execute(ctx, sessionID, args)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), true
	}
	return result, true
}

// ListCommands returns the registered commands sorted by name.
func (c *Router) ListCommands() []core.Command {
	res := make([]core.Command, 0, len(c.commands))
	for _, cmd := range c.commands {
		res = append(res, cmd)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name() < res[j].Name() })
	return res
}
