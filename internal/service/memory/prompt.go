package memory

import (
	"strings"

	"github.com/sandevgo/raider/internal/core"
)

const (
	instructionPrefix = "You are an expert on this subject: "
	userPrefix        = "User: "
	botPrefix         = "Bot: "
)

// Instruction returns the first line of every context.
func Instruction(description string) string {
	return instructionPrefix + description + "."
}

// TurnLines renders one turn as its user and bot lines.
func TurnLines(t core.Turn) string {
	return userPrefix + t.UserText + "\n" + botPrefix + t.BotText
}

// Render joins the instruction line and the turns, oldest first, with
// newlines. Turn text is written verbatim.
func Render(description string, turns []core.Turn) string {
	var sb strings.Builder
	sb.WriteString(Instruction(description))
	for _, t := range turns {
		sb.WriteByte('\n')
		sb.WriteString(TurnLines(t))
	}
	return sb.String()
}
