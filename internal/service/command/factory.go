package command

import (
	"github.com/sandevgo/raider/internal/core"
)

func NewCommands(
	cfg core.ProviderConfig,
	subjects core.SubjectState,
	history core.TurnStore,
) []core.Command {
	return []core.Command{
		NewSubjectCommand(subjects),
		NewHistoryCommand(subjects, history),
		NewModelCommand(cfg),
	}
}
