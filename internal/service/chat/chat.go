// Package chat is the front-end logic shared by interactive transports:
// slash commands, subject selection and turning text into dialogue requests.
package chat

import (
	"context"
	"errors"

	"github.com/sandevgo/raider/internal/core"
	"github.com/sandevgo/raider/internal/service/command"
	"github.com/sandevgo/raider/pkg/log"
)

const noSubjectText = "No subject selected. Choose one with /subject <name>."

type Chat struct {
	router   *command.Router
	subjects core.SubjectState
	dialogue core.Dialogue
}

func New(router *command.Router, subjects core.SubjectState, dialogue core.Dialogue) *Chat {
	return &Chat{router: router, subjects: subjects, dialogue: dialogue}
}

// Handle answers one line of user input from sessionID. It always produces
// text to show; failures become readable messages.
func (c *Chat) Handle(ctx context.Context, sessionID, input string) string {
	if out, ok := c.router.Execute(ctx, sessionID, input); ok {
		return out
	}

	subject, ok := c.subjects.Subject(sessionID)
	if !ok {
		return noSubjectText
	}

	reply, err := c.dialogue.Respond(ctx, core.Request{Subject: subject, UserText: input})
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("session", sessionID).Msg("dialogue failed")
		return ErrorText(err)
	}
	return reply.Text
}

// ErrorText turns a dialogue error into a reply.
func ErrorText(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidRequest):
		return "Error: " + err.Error()
	case errors.Is(err, core.ErrStoreUnavailable):
		return "Error: the conversation history is unavailable, please try again later."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Error: the request was cancelled."
	default:
		return "Error: " + err.Error()
	}
}
