package core

import "context"

// Command is a slash command typed into a chat front-end.
type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, sessionID string, args []string) (string, error)
}

// SubjectState tracks the subject each chat session is talking about.
type SubjectState interface {
	Subject(sessionID string) (string, bool)
	SetSubject(sessionID, subject string)
}
