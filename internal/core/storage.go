package core

import "context"

// TurnStore is the durable, subject-partitioned append log of turns.
//
// Append must be durable before it returns. Load returns the subject's turns
// oldest first and an empty slice for a subject without history. Failures of
// the underlying medium are reported wrapped in ErrStoreUnavailable.
type TurnStore interface {
	Append(ctx context.Context, subject, userText, botText string) error
	Load(ctx context.Context, subject string) ([]Turn, error)
}

// SubjectLister is implemented by stores that can enumerate known subjects.
type SubjectLister interface {
	Subjects(ctx context.Context) ([]string, error)
}
