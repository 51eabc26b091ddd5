package core

import "context"

// Inferencer is the stateless text generation call. contextText carries the
// whole conversation context; nothing is remembered between calls.
type Inferencer interface {
	Infer(ctx context.Context, contextText, userText string) (string, error)
}

// ContextAssembler renders a subject's history into the inference context.
type ContextAssembler interface {
	Assemble(ctx context.Context, subject, description string) (string, error)
}

// Dialogue runs one request/response cycle for a subject.
type Dialogue interface {
	Respond(ctx context.Context, req Request) (Reply, error)
}

// Request is one inbound user message.
type Request struct {
	Subject  string `json:"subject"`
	UserText string `json:"user_text"`
	// Description overrides the subject in the instruction line.
	Description string `json:"description,omitempty"`
}

// Observer receives outcomes that never fail a request.
type Observer interface {
	InferenceFailed(subject string, err error)
	PersistFailed(subject string, err error)
	TurnCompleted(subject string, persisted bool)
}

// NopObserver ignores everything.
type NopObserver struct{}

func (NopObserver) InferenceFailed(string, error) {}
func (NopObserver) PersistFailed(string, error)   {}
func (NopObserver) TurnCompleted(string, bool)    {}
