// Package memory turns a subject's stored history into the context text
// sent with each inference call.
package memory

import (
	"context"
	"strings"

	"github.com/sandevgo/raider/internal/core"
	"github.com/sandevgo/raider/pkg/log"
)

type Assembler struct {
	store  core.TurnStore
	policy Policy
}

// NewAssembler returns an assembler over store. A nil policy keeps the
// whole history.
func NewAssembler(store core.TurnStore, policy Policy) *Assembler {
	if policy == nil {
		policy = Unbounded{}
	}
	return &Assembler{store: store, policy: policy}
}

// Assemble loads the subject's turns and renders the context. An empty
// description falls back to the subject itself. Store errors are returned
// unchanged.
func (a *Assembler) Assemble(ctx context.Context, subject, description string) (string, error) {
	if strings.TrimSpace(description) == "" {
		description = subject
	}

	turns, err := a.store.Load(ctx, subject)
	if err != nil {
		return "", err
	}

	instruction := Instruction(description)
	kept := a.policy.Apply(instruction, turns)
	if dropped := len(turns) - len(kept); dropped > 0 {
		log.FromCtx(ctx).Debug().
			Str("subject", subject).
			Int("kept", len(kept)).
			Int("dropped", dropped).
			Msg("history truncated")
	}

	return Render(description, kept), nil
}
