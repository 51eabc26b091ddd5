// Package dialogue runs one question/answer cycle: build the subject's
// context, ask the model, record the turn and hand back the reply.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/raider/internal/core"
	"github.com/sandevgo/raider/pkg/log"
)

const DefaultPersistTimeout = 10 * time.Second

type Service struct {
	assembler      core.ContextAssembler
	ai             core.Inferencer
	store          core.TurnStore
	observer       core.Observer
	locks          *subjectLocks
	persistTimeout time.Duration
}

func NewService(
	cfg core.DialogueConfig,
	assembler core.ContextAssembler,
	ai core.Inferencer,
	store core.TurnStore,
	observer core.Observer,
) *Service {
	if observer == nil {
		observer = core.NopObserver{}
	}

	s := &Service{
		assembler:      assembler,
		ai:             ai,
		store:          store,
		observer:       observer,
		persistTimeout: DefaultPersistTimeout,
	}
	if cfg != nil {
		if cfg.IsSubjectLockEnabled() {
			s.locks = newSubjectLocks()
		}
		if d := cfg.GetPersistTimeout(); d > 0 {
			s.persistTimeout = d
		}
	}
	return s
}

// Respond answers req. It fails only for an invalid request, a store that
// cannot be read, or a context cancelled before the answer exists. A failed
// inference yields a degraded reply describing the failure; a failed write
// is reported to the observer and the reply is still returned.
func (s *Service) Respond(ctx context.Context, req core.Request) (core.Reply, error) {
	subject, err := ValidateSubject(req.Subject)
	if err != nil {
		return core.Reply{}, err
	}
	if err := ValidateText(req.UserText); err != nil {
		return core.Reply{}, err
	}

	ctx = log.WithFields(ctx, "subject", subject, "turn_id", uuid.NewString())
	logger := log.FromCtx(ctx)

	if err := ctx.Err(); err != nil {
		return core.Reply{}, err
	}

	if s.locks != nil {
		unlock, err := s.locks.Lock(ctx, subject)
		if err != nil {
			logger.Debug().Err(err).Msg("request cancelled waiting for subject lock")
			return core.Reply{}, err
		}
		defer unlock()
	}

	contextText, err := s.assembler.Assemble(ctx, subject, req.Description)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build context")
		if errors.Is(err, core.ErrStoreUnavailable) {
			return core.Reply{}, err
		}
		return core.Reply{}, fmt.Errorf("build context: %w", err)
	}

	started := time.Now()
	answer, err := s.ai.Infer(ctx, contextText, req.UserText)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			logger.Debug().Err(err).Msg("request cancelled during inference")
			return core.Reply{}, ctxErr
		}
		logger.Warn().Err(err).Dur("took", time.Since(started)).Msg("inference failed")
		s.observer.InferenceFailed(subject, err)
		return core.Reply{Text: FailureText(err), Degraded: true}, nil
	}
	logger.Debug().Dur("took", time.Since(started)).Int("reply_len", len(answer)).Msg("inference done")

	persisted := s.persist(ctx, subject, req.UserText, answer)
	s.observer.TurnCompleted(subject, persisted)

	return core.Reply{Text: answer, Persisted: persisted}, nil
}

// persist writes the turn on a context detached from the caller, so a client
// that goes away after the answer exists does not lose the turn.
func (s *Service) persist(ctx context.Context, subject, userText, botText string) bool {
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.persistTimeout)
	defer cancel()

	if err := s.store.Append(pctx, subject, userText, botText); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to persist turn")
		s.observer.PersistFailed(subject, err)
		return false
	}
	return true
}

// FailureText is the reply shown in place of an answer when inference fails.
func FailureText(err error) string {
	var ie *core.InferenceError
	if errors.As(err, &ie) {
		if ie.Status != 0 {
			return fmt.Sprintf("Error: could not get a response from the AI (status code: %d)", ie.Status)
		}
		if ie.Err != nil {
			return fmt.Sprintf("Error communicating with the AI server: %s: %v", ie.Reason, ie.Err)
		}
		return fmt.Sprintf("Error communicating with the AI server: %s", ie.Reason)
	}
	return fmt.Sprintf("Error communicating with the AI server: %v", err)
}
