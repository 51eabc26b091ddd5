package memory

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sandevgo/raider/internal/core"
)

// Policy selects which turns of a subject's history enter the context.
// Implementations return a chronological suffix of turns.
type Policy interface {
	Apply(instruction string, turns []core.Turn) []core.Turn
}

// Unbounded keeps the whole history.
type Unbounded struct{}

func (Unbounded) Apply(_ string, turns []core.Turn) []core.Turn { return turns }

// LastTurns keeps the newest N turns. N <= 0 keeps everything.
type LastTurns int

func (n LastTurns) Apply(_ string, turns []core.Turn) []core.Turn {
	if n <= 0 || int(n) >= len(turns) {
		return turns
	}
	return turns[len(turns)-int(n):]
}

type TokenCounter interface {
	Count(text string) int
}

// TokenBudget keeps the newest turns whose rendered lines, together with
// the instruction line, fit into Max tokens. The instruction is always kept.
type TokenBudget struct {
	Max     int
	Counter TokenCounter
}

func (b TokenBudget) Apply(instruction string, turns []core.Turn) []core.Turn {
	if b.Max <= 0 || b.Counter == nil {
		return turns
	}

	used := b.Counter.Count(instruction)
	start := len(turns)
	for i := len(turns) - 1; i >= 0; i-- {
		cost := b.Counter.Count("\n" + TurnLines(turns[i]))
		if used+cost > b.Max {
			break
		}
		used += cost
		start = i
	}
	return turns[start:]
}

// Chain applies policies in order, each to the previous result.
type Chain []Policy

func (c Chain) Apply(instruction string, turns []core.Turn) []core.Turn {
	for _, p := range c {
		turns = p.Apply(instruction, turns)
	}
	return turns
}

// NewPolicy builds the policy described by cfg. Zero limits mean unbounded.
func NewPolicy(cfg core.ContextConfig, counter TokenCounter) Policy {
	var chain Chain
	if n := cfg.GetMaxTurns(); n > 0 {
		chain = append(chain, LastTurns(n))
	}
	if n := cfg.GetMaxTokens(); n > 0 {
		chain = append(chain, TokenBudget{Max: n, Counter: counter})
	}

	switch len(chain) {
	case 0:
		return Unbounded{}
	case 1:
		return chain[0]
	default:
		return chain
	}
}

// TiktokenCounter counts cl100k_base tokens.
type TiktokenCounter struct {
	tk *tiktoken.Tiktoken
}

var (
	sharedCounter   *TiktokenCounter
	sharedCounterMu sync.Mutex
)

// NewTiktokenCounter loads the encoding once per process. The first call
// may download the BPE ranks.
func NewTiktokenCounter() (*TiktokenCounter, error) {
	sharedCounterMu.Lock()
	defer sharedCounterMu.Unlock()

	if sharedCounter != nil {
		return sharedCounter, nil
	}
	tk, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, err
	}
	sharedCounter = &TiktokenCounter{tk: tk}
	return sharedCounter, nil
}

func (c *TiktokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(c.tk.Encode(text, nil, nil))
}

// ApproxCounter estimates four characters per token. Used when the
// tokenizer cannot be loaded.
type ApproxCounter struct{}

func (ApproxCounter) Count(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + 3) / 4
}
