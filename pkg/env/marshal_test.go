package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type innerCfg struct {
	Model string `env:"LLM_MODEL"`
}

type outerCfg struct {
	Runtime  string        `env:"RAIDER_RUNTIME_PATH"`
	Store    string        `env:"RAIDER_STORE,required"`
	MaxTurns int           `env:"CONTEXT_MAX_TURNS"`
	Lock     bool          `env:"SUBJECT_LOCK"`
	Timeout  time.Duration `env:"PERSIST_TIMEOUT"`
	Note     string        `env:"NOTE"`
	Provider innerCfg
	hidden   string        `env:"HIDDEN"`
}

func TestMarshalEnv(t *testing.T) {
	cfg := &outerCfg{
		Runtime:  "/tmp/raider",
		Store:    "sqlite",
		MaxTurns: 20,
		Timeout:  5 * time.Second,
		Note:     "has spaces",
		Provider: innerCfg{Model: "AiRaider:latest"},
		hidden:   "x",
	}

	out, err := MarshalEnv(cfg)
	require.NoError(t, err)

	assert.Equal(t,
		"RAIDER_RUNTIME_PATH=/tmp/raider\n"+
			"RAIDER_STORE=sqlite\n"+
			"CONTEXT_MAX_TURNS=20\n"+
			"PERSIST_TIMEOUT=5s\n"+
			"NOTE=\"has spaces\"\n"+
			"LLM_MODEL=AiRaider:latest\n",
		out)
}

func TestMarshalEnv_LaterStructWins(t *testing.T) {
	a := &innerCfg{Model: "first"}
	b := &innerCfg{Model: "second"}

	out, err := MarshalEnv(a, b)
	require.NoError(t, err)
	assert.Equal(t, "LLM_MODEL=second\n", out)
}

func TestMarshalEnv_RejectsNonPointer(t *testing.T) {
	_, err := MarshalEnv(innerCfg{})
	assert.Error(t, err)
}

func TestMarshalEnv_Empty(t *testing.T) {
	out, err := MarshalEnv(&innerCfg{})
	require.NoError(t, err)
	assert.Equal(t, "", out)
}
