package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sandevgo/raider/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleTurns() []core.Turn {
	at := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	return []core.Turn{
		{Subject: "Math", UserText: "What is 2+2?", BotText: "4", Seq: 1, CreatedAt: at},
		{Subject: "Math", UserText: "And times 3?", BotText: "12", Seq: 2, CreatedAt: at},
	}
}

func TestWriteTurns_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTurns(&buf, "text", sampleTurns()))

	assert.Equal(t,
		"#1 2024-05-01 10:30\nUser: What is 2+2?\nBot: 4\n\n"+
			"#2 2024-05-01 10:30\nUser: And times 3?\nBot: 12\n\n",
		buf.String())
}

func TestWriteTurns_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTurns(&buf, "JSON", sampleTurns()))

	var got []core.Turn
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleTurns(), got)
}

func TestWriteTurns_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTurns(&buf, "yaml", sampleTurns()))

	assert.Contains(t, buf.String(), "subject: Math")

	var got []core.Turn
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "12", got[1].BotText)
}

func TestWriteTurns_UnknownFormat(t *testing.T) {
	err := writeTurns(&bytes.Buffer{}, "xml", nil)
	assert.ErrorContains(t, err, "unknown format")
}

func TestWriteTurns_EmptyText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTurns(&buf, "", nil))
	assert.Empty(t, buf.String())
}
