package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v3"
)

func TestSessionID(t *testing.T) {
	assert.Equal(t, "telegram-42", sessionID(&tele.Chat{ID: 42}))
	assert.Equal(t, "telegram--100123", sessionID(&tele.Chat{ID: -100123}))
	assert.Equal(t, "telegram-unknown", sessionID(nil))
}

func TestAllowed(t *testing.T) {
	b := &Bot{ownerID: 7}
	assert.True(t, b.allowed(&tele.User{ID: 7}))
	assert.False(t, b.allowed(&tele.User{ID: 8}))
	assert.False(t, b.allowed(nil))
}

func TestRenderChunks(t *testing.T) {
	assert.Nil(t, renderChunks("   "))

	chunks := renderChunks("New subject selected: **Physics**")
	assert.Len(t, chunks, 1)
	assert.Contains(t, chunks[0], "<strong>Physics</strong>")

	long := strings.Repeat("A paragraph of text about inertia.\n\n", 300)
	chunks = renderChunks(long)
	assert.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), maxTelegramMsgLen)
	}
}
