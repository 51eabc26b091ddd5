package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithFields_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	ctx, flush := NewContextWithOptions(context.Background(), Options{JSON: true, Out: &buf})

	ctx = WithFields(ctx, "subject", "Physics", "request_id", "r-1")
	FromCtx(ctx).Info().Msg("hello")
	flush()

	// diode writer flushes asynchronously; give it a poll cycle
	time.Sleep(20 * time.Millisecond)

	line := strings.TrimSpace(buf.String())
	require.NotEmpty(t, line)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.Split(line, "\n")[0]), &entry))
	assert.Equal(t, "Physics", entry["subject"])
	assert.Equal(t, "r-1", entry["request_id"])
	assert.Equal(t, "hello", entry["message"])
}

func TestWithFields_OddArgsIgnored(t *testing.T) {
	ctx, flush := NewContextWithOptions(context.Background(), Options{JSON: true, Out: &bytes.Buffer{}})
	defer flush()

	assert.NotPanics(t, func() {
		_ = WithFields(ctx, "dangling")
	})
}
