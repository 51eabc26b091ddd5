package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sandevgo/raider/internal/config"
	"github.com/sandevgo/raider/internal/core"
	"github.com/sandevgo/raider/internal/observability"
	"github.com/sandevgo/raider/internal/service/dialogue"
	"github.com/sandevgo/raider/internal/service/memory"
	memstore "github.com/sandevgo/raider/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoAI struct {
	err error
}

func (e echoAI) Infer(_ context.Context, contextText, userText string) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return "re: " + userText, nil
}

type brokenStore struct{}

func (brokenStore) Append(context.Context, string, string, string) error {
	return core.StoreError("insert turn", errors.New("down"))
}

func (brokenStore) Load(context.Context, string) ([]core.Turn, error) {
	return nil, core.StoreError("query turns", errors.New("down"))
}

type testServer struct {
	*httptest.Server
	store   core.TurnStore
	metrics *observability.Metrics
}

func newTestServer(t *testing.T, store core.TurnStore, ai core.Inferencer) *testServer {
	t.Helper()
	metrics := observability.NewMetrics("test", nil)
	svc := dialogue.NewService(nil, memory.NewAssembler(store, nil), ai, store, metrics)
	srv := New(&config.HTTPConfig{}, svc, store, metrics)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return &testServer{Server: ts, store: store, metrics: metrics}
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	res, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer res.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return res, out
}

func TestCommunicate(t *testing.T) {
	ts := newTestServer(t, memstore.NewStore(), echoAI{})

	res, out := postJSON(t, ts.URL+"/AI/Communicate", map[string]string{
		"prompt":  "What is inertia?",
		"subject": "Physics",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "re: What is inertia?", out["prompt_response"])
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))

	turns, err := ts.store.Load(context.Background(), "Physics")
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "What is inertia?", turns[0].UserText)
}

func TestCommunicate_InvalidSubject(t *testing.T) {
	ts := newTestServer(t, memstore.NewStore(), echoAI{})

	res, out := postJSON(t, ts.URL+"/AI/Communicate", map[string]string{"prompt": "hi", "subject": "   "})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "invalid_request", out["code"])
	assert.True(t, strings.HasPrefix(out["prompt_response"].(string), "Error: "))
}

func TestCommunicate_InferenceFailureIsAReply(t *testing.T) {
	ts := newTestServer(t, memstore.NewStore(), echoAI{err: &core.InferenceError{Provider: "ollama", Status: 502, Reason: "bad gateway"}})

	res, out := postJSON(t, ts.URL+"/AI/Communicate", map[string]string{"prompt": "hi", "subject": "Math"})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Error: could not get a response from the AI (status code: 502)", out["prompt_response"])
	assert.Equal(t, 1.0, testutil.ToFloat64(ts.metrics.InferenceFailures.WithLabelValues("ollama", "502")))
}

func TestCommunicate_StoreDown(t *testing.T) {
	ts := newTestServer(t, brokenStore{}, echoAI{})

	res, out := postJSON(t, ts.URL+"/AI/Communicate", map[string]string{"prompt": "hi", "subject": "Math"})
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	assert.Equal(t, "store_unavailable", out["code"])
}

func TestCommunicate_MalformedBody(t *testing.T) {
	ts := newTestServer(t, memstore.NewStore(), echoAI{})

	res, err := http.Post(ts.URL+"/AI/Communicate", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res2, err := http.Post(ts.URL+"/AI/Communicate", "application/json", nil)
	require.NoError(t, err)
	defer res2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res2.StatusCode)
}

func TestRespondAndHistory(t *testing.T) {
	ts := newTestServer(t, memstore.NewStore(), echoAI{})

	res, out := postJSON(t, ts.URL+"/v1/respond", map[string]string{
		"subject":   "Quantum Physics",
		"user_text": "What is a qubit?",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "re: What is a qubit?", out["reply_text"])
	assert.Equal(t, true, out["persisted"])
	assert.Equal(t, false, out["degraded"])

	hres, err := http.Get(ts.URL + "/v1/subjects/Quantum%20Physics/turns")
	require.NoError(t, err)
	defer hres.Body.Close()
	require.Equal(t, http.StatusOK, hres.StatusCode)

	var history struct {
		Subject string      `json:"subject"`
		Turns   []core.Turn `json:"turns"`
	}
	require.NoError(t, json.NewDecoder(hres.Body).Decode(&history))
	assert.Equal(t, "Quantum Physics", history.Subject)
	require.Len(t, history.Turns, 1)
	assert.Equal(t, "re: What is a qubit?", history.Turns[0].BotText)

	sres, err := http.Get(ts.URL + "/v1/subjects")
	require.NoError(t, err)
	defer sres.Body.Close()
	var subjects struct {
		Subjects []string `json:"subjects"`
	}
	require.NoError(t, json.NewDecoder(sres.Body).Decode(&subjects))
	assert.Equal(t, []string{"Quantum Physics"}, subjects.Subjects)
}

func TestHistory_UnknownSubjectIsEmpty(t *testing.T) {
	ts := newTestServer(t, memstore.NewStore(), echoAI{})

	res, err := http.Get(ts.URL + "/v1/subjects/Nothing/turns")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	assert.Equal(t, []any{}, out["turns"])
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t, memstore.NewStore(), echoAI{})

	res, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	assert.Equal(t, 1.0, testutil.ToFloat64(ts.metrics.HTTPRequests.WithLabelValues("/healthz", "200")))

	mres, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer mres.Body.Close()
	assert.Equal(t, http.StatusOK, mres.StatusCode)
}

func TestRequestIDIsEchoed(t *testing.T) {
	ts := newTestServer(t, memstore.NewStore(), echoAI{})

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "abc-123")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "abc-123", res.Header.Get("X-Request-ID"))
}

func TestStartAndShutdown(t *testing.T) {
	store := memstore.NewStore()
	srv := New(&config.HTTPConfig{BindAddr: "127.0.0.1:0", ReadTimeout: time.Second, WriteTimeout: time.Second},
		dialogue.NewService(nil, memory.NewAssembler(store, nil), echoAI{}, store, nil),
		store, nil)

	done := make(chan error, 1)
	go func() { done <- srv.Start(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, srv.Shutdown(context.Background()))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
