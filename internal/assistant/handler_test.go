package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"assister/internal/expert"
	"assister/internal/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	answer string
	err    error

	system string
	user   string
}

func (f *fakeLLM) Name() string { return "fake" }

func (f *fakeLLM) Query(_ context.Context, systemPrompt, userQuery string) (string, error) {
	f.system = systemPrompt
	f.user = userQuery
	return f.answer, f.err
}

// countingTransport records every outbound request and fails or answers
// according to its fields.
type countingTransport struct {
	calls   atomic.Int32
	err     error
	content string
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	body, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": c.content},
		}},
	})
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(string(body))),
		Request:    r,
	}, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAnswerMissingCredential(t *testing.T) {
	transport := &countingTransport{content: "unused"}
	factoryCalls := 0
	factory := func(s llm.Settings) (llm.LLM, error) {
		factoryCalls++
		return llm.NewProvider(s)
	}

	for _, mode := range expert.Modes {
		h := New(Config{HTTPClient: &http.Client{Transport: transport}}, factory, quietLogger())

		out := h.Reply(context.Background(), "anything", mode)
		assert.Equal(t, "⚠️ OpenAI APIキーが設定されていません。環境変数OPENAI_API_KEYを設定してください。", out)

		_, err := h.Answer(context.Background(), "anything", mode)
		assert.ErrorIs(t, err, ErrMissingCredential)
	}

	assert.Equal(t, 0, factoryCalls)
	assert.Equal(t, int32(0), transport.calls.Load())
}

func TestAnswerSuccessVerbatim(t *testing.T) {
	fake := &fakeLLM{answer: "Press F9."}
	zero := 0.0
	var got llm.Settings
	factory := func(s llm.Settings) (llm.LLM, error) {
		got = s
		return fake, nil
	}

	h := New(Config{APIKey: "sk-test", Model: "gpt-4o-mini", Temperature: &zero}, factory, quietLogger())
	out := h.Reply(context.Background(), "How do I set a breakpoint?", expert.VSCodeExpert)

	assert.Equal(t, "Press F9.", out)
	assert.Equal(t, expert.SystemPrompt(expert.VSCodeExpert), fake.system)
	assert.Equal(t, "How do I set a breakpoint?", fake.user)
	assert.Equal(t, "sk-test", got.APIKey)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	require.NotNil(t, got.Temperature)
	assert.Equal(t, 0.0, *got.Temperature)
}

func TestAnswerNoTrimming(t *testing.T) {
	fake := &fakeLLM{answer: "\n  **Use** `%pip install`  \n"}
	h := New(Config{APIKey: "sk-test"}, func(llm.Settings) (llm.LLM, error) { return fake, nil }, quietLogger())

	out, err := h.Answer(context.Background(), "", expert.ColabExpert)
	require.NoError(t, err)
	assert.Equal(t, "\n  **Use** `%pip install`  \n", out)
	assert.Equal(t, expert.SystemPrompt(expert.ColabExpert), fake.system)
}

func TestAnswerTransportError(t *testing.T) {
	transport := &countingTransport{err: errors.New("timeout")}
	h := New(Config{
		APIKey:     "sk-test",
		BaseURL:    "http://127.0.0.1:1/v1",
		HTTPClient: &http.Client{Transport: transport},
	}, nil, quietLogger())

	out := h.Reply(context.Background(), "hello", expert.VSCodeExpert)
	assert.True(t, strings.HasPrefix(out, "⚠️"), out)
	assert.Contains(t, out, "timeout")
	assert.Equal(t, int32(1), transport.calls.Load())

	_, err := h.Answer(context.Background(), "hello", expert.VSCodeExpert)
	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Contains(t, upErr.Message, "timeout")
	assert.Equal(t, KindNetwork, upErr.Kind)
}

func TestAnswerCancelledContext(t *testing.T) {
	transport := &countingTransport{content: "unused"}
	h := New(Config{
		APIKey:     "sk-test",
		HTTPClient: &http.Client{Transport: transport},
	}, nil, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Answer(ctx, "hello", expert.ColabExpert)
	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, KindNetwork, upErr.Kind)
	assert.True(t, strings.HasPrefix(Display(err), "⚠️ "), Display(err))
}

func TestClassifyUnknown(t *testing.T) {
	assert.Equal(t, KindUnknown, classify(errors.New("something odd")))
	assert.Equal(t, KindNetwork, classify(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)))
	assert.Equal(t, "network", KindNetwork.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}

func TestAnswerEndToEnd(t *testing.T) {
	transport := &countingTransport{content: "Press F9."}
	h := New(Config{
		APIKey:     "sk-test",
		Model:      llm.DefaultModel,
		HTTPClient: &http.Client{Transport: transport},
	}, nil, quietLogger())

	out := h.Reply(context.Background(), "How do I set a breakpoint?", expert.VSCodeExpert)
	assert.Equal(t, "Press F9.", out)
	assert.Equal(t, int32(1), transport.calls.Load())
}

func TestAnswerErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   ErrorKind
	}{
		{name: "auth", status: http.StatusUnauthorized, want: KindAuth},
		{name: "forbidden", status: http.StatusForbidden, want: KindAuth},
		{name: "rate limit", status: http.StatusTooManyRequests, want: KindRateLimit},
		{name: "bad request", status: http.StatusBadRequest, want: KindBadRequest},
		{name: "server", status: http.StatusBadGateway, want: KindServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":{"message":"rejected","type":"error"}}`))
			}))
			defer srv.Close()

			h := New(Config{APIKey: "sk-test", BaseURL: srv.URL}, nil, quietLogger())
			_, err := h.Answer(context.Background(), "q", expert.ColabExpert)

			var upErr *UpstreamError
			require.ErrorAs(t, err, &upErr)
			assert.Equal(t, tt.want, upErr.Kind)
			assert.True(t, strings.HasPrefix(Display(err), "⚠️ "))
		})
	}
}

func TestAnswerMalformed(t *testing.T) {
	fake := &fakeLLM{err: llm.ErrNoChoices}
	h := New(Config{APIKey: "sk-test"}, func(llm.Settings) (llm.LLM, error) { return fake, nil }, quietLogger())

	_, err := h.Answer(context.Background(), "q", expert.VSCodeExpert)
	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, KindMalformed, upErr.Kind)
	assert.ErrorIs(t, err, llm.ErrNoChoices)
}

func TestAnswerFactoryFailure(t *testing.T) {
	h := New(Config{APIKey: "sk-test", Provider: "bogus"}, nil, quietLogger())

	out := h.Reply(context.Background(), "q", expert.VSCodeExpert)
	assert.Equal(t, "⚠️ エラーが発生しました: unsupported provider type: bogus", out)
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "", Display(nil))
	assert.Equal(t, MissingCredentialMessage, Display(ErrMissingCredential))
	assert.Equal(t, "⚠️ エラーが発生しました: boom", Display(errors.New("boom")))
	assert.Equal(t, "⚠️ エラーが発生しました: quota", Display(&UpstreamError{Kind: KindRateLimit, Message: "quota"}))
}
