package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listingpilot/internal/adapters/llm"
	"listingpilot/internal/domain"
	"listingpilot/internal/usecases"
)

const completion = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o-mini",
  "choices": [{"index": 0, "finish_reason": "stop",
    "message": {"role": "assistant", "content": "{\"title\":\"Kettle\"}"}}]
}`

func newGenerator(t *testing.T, handler http.HandlerFunc) *llm.OpenAIGenerator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return llm.NewOpenAIGenerator(llm.Config{APIKey: "test-key", BaseURL: srv.URL + "/v1", Model: "gpt-4o-mini"})
}

func request() usecases.GenerationRequest {
	return usecases.GenerationRequest{SystemPrompt: "system", UserPrompt: "user", Platform: domain.Etsy, Mode: domain.ModeCreate}
}

func TestOpenAIGenerator_SendsJSONModeRequest(t *testing.T) {
	// Arrange
	var body map[string]any
	gen := newGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completion)
	})

	// Act
	out, err := gen.Generate(context.Background(), request())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Kettle"}`, out)
	assert.Equal(t, "gpt-4o-mini", body["model"])
	format, _ := body["response_format"].(map[string]any)
	assert.Equal(t, "json_object", format["type"])
	messages, _ := body["messages"].([]any)
	assert.Len(t, messages, 2)
}

func TestOpenAIGenerator_ClassifiesHTTPErrors(t *testing.T) {
	testCases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, domain.ErrUpstreamAuth},
		{http.StatusForbidden, domain.ErrUpstreamAuth},
		{http.StatusTooManyRequests, domain.ErrUpstreamRateLimit},
		{http.StatusInternalServerError, domain.ErrUpstreamUnavailable},
		{http.StatusBadGateway, domain.ErrUpstreamUnavailable},
	}

	for _, tc := range testCases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			gen := newGenerator(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, `{"error":{"message":"nope","type":"error"}}`)
			})

			_, err := gen.Generate(context.Background(), request())

			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestOpenAIGenerator_DeadlineIsTimeout(t *testing.T) {
	gen := newGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := gen.Generate(ctx, request())

	assert.ErrorIs(t, err, domain.ErrUpstreamTimeout)
}

func TestOpenAIGenerator_ThrottledPastDeadlineIsTimeout(t *testing.T) {
	// Arrange
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completion)
	}))
	t.Cleanup(srv.Close)
	gen := llm.NewOpenAIGenerator(llm.Config{APIKey: "test-key", BaseURL: srv.URL + "/v1", RateLimitRPS: 0.01})
	for i := 0; i < 2; i++ {
		_, err := gen.Generate(context.Background(), request())
		require.NoError(t, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// Act
	_, err := gen.Generate(ctx, request())

	// Assert
	assert.ErrorIs(t, err, domain.ErrUpstreamTimeout)
	assert.NoError(t, ctx.Err(), "limiter should refuse before the deadline passes")
	assert.Equal(t, 2, calls)
}

func TestOpenAIGenerator_CanceledWhileThrottledIsNotTimeout(t *testing.T) {
	gen := llm.NewOpenAIGenerator(llm.Config{APIKey: "test-key", BaseURL: "http://127.0.0.1:1/v1", RateLimitRPS: 0.01})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Generate(ctx, request())

	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUpstreamTimeout)
}

func TestOpenAIGenerator_NoChoicesIsUnavailable(t *testing.T) {
	gen := newGenerator(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, strings.Replace(completion, `"choices": [`, `"unused": [`, 1))
	})

	_, err := gen.Generate(context.Background(), request())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstreamUnavailable))
}

func TestOpenAIGenerator_DefaultModel(t *testing.T) {
	gen := llm.NewOpenAIGenerator(llm.Config{APIKey: "k"})

	assert.Equal(t, "gpt-4o-mini", gen.Model())
}
