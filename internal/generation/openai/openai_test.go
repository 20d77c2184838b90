package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
)

type chatRequest struct {
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float32 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newTestGenerator(t *testing.T, handler http.HandlerFunc) *Generator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	g, err := NewGenerator(Config{BaseURL: srv.URL + "/v1", APIKey: "sk-test", Model: "gpt-4o-mini", Temperature: 0.2, MaxOutputTokens: 512})
	require.NoError(t, err)
	return g
}

func TestGenerate(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.Equal(t, 512, req.MaxTokens)
		assert.InDelta(t, 0.2, req.Temperature, 1e-6)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "What is Java?", req.Messages[0].Content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":" Java is a language. "}}]}`))
	})

	out, err := g.Generate(context.Background(), "What is Java?")
	require.NoError(t, err)
	assert.Equal(t, "Java is a language.", out)
}

func TestGenerate_EmptyChoices(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := g.Generate(context.Background(), "What is Java?")
	assert.ErrorIs(t, err, domain.ErrEmptyCompletion)
}

func TestGenerate_NoRetryOnFailure(t *testing.T) {
	var calls int32
	g := newTestGenerator(t, func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded"}}`))
	})

	_, err := g.Generate(context.Background(), "What is Java?")
	require.Error(t, err)
	assert.False(t, domain.IsConfigError(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestNewGenerator_RequiresKey(t *testing.T) {
	_, err := NewGenerator(Config{})
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
}
