package chatgpt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestNewWithAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	svc, err := New()
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

// withTestServer points the package at a local server for the test's duration.
func withTestServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	orig := apiURL
	apiURL = server.URL
	t.Cleanup(func() { apiURL = orig })
}

func TestGetContent(t *testing.T) {
	var gotAuth string
	var gotBody request

	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "hello there"}, "finish_reason": "stop"}]
		}`))
	})

	t.Setenv("OPENAI_API_KEY", "test-key")
	svc, err := New()
	require.NoError(t, err)

	messages := []Message{
		{Role: "system", Content: "You are terse."},
		{Role: "user", Content: "Say hi."},
	}
	content, err := svc.GetContent(context.Background(), messages, CompletionOptions{
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
	})
	require.NoError(t, err)

	assert.Equal(t, "hello there", content)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotBody.Model)
	assert.Equal(t, 0.7, gotBody.Temperature)
	assert.Equal(t, messages, gotBody.Messages)
}

func TestGetContentAPIError(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "Rate limit reached", "type": "requests", "code": "rate_limit_exceeded"}}`))
	})

	t.Setenv("OPENAI_API_KEY", "test-key")
	svc, err := New()
	require.NoError(t, err)

	_, err = svc.GetContent(context.Background(), []Message{{Role: "user", Content: "hi"}}, CompletionOptions{Model: "gpt-4o-mini"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Rate limit reached")
}

func TestGetContentNonJSONError(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	})

	t.Setenv("OPENAI_API_KEY", "test-key")
	svc, err := New()
	require.NoError(t, err)

	_, err = svc.GetContent(context.Background(), []Message{{Role: "user", Content: "hi"}}, CompletionOptions{Model: "gpt-4o-mini"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestGetContentNoChoices(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	})

	t.Setenv("OPENAI_API_KEY", "test-key")
	svc, err := New()
	require.NoError(t, err)

	_, err = svc.GetContent(context.Background(), []Message{{Role: "user", Content: "hi"}}, CompletionOptions{Model: "gpt-4o-mini"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response choices")
}
