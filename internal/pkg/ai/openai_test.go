package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/aigh/aigh/internal/pkg/errors"
)

// newTestOpenAIServer answers chat completions with content, recording the last request body.
func newTestOpenAIServer(t *testing.T, status int, content string, captured *map[string]interface{}) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test-key-that-is-long-enough", r.Header.Get("Authorization"))
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"` + content + `","type":"invalid_request_error"}}`))
			return
		}
		resp := map[string]interface{}{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]interface{}{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]string{"role": "assistant", "content": content},
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestOpenAIProvider(t *testing.T, server *httptest.Server, model string) *OpenAIProvider {
	t.Helper()
	provider, err := NewOpenAIProvider(ProviderConfig{
		APIKey:   "sk-test-key-that-is-long-enough",
		Model:    model,
		Endpoint: server.URL + "/v1",
	})
	require.NoError(t, err)
	return provider
}

func TestNewOpenAIProvider_MissingAPIKey(t *testing.T) {
	_, err := NewOpenAIProvider(ProviderConfig{})
	assert.Error(t, err)
}

func TestNewOpenAIProvider_DefaultValues(t *testing.T) {
	provider, err := NewOpenAIProvider(ProviderConfig{APIKey: "sk-test"})
	require.NoError(t, err)

	assert.Equal(t, "openai", provider.Name())
	assert.Equal(t, "gpt-4o-mini", provider.config.Model)
	assert.Equal(t, float32(DefaultTemperature), provider.config.Temperature)
}

func TestOpenAIProvider_Generate(t *testing.T) {
	var body map[string]interface{}
	server := newTestOpenAIServer(t, http.StatusOK, "feat: add log line", &body)
	provider := newTestOpenAIProvider(t, server, "gpt-4o-mini")

	text, err := provider.Generate(context.Background(), &Prompt{System: "sys", User: "diff", MaxTokens: CommitMaxTokens})
	require.NoError(t, err)
	assert.Equal(t, "feat: add log line", text)

	assert.Equal(t, "gpt-4o-mini", body["model"])
	assert.EqualValues(t, CommitMaxTokens, body["max_tokens"])
	assert.InDelta(t, DefaultTemperature, body["temperature"], 0.001)
	messages, ok := body["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]interface{})["role"])
	assert.Equal(t, "user", messages[1].(map[string]interface{})["role"])
}

func TestOpenAIProvider_ReasoningModelUsesCompletionTokens(t *testing.T) {
	var body map[string]interface{}
	server := newTestOpenAIServer(t, http.StatusOK, "fix: bug", &body)
	provider := newTestOpenAIProvider(t, server, "o3-mini")

	_, err := provider.Generate(context.Background(), &Prompt{User: "diff", MaxTokens: PRMaxTokens})
	require.NoError(t, err)

	assert.EqualValues(t, PRMaxTokens, body["max_completion_tokens"])
	assert.NotContains(t, body, "max_tokens")
	assert.NotContains(t, body, "temperature")
}

func TestOpenAIProvider_EmptyResponse(t *testing.T) {
	server := newTestOpenAIServer(t, http.StatusOK, "   ", nil)
	provider := newTestOpenAIProvider(t, server, "gpt-4o")

	_, err := provider.Generate(context.Background(), &Prompt{User: "diff"})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrEmptyResponse))
}

func TestOpenAIProvider_Unauthorized(t *testing.T) {
	server := newTestOpenAIServer(t, http.StatusUnauthorized, "Incorrect API key provided", nil)
	provider := newTestOpenAIProvider(t, server, "gpt-4o")

	_, err := provider.Generate(context.Background(), &Prompt{User: "diff"})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrAuthenticationFailed))
}

func TestOpenAIProvider_NilPrompt(t *testing.T) {
	provider, err := NewOpenAIProvider(ProviderConfig{APIKey: "sk-test"})
	require.NoError(t, err)

	_, err = provider.Generate(context.Background(), nil)
	assert.Error(t, err)
}

func TestIsReasoningModel(t *testing.T) {
	tests := map[string]bool{
		"gpt-5":       true,
		"gpt-5.2-pro": true,
		"o1":          true,
		"o3-mini":     true,
		"gpt-4o":      false,
		"gpt-4o-mini": false,
		"omni":        false,
	}
	for model, want := range tests {
		assert.Equal(t, want, isReasoningModel(model), model)
	}
}
