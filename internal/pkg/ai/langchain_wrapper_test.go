package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	apperrors "github.com/aigh/aigh/internal/pkg/errors"
)

// fakeModel records the messages it receives and replays a canned response.
type fakeModel struct {
	messages []llms.MessageContent
	opts     llms.CallOptions
	resp     *llms.ContentResponse
	err      error
}

func (m *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.messages = messages
	for _, opt := range options {
		opt(&m.opts)
	}
	return m.resp, m.err
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func TestLangChainWrapper_Generate(t *testing.T) {
	model := &fakeModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{
		{Content: ""},
		{Content: "fix: handle nil settings"},
	}}}
	wrapper := NewLangChainWrapper(model, ProviderConfig{Model: "claude-3-5-haiku-latest", Temperature: 0.7}, "anthropic")

	text, err := wrapper.Generate(context.Background(), &Prompt{System: "sys", User: "diff", MaxTokens: CommitMaxTokens})
	require.NoError(t, err)

	assert.Equal(t, "fix: handle nil settings", text)
	require.Len(t, model.messages, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, model.messages[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[1].Role)
	assert.Equal(t, "claude-3-5-haiku-latest", model.opts.Model)
	assert.Equal(t, CommitMaxTokens, model.opts.MaxTokens)
	assert.InDelta(t, 0.7, model.opts.Temperature, 0.001)
}

func TestLangChainWrapper_EmptyResponse(t *testing.T) {
	wrapper := NewLangChainWrapper(&fakeModel{resp: &llms.ContentResponse{}}, ProviderConfig{}, "anthropic")

	_, err := wrapper.Generate(context.Background(), &Prompt{User: "diff"})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrEmptyResponse))
}

func TestLangChainWrapper_Errors(t *testing.T) {
	wrapper := NewLangChainWrapper(&fakeModel{err: errors.New("API returned unexpected status code: 401: invalid x-api-key")}, ProviderConfig{}, "anthropic")
	_, err := wrapper.Generate(context.Background(), &Prompt{User: "diff"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrAuthenticationFailed))

	wrapper = NewLangChainWrapper(&fakeModel{err: errors.New("overloaded")}, ProviderConfig{}, "anthropic")
	_, err = wrapper.Generate(context.Background(), &Prompt{User: "diff"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrAIProviderFailed))
}
