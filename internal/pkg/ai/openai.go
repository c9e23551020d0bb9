package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/aigh/aigh/internal/pkg/config"
	apperrors "github.com/aigh/aigh/internal/pkg/errors"
)

// OpenAIProvider implements the Provider interface for OpenAI.
type OpenAIProvider struct {
	client *openai.Client
	config ProviderConfig
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg ProviderConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("API key is required for OpenAI provider")
	}

	info, _ := config.LookupProvider(config.ProviderOpenAI)
	if cfg.Model == "" {
		cfg.Model = info.DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)

	// Support custom endpoints (for OpenAI-compatible APIs)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return config.ProviderOpenAI
}

// isReasoningModel reports whether model only accepts max_completion_tokens
// and its default temperature.
func isReasoningModel(model string) bool {
	return strings.HasPrefix(model, "gpt-5") ||
		(len(model) > 1 && model[0] == 'o' && model[1] >= '0' && model[1] <= '9')
}

func (p *OpenAIProvider) buildRequest(prompt *Prompt) openai.ChatCompletionRequest {
	var messages []openai.ChatCompletionMessage
	if prompt.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: prompt.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt.User,
	})

	req := openai.ChatCompletionRequest{
		Model:    p.config.Model,
		Messages: messages,
	}
	if isReasoningModel(p.config.Model) {
		req.MaxCompletionTokens = prompt.MaxTokens
	} else {
		req.MaxTokens = prompt.MaxTokens
		req.Temperature = p.config.Temperature
	}
	return req
}

// Generate sends one chat completion request.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt *Prompt) (string, error) {
	if prompt == nil {
		return "", errors.New("prompt cannot be nil")
	}

	apperrors.LogAPIRequest(p.Name(), p.config.Model, len(prompt.User))
	startTime := time.Now()

	resp, err := p.client.CreateChatCompletion(ctx, p.buildRequest(prompt))
	if err != nil {
		return "", wrapOpenAIError(err)
	}

	rawText := ""
	if len(resp.Choices) > 0 {
		rawText = resp.Choices[0].Message.Content
	}
	apperrors.LogAPIResponse(p.Name(), len(rawText), time.Since(startTime))

	if strings.TrimSpace(rawText) == "" {
		return "", apperrors.NewEmptyResponseError(p.Name())
	}
	return rawText, nil
}

// wrapOpenAIError wraps an API error with a user-friendly message.
func wrapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized:
			return apperrors.NewAuthenticationError("OpenAI")
		case http.StatusBadRequest:
			return apperrors.Wrap(err, apperrors.ErrAIProviderFailed, fmt.Sprintf("invalid request: %s", apiErr.Message))
		default:
			return apperrors.Wrap(err, apperrors.ErrAIProviderFailed, fmt.Sprintf("API error (status %d): %s", apiErr.HTTPStatusCode, apiErr.Message))
		}
	}

	return apperrors.NewAIProviderError("OpenAI", err)
}
