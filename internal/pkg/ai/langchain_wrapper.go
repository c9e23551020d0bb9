package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"

	apperrors "github.com/aigh/aigh/internal/pkg/errors"
)

// LangChainWrapper adapts any langchaingo model to the Provider interface.
type LangChainWrapper struct {
	llm          llms.Model
	config       ProviderConfig
	providerName string
}

// NewLangChainWrapper creates a new LangChain wrapper.
func NewLangChainWrapper(llm llms.Model, config ProviderConfig, providerName string) *LangChainWrapper {
	return &LangChainWrapper{
		llm:          llm,
		config:       config,
		providerName: providerName,
	}
}

// Name returns the provider name.
func (w *LangChainWrapper) Name() string {
	return w.providerName
}

// Generate performs a single LLM call.
func (w *LangChainWrapper) Generate(ctx context.Context, prompt *Prompt) (string, error) {
	if prompt == nil {
		return "", errors.New("prompt cannot be nil")
	}

	var messages []llms.MessageContent
	if prompt.System != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, prompt.System))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, prompt.User))

	apperrors.LogAPIRequest(w.providerName, w.config.Model, len(prompt.User))
	startTime := time.Now()

	resp, err := w.llm.GenerateContent(ctx, messages,
		llms.WithModel(w.config.Model),
		llms.WithTemperature(float64(w.config.Temperature)),
		llms.WithMaxTokens(prompt.MaxTokens),
	)
	if err != nil {
		return "", w.wrapError(err)
	}

	rawText := ""
	if resp != nil {
		for _, choice := range resp.Choices {
			if choice != nil && strings.TrimSpace(choice.Content) != "" {
				rawText = choice.Content
				break
			}
		}
	}
	apperrors.LogAPIResponse(w.providerName, len(rawText), time.Since(startTime))

	if rawText == "" {
		return "", apperrors.NewEmptyResponseError(w.providerName)
	}
	return rawText, nil
}

// wrapError wraps an error with a user-friendly message.
func (w *LangChainWrapper) wrapError(err error) error {
	errStr := strings.ToLower(err.Error())

	if strings.Contains(errStr, "401") || strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "authentication") {
		return apperrors.NewAuthenticationError(w.providerName)
	}

	return apperrors.NewAIProviderError(w.providerName, err)
}
