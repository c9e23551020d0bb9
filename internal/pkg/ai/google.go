package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/aigh/aigh/internal/pkg/config"
	apperrors "github.com/aigh/aigh/internal/pkg/errors"
)

// contentFunc performs one GenerateContent call.
type contentFunc func(ctx context.Context, cfg ProviderConfig, prompt *Prompt) (*genai.GenerateContentResponse, error)

// GoogleProvider implements the Provider interface for Gemini models.
type GoogleProvider struct {
	config  ProviderConfig
	content contentFunc
}

// NewGoogleProvider creates a new Gemini provider.
func NewGoogleProvider(cfg ProviderConfig) (*GoogleProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	info, _ := config.LookupProvider(config.ProviderGoogle)
	if cfg.Model == "" {
		cfg.Model = info.DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}

	return &GoogleProvider{config: cfg, content: generateGemini}, nil
}

// Name returns the provider name.
func (p *GoogleProvider) Name() string {
	return config.ProviderGoogle
}

// generateGemini opens a client for the duration of one request.
func generateGemini(ctx context.Context, cfg ProviderConfig, prompt *Prompt) (*genai.GenerateContentResponse, error) {
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(cfg.Temperature)
	if prompt.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(prompt.MaxTokens))
	}
	if prompt.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(prompt.System)}}
	}

	return model.GenerateContent(ctx, genai.Text(prompt.User))
}

// Generate sends one GenerateContent request.
func (p *GoogleProvider) Generate(ctx context.Context, prompt *Prompt) (string, error) {
	if prompt == nil {
		return "", errors.New("prompt cannot be nil")
	}

	apperrors.LogAPIRequest(p.Name(), p.config.Model, len(prompt.User))
	startTime := time.Now()

	resp, err := p.content(ctx, p.config, prompt)
	if err != nil {
		return "", wrapGoogleError(err)
	}

	rawText := formatResponse(resp)
	apperrors.LogAPIResponse(p.Name(), len(rawText), time.Since(startTime))

	if strings.TrimSpace(rawText) == "" {
		return "", apperrors.NewEmptyResponseError(p.Name())
	}
	return rawText, nil
}

// formatResponse concatenates the text parts of every candidate.
func formatResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	var formattedContent strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				formattedContent.WriteString(string(text))
			}
		}
	}
	return formattedContent.String()
}

func wrapGoogleError(err error) error {
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "api key not valid") ||
		strings.Contains(errMsg, "unauthenticated") ||
		strings.Contains(errMsg, "permission denied") {
		return apperrors.NewAuthenticationError("Google")
	}
	return apperrors.NewAIProviderError("Google", err)
}
