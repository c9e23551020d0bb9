package ai

import (
	"errors"

	"github.com/tmc/langchaingo/llms/anthropic"

	"github.com/aigh/aigh/internal/pkg/config"
)

// NewAnthropicProvider creates a Claude-backed provider via langchaingo.
func NewAnthropicProvider(cfg ProviderConfig) (*LangChainWrapper, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("API key is required for Anthropic provider")
	}

	info, _ := config.LookupProvider(config.ProviderAnthropic)
	if cfg.Model == "" {
		cfg.Model = info.DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}

	opts := []anthropic.Option{
		anthropic.WithToken(cfg.APIKey),
		anthropic.WithModel(cfg.Model),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.Endpoint))
	}

	llm, err := anthropic.New(opts...)
	if err != nil {
		return nil, err
	}

	return NewLangChainWrapper(llm, cfg, config.ProviderAnthropic), nil
}
