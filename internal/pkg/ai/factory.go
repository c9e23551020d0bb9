package ai

import (
	"github.com/aigh/aigh/internal/pkg/config"
	apperrors "github.com/aigh/aigh/internal/pkg/errors"
)

// NewProvider creates a provider for name. Each call builds a fresh client so a
// changed credential or model is always honored.
func NewProvider(name string, cfg ProviderConfig) (Provider, error) {
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}

	switch name {
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg)

	case config.ProviderAnthropic:
		return NewAnthropicProvider(cfg)

	case config.ProviderGoogle:
		return NewGoogleProvider(cfg)

	default:
		return nil, apperrors.NewUnsupportedProviderError(name, config.Providers)
	}
}
