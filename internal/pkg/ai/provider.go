// Package ai turns diffs into commit messages and pull request descriptions
// using one of several interchangeable text-generation backends.
package ai

import (
	"context"
)

const (
	// DefaultTemperature is the sampling temperature for every request.
	DefaultTemperature = 0.7

	// CommitMaxTokens bounds the output of a commit message request.
	CommitMaxTokens = 256

	// PRMaxTokens bounds the output of a pull request description request.
	PRMaxTokens = 1024
)

// Prompt is a single rendered request for a backend.
type Prompt struct {
	System    string
	User      string
	MaxTokens int
}

// ProviderConfig contains configuration for an AI provider.
type ProviderConfig struct {
	APIKey      string
	Model       string
	Endpoint    string
	Temperature float32
}

// Provider is the one capability the gateway needs from a backend.
type Provider interface {
	Name() string
	// Generate returns the backend's raw text. Empty text is reported as an error.
	Generate(ctx context.Context, prompt *Prompt) (string, error)
}

// ProviderFactory builds a Provider for a resolved name and configuration.
type ProviderFactory func(name string, cfg ProviderConfig) (Provider, error)
