package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/aigh/aigh/internal/pkg/config"
	apperrors "github.com/aigh/aigh/internal/pkg/errors"
)

// ErrEmptyDiff is the fallback reason when there is nothing to describe.
var ErrEmptyDiff = errors.New("no changes detected")

// NoChangesMessage is returned for an empty diff.
const NoChangesMessage = "feat: No changes detected"

// Status tells a generated result from a fallback.
type Status int

const (
	// StatusGenerated means the text came from a backend.
	StatusGenerated Status = iota
	// StatusFallback means generation failed and the text is a placeholder.
	StatusFallback
)

// String returns a human-readable status.
func (s Status) String() string {
	if s == StatusGenerated {
		return "generated"
	}
	return "fallback"
}

// CommitResult is the outcome of a commit message request.
type CommitResult struct {
	Message  string
	Status   Status
	Provider string
	// Reason is set for fallbacks.
	Reason error
}

// IsFallback reports whether the message is a placeholder.
func (r CommitResult) IsFallback() bool {
	return r.Status == StatusFallback
}

// PRResult is the outcome of a pull request description request.
type PRResult struct {
	Title    string
	Body     string
	Status   Status
	Provider string
	Reason   error
}

// IsFallback reports whether the title and body are placeholders.
func (r PRResult) IsFallback() bool {
	return r.Status == StatusFallback
}

// SettingsLoader supplies the settings read for each request.
type SettingsLoader interface {
	Load() (*config.Settings, error)
}

// Gateway selects a backend from settings and turns its output, or its
// failure, into a result. It never returns empty text.
type Gateway struct {
	settings SettingsLoader
	factory  ProviderFactory
	prompts  *PromptBuilder
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithProviderFactory replaces the factory used to build backends.
func WithProviderFactory(factory ProviderFactory) GatewayOption {
	return func(g *Gateway) {
		g.factory = factory
	}
}

// NewGateway creates a Gateway reading settings from settings.
func NewGateway(settings SettingsLoader, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		settings: settings,
		factory:  NewProvider,
		prompts:  NewPromptBuilder(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// resolve builds the backend for the configured provider. The returned label
// names the provider in fallback text even when resolution fails.
func (g *Gateway) resolve() (Provider, string, error) {
	s, err := g.settings.Load()
	if err != nil {
		return nil, "AI", err
	}

	name := s.ProviderName()
	info, ok := config.LookupProvider(name)
	if !ok {
		return nil, name, apperrors.NewUnsupportedProviderError(name, config.Providers)
	}

	key, source := s.APIKey(name)
	if key == "" {
		return nil, info.Label, apperrors.NewMissingAPIKeyError(info.Label, info.APIKeyKey, info.EnvVars[0])
	}

	model := s.ModelFor(name)
	apperrors.Debug("Using provider %s with model %s (key from %s)", name, model, sourceLabel(source))

	endpoint := info.Endpoint()
	if endpoint != "" {
		apperrors.Debug("Using %s endpoint %s from %s", name, endpoint, info.BaseURLEnv)
	}

	provider, err := g.factory(name, ProviderConfig{
		APIKey:      key,
		Model:       model,
		Endpoint:    endpoint,
		Temperature: DefaultTemperature,
	})
	if err != nil {
		return nil, info.Label, err
	}
	return provider, info.Label, nil
}

func sourceLabel(source config.KeySource) string {
	if source == config.SourceEnv {
		return "environment"
	}
	return "settings"
}

// unavailable reports whether err means the backend could not be built at all.
func unavailable(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrMissingAPIKey) ||
		apperrors.HasCode(err, apperrors.ErrUnsupportedProvider)
}

// GenerateCommitMessage returns a single-line conventional commit message for diff.
func (g *Gateway) GenerateCommitMessage(ctx context.Context, diff string) CommitResult {
	if diff == "" {
		return CommitResult{Message: NoChangesMessage, Status: StatusFallback, Reason: ErrEmptyDiff}
	}

	provider, label, err := g.resolve()
	if err == nil {
		var message string
		message, err = g.commitMessage(ctx, provider, diff)
		if err == nil {
			return CommitResult{Message: message, Status: StatusGenerated, Provider: label}
		}
	}

	// The caller reports the cause once the spinner has stopped.
	apperrors.Debug("Error generating commit message with %s: %v", label, err)
	fallback := fmt.Sprintf("chore: Failed to generate commit message with %s", label)
	if unavailable(err) {
		fallback = fmt.Sprintf("chore: %s client not available", label)
	}
	return CommitResult{Message: fallback, Status: StatusFallback, Provider: label, Reason: err}
}

func (g *Gateway) commitMessage(ctx context.Context, provider Provider, diff string) (string, error) {
	prompt, err := g.prompts.CommitPrompt(diff)
	if err != nil {
		return "", err
	}
	apperrors.LogPayload("prompt", prompt.User)

	raw, err := provider.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	apperrors.LogPayload("response", raw)

	message := FirstLine(CleanMessage(raw))
	if message == "" {
		return "", apperrors.NewEmptyResponseError(provider.Name())
	}
	return message, nil
}

// GeneratePRDescription returns a title and body for diff. prTemplate may be empty.
func (g *Gateway) GeneratePRDescription(ctx context.Context, diff, prTemplate string) PRResult {
	provider, label, err := g.resolve()
	if err == nil {
		var title, body string
		title, body, err = g.prDescription(ctx, provider, diff, prTemplate)
		if err == nil {
			return PRResult{Title: title, Body: body, Status: StatusGenerated, Provider: label}
		}
	}

	apperrors.Debug("Error generating PR description with %s: %v", label, err)
	title := fmt.Sprintf("chore: Failed to generate PR title with %s", label)
	if unavailable(err) {
		title = fmt.Sprintf("chore: %s client not available", label)
	}
	return PRResult{
		Title:    title,
		Body:     fmt.Sprintf("Failed to generate PR description.\n\nDiff:\n```diff\n%s\n```", diff),
		Status:   StatusFallback,
		Provider: label,
		Reason:   err,
	}
}

func (g *Gateway) prDescription(ctx context.Context, provider Provider, diff, prTemplate string) (string, string, error) {
	prompt, err := g.prompts.PRPrompt(diff, prTemplate)
	if err != nil {
		return "", "", err
	}
	apperrors.LogPayload("prompt", prompt.User)

	raw, err := provider.Generate(ctx, prompt)
	if err != nil {
		return "", "", err
	}
	apperrors.LogPayload("response", raw)

	title, body := ParseTitleAndBody(raw)
	if body == "" {
		return "", "", apperrors.NewEmptyResponseError(provider.Name())
	}
	return title, body, nil
}
