// Package config provides the settings store for aigh.
package config

import (
	"os"
	"slices"
	"strings"

	"github.com/aigh/aigh/internal/pkg/security"
)

// Recognized settings keys.
const (
	KeyProvider        = "ai_provider"
	KeyModel           = "model"
	KeyOpenAIAPIKey    = "openai_api_key"
	KeyAnthropicAPIKey = "anthropic_api_key"
	KeyGoogleAPIKey    = "google_api_key"
)

// Supported provider identifiers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGoogle    = "google"
)

// NotSetLabel is displayed for settings without a value.
const NotSetLabel = "(Not set)"

// Providers lists the supported providers. The first entry is the default.
var Providers = []string{ProviderOpenAI, ProviderAnthropic, ProviderGoogle}

// ValidKeys is the allow-list accepted by Set.
var ValidKeys = []string{KeyProvider, KeyModel, KeyOpenAIAPIKey, KeyAnthropicAPIKey, KeyGoogleAPIKey}

// ProviderInfo describes how a provider is configured.
type ProviderInfo struct {
	Name      string
	Label     string
	APIKeyKey string
	// EnvVars are consulted in order when the settings file has no key.
	EnvVars []string
	// BaseURLEnv names the variable that overrides the API endpoint.
	BaseURLEnv   string
	DefaultModel string
	// Models are offered by the setup wizard; the first is recommended.
	Models []string
}

var providerInfo = map[string]ProviderInfo{
	ProviderOpenAI: {
		Name:         ProviderOpenAI,
		Label:        "OpenAI",
		APIKeyKey:    KeyOpenAIAPIKey,
		EnvVars:      []string{"OPENAI_API_KEY"},
		BaseURLEnv:   "OPENAI_BASE_URL",
		DefaultModel: "gpt-4o-mini",
		Models: []string{
			"gpt-5.2-pro", "gpt-5.2", "gpt-5.1", "gpt-5", "gpt-5-mini", "gpt-5-nano",
			"gpt-4.5-preview", "gpt-4.1", "gpt-4.1-mini", "gpt-4o", "gpt-4o-mini",
			"o3", "o3-mini", "o1",
		},
	},
	ProviderAnthropic: {
		Name:         ProviderAnthropic,
		Label:        "Anthropic",
		APIKeyKey:    KeyAnthropicAPIKey,
		EnvVars:      []string{"ANTHROPIC_API_KEY"},
		BaseURLEnv:   "ANTHROPIC_BASE_URL",
		DefaultModel: "claude-3-5-haiku-latest",
		Models: []string{
			"claude-opus-4-5", "claude-opus-4-1", "claude-opus-4-0", "claude-sonnet-4-5",
			"claude-sonnet-4-0", "claude-haiku-4-5", "claude-3-7-sonnet-latest", "claude-3-5-haiku-latest",
		},
	},
	ProviderGoogle: {
		Name:         ProviderGoogle,
		Label:        "Google",
		APIKeyKey:    KeyGoogleAPIKey,
		EnvVars:      []string{"GOOGLE_GENERATIVE_AI_API_KEY", "GOOGLE_API_KEY"},
		BaseURLEnv:   "GOOGLE_GEMINI_BASE_URL",
		DefaultModel: "gemini-2.5-flash",
		Models: []string{
			"gemini-3-pro-preview", "gemini-3-flash-preview", "gemini-2.5-pro", "gemini-2.5-flash",
			"gemini-2.5-flash-lite", "gemini-2.0-flash", "gemini-1.5-pro", "gemma-3-27b-it",
		},
	},
}

// LookupProvider returns the description of a supported provider.
func LookupProvider(name string) (ProviderInfo, bool) {
	info, ok := providerInfo[name]
	return info, ok
}

// Endpoint returns the API endpoint override for the provider, or "" for the default.
func (p ProviderInfo) Endpoint() string {
	if p.BaseURLEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(p.BaseURLEnv))
}

// IsValidKey reports whether key is in the allow-list.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys, key)
}

// IsValidProvider reports whether name is a supported provider.
func IsValidProvider(name string) bool {
	_, ok := providerInfo[name]
	return ok
}

// IsAPIKeyKey reports whether key holds a credential.
func IsAPIKeyKey(key string) bool {
	return strings.HasSuffix(key, "_api_key")
}

// KeySource tells where a resolved credential came from.
type KeySource int

const (
	// SourceNone means no credential was found.
	SourceNone KeySource = iota
	// SourceFile means the settings file holds the credential.
	SourceFile
	// SourceEnv means the credential came from the environment.
	SourceEnv
)

// Settings is the decoded settings file.
type Settings struct {
	AIProvider      string `mapstructure:"ai_provider"`
	Model           string `mapstructure:"model"`
	OpenAIAPIKey    string `mapstructure:"openai_api_key"`
	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`
	GoogleAPIKey    string `mapstructure:"google_api_key"`
}

// ProviderName returns the configured provider, or the default when unset.
func (s *Settings) ProviderName() string {
	if s == nil || s.AIProvider == "" {
		return Providers[0]
	}
	return s.AIProvider
}

// ModelFor returns the configured model, or the provider's default when unset.
func (s *Settings) ModelFor(provider string) string {
	if s != nil && s.Model != "" {
		return s.Model
	}
	if info, ok := providerInfo[provider]; ok {
		return info.DefaultModel
	}
	return ""
}

// StoredAPIKey returns the credential held in the settings file for provider.
func (s *Settings) StoredAPIKey(provider string) string {
	if s == nil {
		return ""
	}
	switch provider {
	case ProviderOpenAI:
		return s.OpenAIAPIKey
	case ProviderAnthropic:
		return s.AnthropicAPIKey
	case ProviderGoogle:
		return s.GoogleAPIKey
	default:
		return ""
	}
}

// APIKey resolves the credential for provider: settings first, then environment.
func (s *Settings) APIKey(provider string) (string, KeySource) {
	if key := s.StoredAPIKey(provider); key != "" {
		return key, SourceFile
	}
	info, ok := providerInfo[provider]
	if !ok {
		return "", SourceNone
	}
	for _, name := range info.EnvVars {
		if v := os.Getenv(name); v != "" {
			return v, SourceEnv
		}
	}
	return "", SourceNone
}

// DisplayValue renders a settings value for the terminal, masking credentials.
func DisplayValue(key, value string) string {
	if value == "" {
		return NotSetLabel
	}
	if IsAPIKeyKey(key) {
		return security.MaskAPIKey(value)
	}
	return value
}

// Manager defines the interface for settings management.
type Manager interface {
	Load() (*Settings, error)
	Get(key string) (string, error)
	Set(key string, value string) error
	SetValues(values map[string]string) error
	List() map[string]interface{}
	GetConfigPath() string
	ConfigExists() bool
}
