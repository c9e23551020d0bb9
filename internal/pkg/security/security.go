// Package security provides credential handling helpers for aigh.
package security

import (
	"fmt"
	"regexp"
)

// APIKeyFormat defines the expected key shape per provider.
var APIKeyFormat = map[string]*regexp.Regexp{
	"openai":    regexp.MustCompile(`^sk-[a-zA-Z0-9_\-]{20,}$`),
	"anthropic": regexp.MustCompile(`^sk-ant-[a-zA-Z0-9_\-]{20,}$`),
	"google":    regexp.MustCompile(`^AIza[0-9A-Za-z_\-]{30,}$`),
}

// MaskAPIKey masks an API key for display as "abcd...wxyz".
// Keys too short to keep both ends hidden are fully masked.
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// ValidateAPIKeyFormat reports whether apiKey looks like a key issued by provider.
// A mismatch is advisory: providers change key formats, so callers warn rather than reject.
func ValidateAPIKeyFormat(provider, apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("API key is required for %s provider", provider)
	}

	if len(apiKey) < 20 {
		return fmt.Errorf("API key appears to be invalid (too short)")
	}

	pattern, exists := APIKeyFormat[provider]
	if exists && !pattern.MatchString(apiKey) {
		return fmt.Errorf("API key format looks unusual for the %s provider", provider)
	}

	return nil
}

// DataNotice is shown by the setup wizard before a key is stored.
const DataNotice = `aigh sends your staged diff, or the diff against the base branch,
to the configured AI provider to generate text. Do not stage secrets you
would not share with that provider.`
