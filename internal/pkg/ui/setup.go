package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/aigh/aigh/internal/pkg/config"
	"github.com/aigh/aigh/internal/pkg/security"
)

// customModelOption is the select value that switches to free-text model entry.
const customModelOption = "__custom__"

// SetupChoices is what the wizard collected.
type SetupChoices struct {
	Provider string
	Model    string
	// APIKey is empty when the stored key is kept.
	APIKey string
}

// Values returns the settings to persist for c.
func (c SetupChoices) Values() map[string]string {
	values := map[string]string{
		config.KeyProvider: c.Provider,
		config.KeyModel:    c.Model,
	}
	if c.APIKey != "" {
		if info, ok := config.LookupProvider(c.Provider); ok {
			values[info.APIKeyKey] = c.APIKey
		}
	}
	return values
}

// providerOptions lists the providers, labeled for display.
func providerOptions() []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(config.Providers))
	for _, name := range config.Providers {
		info, _ := config.LookupProvider(name)
		options = append(options, huh.NewOption(info.Label, name))
	}
	return options
}

// modelOptions lists the models for info. The first is marked as recommended
// and a final option allows typing any model name.
func modelOptions(info config.ProviderInfo) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(info.Models)+1)
	for i, model := range info.Models {
		label := model
		if i == 0 {
			label += " (recommended)"
		}
		options = append(options, huh.NewOption(label, model))
	}
	return append(options, huh.NewOption("Custom model...", customModelOption))
}

func validateNotBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

// RunInteractiveSetup walks the user through provider, model and API key
// selection and saves the result in one write.
func RunInteractiveSetup(cfgMgr config.Manager, m Manager) error {
	current, err := cfgMgr.Load()
	if err != nil {
		return err
	}

	choices, err := collectSetupChoices(current, m)
	if err != nil {
		return err
	}

	if err := cfgMgr.SetValues(choices.Values()); err != nil {
		return err
	}

	m.ShowSuccess(fmt.Sprintf("Configuration saved to %s", cfgMgr.GetConfigPath()))
	return nil
}

func collectSetupChoices(current *config.Settings, m Manager) (SetupChoices, error) {
	choices := SetupChoices{Provider: current.ProviderName()}

	err := huh.NewSelect[string]().
		Title("Select AI Provider").
		Options(providerOptions()...).
		Value(&choices.Provider).
		Run()
	if err != nil {
		return choices, err
	}

	info, ok := config.LookupProvider(choices.Provider)
	if !ok {
		return choices, errors.New("unknown provider selected")
	}

	choices.Model = info.Models[0]
	err = huh.NewSelect[string]().
		Title(fmt.Sprintf("Select %s model", info.Label)).
		Options(modelOptions(info)...).
		Value(&choices.Model).
		Run()
	if err != nil {
		return choices, err
	}

	if choices.Model == customModelOption {
		choices.Model = ""
		err = huh.NewInput().
			Title("Model Name").
			Description(fmt.Sprintf("Any %s model identifier", info.Label)).
			Value(&choices.Model).
			Validate(validateNotBlank("model name")).
			Run()
		if err != nil {
			return choices, err
		}
		choices.Model = strings.TrimSpace(choices.Model)
	}

	if existing := current.StoredAPIKey(choices.Provider); existing != "" {
		replace := false
		err = huh.NewConfirm().
			Title(fmt.Sprintf("A %s API key is already saved (%s). Replace it?", info.Label, security.MaskAPIKey(existing))).
			Affirmative("Replace").
			Negative("Keep").
			Value(&replace).
			Run()
		if err != nil {
			return choices, err
		}
		if !replace {
			return choices, nil
		}
	}

	m.ShowInfo(security.DataNotice)

	err = huh.NewInput().
		Title(fmt.Sprintf("%s API Key", info.Label)).
		Description("Saved to the settings file with owner-only permissions").
		Value(&choices.APIKey).
		Password(true).
		Validate(validateNotBlank("API key")).
		Run()
	if err != nil {
		return choices, err
	}
	choices.APIKey = strings.TrimSpace(choices.APIKey)

	if err := security.ValidateAPIKeyFormat(choices.Provider, choices.APIKey); err != nil {
		m.ShowWarning("Warning: " + err.Error())
	}
	return choices, nil
}
