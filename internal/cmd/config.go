package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aigh/aigh/internal/pkg/config"
	apperrors "github.com/aigh/aigh/internal/pkg/errors"
	"github.com/aigh/aigh/internal/pkg/ui"
)

// NewConfigCmd creates the config command and its subcommands.
func NewConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage aigh settings",
		Long: `View or change aigh settings.

Settings live in ~/.aigh/config.json (or $AIGH_CONFIG), written with
permissions 0600 because the file may hold API keys. Valid keys are:
  ` + strings.Join(config.ValidKeys, ", "),
	}

	configCmd.AddCommand(newConfigGetCmd())
	configCmd.AddCommand(newConfigSetCmd())
	configCmd.AddCommand(newConfigSetupCmd())
	configCmd.AddCommand(newConfigPathCmd())

	return configCmd
}

// newConfigGetCmd creates the 'config get' subcommand.
func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Show one setting, or all of them",
		Long: `Show a setting value. Without a key, every setting is listed.

API keys are masked. A key found only in the environment is annotated
with the variable it came from.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newConfigManager(cmd)
			if err != nil {
				return err
			}
			settings, err := mgr.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				key := args[0]
				if !config.IsValidKey(key) {
					return apperrors.NewInvalidConfigKeyError(key, config.ValidKeys)
				}
				return printSetting(out, mgr, settings, key, "")
			}

			fmt.Fprintln(out, "Current aigh configuration:")
			stored := mgr.List()
			for _, key := range config.SortedKeys(stored) {
				if !config.IsValidKey(key) {
					// Passed through from the file; aigh does not read it.
					fmt.Fprintf(out, "  %s: %v (unused)\n", key, stored[key])
					continue
				}
				if err := printSetting(out, mgr, settings, key, "  "); err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "\nConfig file location: %s\n", mgr.GetConfigPath())
			return nil
		},
	}
}

// printSetting prints key with its display value.
func printSetting(out io.Writer, mgr config.Manager, settings *config.Settings, key, indent string) error {
	value, err := mgr.Get(key)
	if err != nil {
		return err
	}
	display := config.DisplayValue(key, value)

	if value == "" {
		if info, ok := providerForKey(key); ok {
			if envKey, source := settings.APIKey(info.Name); source == config.SourceEnv {
				display = fmt.Sprintf("%s (from environment)", config.DisplayValue(key, envKey))
			}
		}
	}

	fmt.Fprintf(out, "%s%s: %s\n", indent, key, display)
	return nil
}

// providerForKey returns the provider whose credential is stored under key.
func providerForKey(key string) (config.ProviderInfo, bool) {
	for _, name := range config.Providers {
		if info, ok := config.LookupProvider(name); ok && info.APIKeyKey == key {
			return info, true
		}
	}
	return config.ProviderInfo{}, false
}

// newConfigSetCmd creates the 'config set' subcommand.
func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a setting value",
		Long: `Set a setting value and save it.

Examples:
  aigh config set ai_provider anthropic
  aigh config set anthropic_api_key sk-ant-xxx
  aigh config set model claude-sonnet-4-5`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			mgr, err := newConfigManager(cmd)
			if err != nil {
				return err
			}
			if err := mgr.Set(key, value); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Successfully set %s to %s\n", key, config.DisplayValue(key, value))

			switch {
			case config.IsAPIKeyKey(key):
				fmt.Fprintf(out, "API key saved to %s. It won't be displayed fully.\n", mgr.GetConfigPath())
			case key == config.KeyProvider:
				settings, err := mgr.Load()
				if err != nil {
					return err
				}
				provider := settings.ProviderName()
				if _, source := settings.APIKey(provider); source == config.SourceNone {
					info, _ := config.LookupProvider(provider)
					fmt.Fprintf(out, "Switched provider to %s. Remember to set the %s!\n", provider, info.APIKeyKey)
				}
			}
			return nil
		},
	}
}

// newConfigSetupCmd creates the 'config setup' subcommand.
func newConfigSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Choose provider, model and API key interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newConfigManager(cmd)
			if err != nil {
				return err
			}
			return ui.RunInteractiveSetup(mgr, ui.NewDefaultManager(colorEnabled(), ""))
		},
	}
}

// newConfigPathCmd creates the 'config path' subcommand.
func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newConfigManager(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), mgr.GetConfigPath())
			return nil
		},
	}
}
