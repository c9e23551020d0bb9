// Package cmd contains the CLI command definitions for aigh.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aigh/aigh/internal/pkg/config"
	apperrors "github.com/aigh/aigh/internal/pkg/errors"
)

// DebugEnvVar turns on debug logging when set to 1 or true.
const DebugEnvVar = "AIGH_DEBUG"

// NewRootCmd creates the root command for the aigh CLI.
func NewRootCmd(version, commitHash, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aigh",
		Short: "AI-generated commit messages and pull request descriptions",
		Long: `aigh reads your staged changes, or the changes on your branch, and asks an
AI provider (OpenAI, Anthropic or Google) for a Conventional Commits message
or a pull request title and description. You review the result before
anything is committed or opened.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = apperrors.Close()
		},
	}

	rootCmd.SetVersionTemplate(versionText(version, commitHash, date))

	rootCmd.PersistentFlags().Bool("debug", false, "Log prompts, responses and provider calls (also AIGH_DEBUG=1)")
	rootCmd.PersistentFlags().String("config", "", "Settings file path (default: ~/.aigh/config.json)")

	rootCmd.AddCommand(NewCommitCmd())
	rootCmd.AddCommand(NewPRCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewHistoryCmd())
	rootCmd.AddCommand(newVersionCmd(version, commitHash, date))

	return rootCmd
}

func versionText(version, commitHash, date string) string {
	return "aigh " + version + "\nCommit: " + commitHash + "\nBuilt:  " + date + "\n"
}

func newVersionCmd(version, commitHash, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), versionText(version, commitHash, date))
		},
	}
}

// IsDebug reports whether debug mode is on for cmd.
func IsDebug(cmd *cobra.Command) bool {
	if debug, _ := cmd.Root().PersistentFlags().GetBool("debug"); debug {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv(DebugEnvVar))) {
	case "1", "true":
		return true
	}
	return false
}

// configureLogging sets the log level and, in debug mode, tees a rotated log file.
func configureLogging(cmd *cobra.Command) {
	debug := IsDebug(cmd)
	opts := apperrors.LoggerOptions{Output: os.Stderr, Verbose: debug}
	if debug {
		if dir, err := config.DefaultDir(); err == nil {
			opts.LogFile = filepath.Join(dir, "logs", "aigh.log")
		}
	}
	apperrors.Configure(opts)
}

// newConfigManager builds the settings manager honoring --config.
func newConfigManager(cmd *cobra.Command) (*config.ViperManager, error) {
	configPath, _ := cmd.Flags().GetString("config")
	mgr, err := config.NewManager(configPath)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrFileSystemError, "failed to locate settings file")
	}
	if configPath != "" {
		apperrors.Debug("Using custom config path: %s", configPath)
	}
	return mgr, nil
}
