package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aigh/aigh/internal/pkg/history"
)

const (
	// DefaultHistoryLimit is the default number of history entries to display.
	DefaultHistoryLimit = 20
)

// NewHistoryCmd creates the history command and its subcommands.
func NewHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "View applied commit messages and pull requests",
		Long: `View the commit messages and pull requests aigh applied.

By default, displays the most recent 20 entries. Use --limit to change the number of entries shown.

Examples:
  aigh history           # Show last 20 entries
  aigh history --limit 5 # Show last 5 entries
  aigh history clear     # Clear all history`,
		Args: cobra.NoArgs,
		RunE: runHistoryList,
	}

	historyCmd.Flags().IntP("limit", "l", DefaultHistoryLimit, "Number of entries to display")

	historyCmd.AddCommand(newHistoryClearCmd())

	return historyCmd
}

// runHistoryList displays the history entries.
func runHistoryList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	mgr, err := newConfigManager(cmd)
	if err != nil {
		return err
	}

	entries, err := newHistoryManager(mgr).List(limit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No history entries found.")
		return nil
	}

	fmt.Fprintf(out, "Showing %d most recent entries:\n\n", len(entries))

	// Most recent first
	for i := len(entries) - 1; i >= 0; i-- {
		printHistoryEntry(out, entries[i], len(entries)-i)
	}

	return nil
}

// printHistoryEntry formats and prints a single history entry.
func printHistoryEntry(out io.Writer, entry *history.Entry, index int) {
	timestamp := entry.Timestamp.Format(time.RFC3339)

	label := string(entry.Kind)
	if entry.Edited {
		label += ", edited"
	}
	fmt.Fprintf(out, "[%d] %s (%s)\n", index, timestamp, label)

	if entry.Provider != "" {
		fmt.Fprintf(out, "    Provider: %s\n", entry.Provider)
	}
	if entry.Kind == history.KindPR {
		fmt.Fprintf(out, "    Branch: %s -> %s\n", entry.Branch, entry.Base)
		if entry.URL != "" {
			fmt.Fprintf(out, "    URL: %s\n", entry.URL)
		}
	}

	heading := "Message"
	if entry.Kind == history.KindPR {
		heading = "Title"
	}
	fmt.Fprintf(out, "    %s:\n", heading)
	for _, line := range strings.Split(entry.Title, "\n") {
		fmt.Fprintf(out, "      %s\n", line)
	}

	if entry.DiffSummary != "" {
		fmt.Fprintf(out, "    Diff Summary: %s\n", entry.DiffSummary)
	}

	fmt.Fprintln(out)
}

// newHistoryClearCmd creates the 'history clear' subcommand.
func newHistoryClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all history entries",
		Long: `Delete all entries from the history file.

This action cannot be undone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newConfigManager(cmd)
			if err != nil {
				return err
			}

			if err := newHistoryManager(mgr).Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "History cleared successfully.")
			return nil
		},
	}
}
