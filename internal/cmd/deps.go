package cmd

import (
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/aigh/aigh/internal/pkg/config"
	"github.com/aigh/aigh/internal/pkg/history"
	"github.com/aigh/aigh/internal/pkg/ui"
)

// colorEnabled reports whether stdout is a terminal and NO_COLOR is unset.
func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// newUIManager picks the plain manager when nothing needs the user's input.
func newUIManager(yes, editor bool) ui.Manager {
	if yes && !editor {
		return ui.NewNonInteractiveManager(colorEnabled())
	}
	return ui.NewDefaultManager(colorEnabled(), "")
}

// newHistoryManager stores history beside the settings file.
func newHistoryManager(cfgMgr config.Manager) *history.FileManager {
	dir := filepath.Dir(cfgMgr.GetConfigPath())
	return history.NewFileManager(filepath.Join(dir, history.DefaultFileName), history.DefaultMaxEntries)
}
