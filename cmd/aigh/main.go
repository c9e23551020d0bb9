// Package main is the entry point for the aigh CLI application.
// aigh generates commit messages and pull request descriptions from git diffs
// with a configurable AI provider.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/aigh/aigh/internal/cmd"
	apperrors "github.com/aigh/aigh/internal/pkg/errors"
)

// Version information - set via ldflags during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := cmd.NewRootCmd(version, commit, date)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if cmd.IsDebug(rootCmd) {
			fmt.Fprint(os.Stderr, apperrors.FormatErrorVerbose(err))
		} else {
			fmt.Fprintln(os.Stderr, apperrors.FormatError(err))
		}
		stop()
		os.Exit(apperrors.GetExitCode(err))
	}
}
