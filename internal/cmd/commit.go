package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/aigh/aigh/internal/app"
	"github.com/aigh/aigh/internal/pkg/ai"
	apperrors "github.com/aigh/aigh/internal/pkg/errors"
	"github.com/aigh/aigh/internal/pkg/git"
)

// CommitFlags holds the flags for the commit command.
type CommitFlags struct {
	Editor bool
	Yes    bool
}

// NewCommitCmd creates the commit command.
func NewCommitCmd() *cobra.Command {
	flags := &CommitFlags{}

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Generate a commit message for staged changes and commit",
		Long: `Generate a Conventional Commits message from your staged changes,
then commit with it once you confirm.

Deleted files are left out of the diff sent to the AI provider.

Examples:
  aigh commit        # Review, then commit
  aigh commit -e     # Edit the message before committing
  aigh commit --yes  # Commit without asking`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.Editor, "editor", "e", false, "Open the generated message in your editor before committing")
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Skip confirmation and commit immediately")

	return cmd
}

// runCommit wires the commit workflow.
func runCommit(cmd *cobra.Command, flags *CommitFlags) error {
	ctx := cmd.Context()

	cfgMgr, err := newConfigManager(cmd)
	if err != nil {
		return err
	}

	gitClient := git.NewClient()
	uiMgr := newUIManager(flags.Yes, flags.Editor)
	if !gitClient.IsRepository(ctx) {
		uiMgr.ShowError(errors.New("not a git repository"))
		return nil
	}

	service := app.NewCommitService(
		gitClient,
		ai.NewGateway(cfgMgr),
		uiMgr,
		newHistoryManager(cfgMgr),
	)

	outcome, err := service.Run(ctx, app.CommitOptions{
		Editor: flags.Editor,
		Yes:    flags.Yes,
	})
	apperrors.Debug("commit finished: %s", outcome)
	return err
}
