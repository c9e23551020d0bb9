package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/aigh/aigh/internal/app"
	"github.com/aigh/aigh/internal/pkg/ai"
	apperrors "github.com/aigh/aigh/internal/pkg/errors"
	"github.com/aigh/aigh/internal/pkg/git"
	"github.com/aigh/aigh/internal/pkg/hosting"
	"github.com/aigh/aigh/internal/pkg/prtemplate"
)

// PRFlags holds the flags for the pr new command.
type PRFlags struct {
	Base    string
	Draft   bool
	NoDraft bool
	Web     bool
	Editor  bool
	Yes     bool
}

// IsDraft resolves --draft and --no-draft.
func (f *PRFlags) IsDraft() bool {
	return f.Draft && !f.NoDraft
}

// NewPRCmd creates the pr command and its subcommands.
func NewPRCmd() *cobra.Command {
	prCmd := &cobra.Command{
		Use:   "pr",
		Short: "Work with pull requests",
	}
	prCmd.AddCommand(newPRNewCmd())
	return prCmd
}

func newPRNewCmd() *cobra.Command {
	flags := &PRFlags{}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Open a pull request with an AI-generated title and description",
		Long: `Diff the current branch against the base branch, generate a pull request
title and description, and open it with the GitHub CLI once you confirm.

A pull request template in .github/, docs/ or the repository root is used
as the base for the description.

Examples:
  aigh pr new                              # Draft PR against main
  aigh pr new --base develop --no-draft    # Ready-for-review PR against develop
  aigh pr new --web                        # Finish in the browser
  aigh pr new -e                           # Edit title and body first`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPRNew(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Base, "base", "b", app.DefaultBaseBranch, "Base branch to diff against and merge into")
	cmd.Flags().BoolVar(&flags.Draft, "draft", true, "Create the PR as a draft")
	cmd.Flags().BoolVar(&flags.NoDraft, "no-draft", false, "Create the PR as ready for review")
	cmd.Flags().BoolVarP(&flags.Web, "web", "w", false, "Open the PR in the browser to finish creating it")
	cmd.Flags().BoolVarP(&flags.Editor, "editor", "e", false, "Open the generated title and body in your editor first")
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Skip confirmation and create the PR immediately")

	return cmd
}

// runPRNew wires the pull request workflow.
func runPRNew(cmd *cobra.Command, flags *PRFlags) error {
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

	root, err := os.Getwd()
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrFileSystemError, "failed to read working directory")
	}

	service := app.NewPRService(
		gitClient,
		hosting.NewClient(),
		ai.NewGateway(cfgMgr),
		prtemplate.NewReader(root),
		uiMgr,
		newHistoryManager(cfgMgr),
	)

	outcome, err := service.Run(ctx, app.PROptions{
		Base:   flags.Base,
		Draft:  flags.IsDraft(),
		Web:    flags.Web,
		Editor: flags.Editor,
		Yes:    flags.Yes,
	})
	apperrors.Debug("pr new finished: %s", outcome)
	return err
}
