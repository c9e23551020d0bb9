package app

import (
	"context"
	"fmt"

	apperrors "github.com/aigh/aigh/internal/pkg/errors"
	"github.com/aigh/aigh/internal/pkg/git"
	"github.com/aigh/aigh/internal/pkg/history"
	"github.com/aigh/aigh/internal/pkg/message"
	"github.com/aigh/aigh/internal/pkg/ui"
)

// CommitOptions contains options for the commit workflow.
type CommitOptions struct {
	// Editor opens the generated message in an editor before confirmation.
	Editor bool
	// Yes skips the confirmation prompt.
	Yes bool
}

// CommitService orchestrates the commit message workflow.
type CommitService struct {
	gitClient  git.Client
	generator  Generator
	uiManager  ui.Manager
	historyMgr history.Manager
}

// NewCommitService creates a new CommitService with the given dependencies.
// historyMgr may be nil.
func NewCommitService(gitClient git.Client, generator Generator, uiManager ui.Manager, historyMgr history.Manager) *CommitService {
	return &CommitService{
		gitClient:  gitClient,
		generator:  generator,
		uiManager:  uiManager,
		historyMgr: historyMgr,
	}
}

// Run reads the staged diff, generates a message, confirms it and commits.
// The error is non-nil only when the terminal itself fails.
// Workflow: get diff → generate → edit → display → confirm → commit → record
func (s *CommitService) Run(ctx context.Context, opts CommitOptions) (Outcome, error) {
	diff, err := s.gitClient.GetStagedDiff(ctx)
	if err != nil {
		reportFailure(s.uiManager, "Could not read staged changes. Aborting", err)
		return OutcomeDiffUnavailable, nil
	}
	if diff == "" {
		s.uiManager.ShowWarning("No staged changes to commit.")
		return OutcomeNoChanges, nil
	}

	spinner := s.uiManager.ShowSpinner("Generating commit message with AI...")
	spinner.Start()
	result := s.generator.GenerateCommitMessage(ctx, diff)
	spinner.Stop()

	if result.IsFallback() {
		reportFailure(s.uiManager, "Could not generate commit message. Aborting commit", result.Reason)
		return OutcomeGenerationFailed, nil
	}

	msg := result.Message
	edited := false
	if opts.Editor {
		text, err := s.uiManager.EditText("Edit Commit Message", msg)
		if err != nil {
			reportFailure(s.uiManager, "Could not edit commit message", err)
			return OutcomeEditFailed, nil
		}
		if text == "" {
			s.uiManager.ShowWarning("Empty commit message. Commit aborted by user.")
			return OutcomeDeclined, nil
		}
		edited = text != msg
		msg = text
	}

	s.uiManager.DisplayCommitMessage(msg, message.Validate(msg))

	if !opts.Yes {
		confirmed, err := s.uiManager.PromptConfirm("Use this commit message?")
		if err != nil {
			return OutcomeDeclined, fmt.Errorf("failed to prompt user: %w", err)
		}
		if !confirmed {
			s.uiManager.ShowWarning("Commit aborted by user.")
			return OutcomeDeclined, nil
		}
	}

	if err := s.gitClient.Commit(ctx, msg); err != nil {
		reportFailure(s.uiManager, "Failed to commit changes", err)
		return OutcomeApplyFailed, nil
	}
	s.uiManager.ShowSuccess("Successfully committed changes!")

	s.record(&history.Entry{
		Kind:        history.KindCommit,
		Title:       msg,
		DiffSummary: git.Summarize(diff).String(),
		Provider:    result.Provider,
		Edited:      edited,
	})
	return OutcomeApplied, nil
}

func (s *CommitService) record(entry *history.Entry) {
	if s.historyMgr == nil {
		return
	}
	if err := s.historyMgr.Save(entry); err != nil {
		apperrors.Warn("Failed to save history: %v", err)
	}
}
