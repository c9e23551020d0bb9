// Package app contains the application layer with business orchestration logic.
package app

import (
	"context"
	"fmt"

	"github.com/aigh/aigh/internal/pkg/ai"
	apperrors "github.com/aigh/aigh/internal/pkg/errors"
	"github.com/aigh/aigh/internal/pkg/ui"
)

// Outcome is the terminal state of a command flow.
type Outcome int

const (
	// OutcomeApplied means the commit or pull request was created.
	OutcomeApplied Outcome = iota
	// OutcomeDeclined means the user said no, or cleared the text in the editor.
	OutcomeDeclined
	// OutcomeNoChanges means the diff was empty.
	OutcomeNoChanges
	// OutcomeDiffUnavailable means the diff could not be read.
	OutcomeDiffUnavailable
	// OutcomeBranchUnavailable means the current branch could not be determined.
	OutcomeBranchUnavailable
	// OutcomeSameBranch means the current branch is the base branch.
	OutcomeSameBranch
	// OutcomeGenerationFailed means the gateway returned a fallback.
	OutcomeGenerationFailed
	// OutcomeEditFailed means the editor could not be run.
	OutcomeEditFailed
	// OutcomeApplyFailed means git commit or gh pr create failed.
	OutcomeApplyFailed
)

// String returns the string representation of an Outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeDeclined:
		return "declined"
	case OutcomeNoChanges:
		return "no-changes"
	case OutcomeDiffUnavailable:
		return "diff-unavailable"
	case OutcomeBranchUnavailable:
		return "branch-unavailable"
	case OutcomeSameBranch:
		return "same-branch"
	case OutcomeGenerationFailed:
		return "generation-failed"
	case OutcomeEditFailed:
		return "edit-failed"
	case OutcomeApplyFailed:
		return "apply-failed"
	default:
		return "unknown"
	}
}

// Generator produces commit messages and pull request descriptions.
// *ai.Gateway implements it.
type Generator interface {
	GenerateCommitMessage(ctx context.Context, diff string) ai.CommitResult
	GeneratePRDescription(ctx context.Context, diff, prTemplate string) ai.PRResult
}

// reportFailure shows a failure with its cause and any suggestion attached to it.
func reportFailure(m ui.Manager, summary string, cause error) {
	if cause != nil {
		m.ShowError(fmt.Errorf("%s: %s", summary, apperrors.SanitizeErrorMessage(cause.Error())))
		if appErr := apperrors.GetAppError(cause); appErr != nil && appErr.Suggestion != "" {
			m.ShowInfo(appErr.Suggestion)
		}
		return
	}
	m.ShowError(fmt.Errorf("%s", summary))
}
