package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aigh/aigh/internal/pkg/ai"
	apperrors "github.com/aigh/aigh/internal/pkg/errors"
	"github.com/aigh/aigh/internal/pkg/history"
)

const sampleDiff = "diff --git a/file.ts b/file.ts\n+console.log(1)"

func generated(msg string) ai.CommitResult {
	return ai.CommitResult{Message: msg, Status: ai.StatusGenerated, Provider: "OpenAI"}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "applied", OutcomeApplied.String())
	assert.Equal(t, "same-branch", OutcomeSameBranch.String())
	assert.Equal(t, "apply-failed", OutcomeApplyFailed.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}

func TestCommitService_Run_ConfirmedCommit(t *testing.T) {
	ctx := context.Background()
	gitClient := new(MockGitClient)
	gen := new(MockGenerator)
	uiMgr := quietUI()
	hist := new(MockHistoryManager)

	gitClient.On("GetStagedDiff", ctx).Return(sampleDiff, nil)
	gen.On("GenerateCommitMessage", ctx, sampleDiff).Return(generated("feat: add log line"))
	uiMgr.On("DisplayCommitMessage", "feat: add log line", mock.Anything).Return()
	uiMgr.On("PromptConfirm", mock.Anything).Return(true, nil)
	gitClient.On("Commit", ctx, "feat: add log line").Return(nil)
	hist.On("Save", mock.MatchedBy(func(e *history.Entry) bool {
		return e.Kind == history.KindCommit &&
			e.Title == "feat: add log line" &&
			e.Provider == "OpenAI" &&
			e.DiffSummary == "1 file changed, +1 -0" &&
			!e.Edited
	})).Return(nil)

	svc := NewCommitService(gitClient, gen, uiMgr, hist)
	outcome, err := svc.Run(ctx, CommitOptions{})

	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)
	gitClient.AssertExpectations(t)
	gen.AssertExpectations(t)
	hist.AssertExpectations(t)
	uiMgr.AssertCalled(t, "ShowSuccess", "Successfully committed changes!")
}

func TestCommitService_Run_EmptyDiff(t *testing.T) {
	ctx := context.Background()
	gitClient := new(MockGitClient)
	gen := new(MockGenerator)
	uiMgr := quietUI()

	gitClient.On("GetStagedDiff", ctx).Return("", nil)

	svc := NewCommitService(gitClient, gen, uiMgr, nil)
	outcome, err := svc.Run(ctx, CommitOptions{})

	require.NoError(t, err)
	assert.Equal(t, OutcomeNoChanges, outcome)
	gen.AssertNotCalled(t, "GenerateCommitMessage", mock.Anything, mock.Anything)
	gitClient.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
	uiMgr.AssertCalled(t, "ShowWarning", "No staged changes to commit.")
}

func TestCommitService_Run_DiffUnavailable(t *testing.T) {
	ctx := context.Background()
	gitClient := new(MockGitClient)
	gen := new(MockGenerator)

	gitClient.On("GetStagedDiff", ctx).Return("", apperrors.NewGitError(errors.New("exit status 128"), "not a git repository"))

	svc := NewCommitService(gitClient, gen, quietUI(), nil)
	outcome, err := svc.Run(ctx, CommitOptions{})

	require.NoError(t, err)
	assert.Equal(t, OutcomeDiffUnavailable, outcome)
	gen.AssertNotCalled(t, "GenerateCommitMessage", mock.Anything, mock.Anything)
}

func TestCommitService_Run_FallbackAborts(t *testing.T) {
	ctx := context.Background()
	gitClient := new(MockGitClient)
	gen := new(MockGenerator)
	uiMgr := quietUI()

	gitClient.On("GetStagedDiff", ctx).Return(sampleDiff, nil)
	gen.On("GenerateCommitMessage", ctx, sampleDiff).Return(ai.CommitResult{
		Message:  "chore: Failed to generate commit message with OpenAI",
		Status:   ai.StatusFallback,
		Provider: "OpenAI",
		Reason:   apperrors.NewAuthenticationError("OpenAI"),
	})

	svc := NewCommitService(gitClient, gen, uiMgr, nil)
	outcome, err := svc.Run(ctx, CommitOptions{Yes: true})

	require.NoError(t, err)
	assert.Equal(t, OutcomeGenerationFailed, outcome)
	gitClient.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
	uiMgr.AssertNotCalled(t, "PromptConfirm", mock.Anything)
	uiMgr.AssertCalled(t, "ShowInfo", "Please check your API key is valid and has not expired")
}

func TestCommitService_Run_Declined(t *testing.T) {
	ctx := context.Background()
	gitClient := new(MockGitClient)
	gen := new(MockGenerator)
	uiMgr := quietUI()
	hist := new(MockHistoryManager)

	gitClient.On("GetStagedDiff", ctx).Return(sampleDiff, nil)
	gen.On("GenerateCommitMessage", ctx, sampleDiff).Return(generated("feat: add log line"))
	uiMgr.On("DisplayCommitMessage", mock.Anything, mock.Anything).Return()
	uiMgr.On("PromptConfirm", mock.Anything).Return(false, nil)

	svc := NewCommitService(gitClient, gen, uiMgr, hist)
	outcome, err := svc.Run(ctx, CommitOptions{})

	require.NoError(t, err)
	assert.Equal(t, OutcomeDeclined, outcome)
	gitClient.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
	hist.AssertNotCalled(t, "Save", mock.Anything)
	uiMgr.AssertCalled(t, "ShowWarning", "Commit aborted by user.")
}

func TestCommitService_Run_PromptError(t *testing.T) {
	ctx := context.Background()
	gitClient := new(MockGitClient)
	gen := new(MockGenerator)
	uiMgr := quietUI()

	gitClient.On("GetStagedDiff", ctx).Return(sampleDiff, nil)
	gen.On("GenerateCommitMessage", ctx, sampleDiff).Return(generated("feat: add log line"))
	uiMgr.On("DisplayCommitMessage", mock.Anything, mock.Anything).Return()
	uiMgr.On("PromptConfirm", mock.Anything).Return(false, errors.New("tty closed"))

	svc := NewCommitService(gitClient, gen, uiMgr, nil)
	_, err := svc.Run(ctx, CommitOptions{})

	require.Error(t, err)
	gitClient.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
}

func TestCommitService_Run_YesSkipsConfirmation(t *testing.T) {
	ctx := context.Background()
	gitClient := new(MockGitClient)
	gen := new(MockGenerator)
	uiMgr := quietUI()

	gitClient.On("GetStagedDiff", ctx).Return(sampleDiff, nil)
	gen.On("GenerateCommitMessage", ctx, sampleDiff).Return(generated("feat: add log line"))
	uiMgr.On("DisplayCommitMessage", mock.Anything, mock.Anything).Return()
	gitClient.On("Commit", ctx, "feat: add log line").Return(nil)

	svc := NewCommitService(gitClient, gen, uiMgr, nil)
	outcome, err := svc.Run(ctx, CommitOptions{Yes: true})

	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)
	uiMgr.AssertNotCalled(t, "PromptConfirm", mock.Anything)
}

func TestCommitService_Run_EditedMessage(t *testing.T) {
	ctx := context.Background()
	gitClient := new(MockGitClient)
	gen := new(MockGenerator)
	uiMgr := quietUI()
	hist := new(MockHistoryManager)

	gitClient.On("GetStagedDiff", ctx).Return(sampleDiff, nil)
	gen.On("GenerateCommitMessage", ctx, sampleDiff).Return(generated("feat: add log line"))
	uiMgr.On("EditText", mock.Anything, "feat: add log line").Return("fix(log): remove stray output", nil)
	uiMgr.On("DisplayCommitMessage", "fix(log): remove stray output", mock.Anything).Return()
	uiMgr.On("PromptConfirm", mock.Anything).Return(true, nil)
	gitClient.On("Commit", ctx, "fix(log): remove stray output").Return(nil)
	hist.On("Save", mock.MatchedBy(func(e *history.Entry) bool { return e.Edited })).Return(nil)

	svc := NewCommitService(gitClient, gen, uiMgr, hist)
	outcome, err := svc.Run(ctx, CommitOptions{Editor: true})

	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)
	gitClient.AssertExpectations(t)
	hist.AssertExpectations(t)
}

func TestCommitService_Run_EditorClearedMessage(t *testing.T) {
	ctx := context.Background()
	gitClient := new(MockGitClient)
	gen := new(MockGenerator)
	uiMgr := quietUI()

	gitClient.On("GetStagedDiff", ctx).Return(sampleDiff, nil)
	gen.On("GenerateCommitMessage", ctx, sampleDiff).Return(generated("feat: add log line"))
	uiMgr.On("EditText", mock.Anything, mock.Anything).Return("", nil)

	svc := NewCommitService(gitClient, gen, uiMgr, nil)
	outcome, err := svc.Run(ctx, CommitOptions{Editor: true})

	require.NoError(t, err)
	assert.Equal(t, OutcomeDeclined, outcome)
	gitClient.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
}

func TestCommitService_Run_EditorFailure(t *testing.T) {
	ctx := context.Background()
	gitClient := new(MockGitClient)
	gen := new(MockGenerator)
	uiMgr := quietUI()

	gitClient.On("GetStagedDiff", ctx).Return(sampleDiff, nil)
	gen.On("GenerateCommitMessage", ctx, sampleDiff).Return(generated("feat: add log line"))
	uiMgr.On("EditText", mock.Anything, mock.Anything).Return("", apperrors.NewEditorError("vim", errors.New("exit status 1")))

	svc := NewCommitService(gitClient, gen, uiMgr, nil)
	outcome, err := svc.Run(ctx, CommitOptions{Editor: true})

	require.NoError(t, err)
	assert.Equal(t, OutcomeEditFailed, outcome)
	gitClient.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
}

func TestCommitService_Run_CommitFailure(t *testing.T) {
	ctx := context.Background()
	gitClient := new(MockGitClient)
	gen := new(MockGenerator)
	uiMgr := quietUI()
	hist := new(MockHistoryManager)

	gitClient.On("GetStagedDiff", ctx).Return(sampleDiff, nil)
	gen.On("GenerateCommitMessage", ctx, sampleDiff).Return(generated("feat: add log line"))
	uiMgr.On("DisplayCommitMessage", mock.Anything, mock.Anything).Return()
	gitClient.On("Commit", ctx, "feat: add log line").Return(apperrors.NewGitError(errors.New("exit status 1"), "hook rejected"))

	svc := NewCommitService(gitClient, gen, uiMgr, hist)
	outcome, err := svc.Run(ctx, CommitOptions{Yes: true})

	require.NoError(t, err)
	assert.Equal(t, OutcomeApplyFailed, outcome)
	hist.AssertNotCalled(t, "Save", mock.Anything)
	uiMgr.AssertNotCalled(t, "ShowSuccess", mock.Anything)
}

func TestCommitService_Run_HistoryFailureOnlyWarns(t *testing.T) {
	ctx := context.Background()
	gitClient := new(MockGitClient)
	gen := new(MockGenerator)
	hist := new(MockHistoryManager)

	gitClient.On("GetStagedDiff", ctx).Return(sampleDiff, nil)
	gen.On("GenerateCommitMessage", ctx, sampleDiff).Return(generated("feat: add log line"))
	uiMgr := quietUI()
	uiMgr.On("DisplayCommitMessage", mock.Anything, mock.Anything).Return()
	gitClient.On("Commit", ctx, "feat: add log line").Return(nil)
	hist.On("Save", mock.Anything).Return(errors.New("disk full"))

	svc := NewCommitService(gitClient, gen, uiMgr, hist)
	outcome, err := svc.Run(ctx, CommitOptions{Yes: true})

	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)
}

func TestCommitService_Run_DisplaysLintWarnings(t *testing.T) {
	ctx := context.Background()
	gitClient := new(MockGitClient)
	gen := new(MockGenerator)
	uiMgr := quietUI()

	gitClient.On("GetStagedDiff", ctx).Return(sampleDiff, nil)
	gen.On("GenerateCommitMessage", ctx, sampleDiff).Return(generated("Add log line."))
	uiMgr.On("DisplayCommitMessage", "Add log line.", mock.MatchedBy(func(w []string) bool {
		return len(w) > 0
	})).Return()
	uiMgr.On("PromptConfirm", mock.Anything).Return(false, nil)

	svc := NewCommitService(gitClient, gen, uiMgr, nil)
	_, err := svc.Run(ctx, CommitOptions{})

	require.NoError(t, err)
	uiMgr.AssertExpectations(t)
}
