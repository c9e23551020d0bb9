package app

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/aigh/aigh/internal/pkg/errors"
	"github.com/aigh/aigh/internal/pkg/git"
	"github.com/aigh/aigh/internal/pkg/history"
	"github.com/aigh/aigh/internal/pkg/hosting"
	"github.com/aigh/aigh/internal/pkg/ui"
)

// DefaultBaseBranch is the base branch when none is given.
const DefaultBaseBranch = "main"

// TemplateReader loads the repository's pull request template.
type TemplateReader interface {
	Read() (content, path string, err error)
}

// PROptions contains options for the pull request workflow.
type PROptions struct {
	Base  string
	Draft bool
	Web   bool
	// Editor opens the title and body in an editor before confirmation.
	Editor bool
	// Yes skips the confirmation prompt.
	Yes bool
}

// PRService orchestrates the pull request workflow.
type PRService struct {
	gitClient     git.Client
	hostingClient hosting.Client
	generator     Generator
	templates     TemplateReader
	uiManager     ui.Manager
	historyMgr    history.Manager
}

// NewPRService creates a new PRService. templates and historyMgr may be nil.
func NewPRService(
	gitClient git.Client,
	hostingClient hosting.Client,
	generator Generator,
	templates TemplateReader,
	uiManager ui.Manager,
	historyMgr history.Manager,
) *PRService {
	return &PRService{
		gitClient:     gitClient,
		hostingClient: hostingClient,
		generator:     generator,
		templates:     templates,
		uiManager:     uiManager,
		historyMgr:    historyMgr,
	}
}

// Run diffs the current branch against the base, generates a title and body,
// confirms them and opens the pull request.
// The error is non-nil only when the terminal itself fails.
func (s *PRService) Run(ctx context.Context, opts PROptions) (Outcome, error) {
	base := strings.TrimSpace(opts.Base)
	if base == "" {
		base = DefaultBaseBranch
	}

	branch, err := s.gitClient.GetCurrentBranch(ctx)
	if err != nil {
		reportFailure(s.uiManager, "Could not determine current branch. Aborting", err)
		return OutcomeBranchUnavailable, nil
	}
	if branch == base {
		s.uiManager.ShowError(fmt.Errorf("cannot create PR from branch %q to itself", branch))
		return OutcomeSameBranch, nil
	}
	s.uiManager.ShowInfo(fmt.Sprintf("Current branch: %s", branch))
	s.uiManager.ShowInfo(fmt.Sprintf("Base branch: %s", base))

	diff, err := s.gitClient.GetDiffFromBase(ctx, base)
	if err != nil {
		reportFailure(s.uiManager, "Could not get diff from base branch. Aborting", err)
		return OutcomeDiffUnavailable, nil
	}
	if diff == "" {
		s.uiManager.ShowWarning("No changes detected between current branch and base branch.")
		return OutcomeNoChanges, nil
	}

	prTemplate := s.readTemplate()

	spinner := s.uiManager.ShowSpinner("Generating PR title and description with AI...")
	spinner.Start()
	result := s.generator.GeneratePRDescription(ctx, diff, prTemplate)
	spinner.Stop()

	if result.IsFallback() {
		reportFailure(s.uiManager, "Could not generate PR title/description. Aborting", result.Reason)
		return OutcomeGenerationFailed, nil
	}

	title, body := result.Title, result.Body
	edited := false
	if opts.Editor {
		text, err := s.uiManager.EditText("Edit Pull Request", title+"\n\n"+body)
		if err != nil {
			reportFailure(s.uiManager, "Could not edit PR description", err)
			return OutcomeEditFailed, nil
		}
		newTitle, newBody := SplitEdited(text)
		if newTitle == "" {
			s.uiManager.ShowWarning("Empty PR title. PR creation aborted by user.")
			return OutcomeDeclined, nil
		}
		edited = newTitle != title || newBody != body
		title, body = newTitle, newBody
	}

	s.uiManager.DisplayPullRequest(title, body)

	if !opts.Yes {
		confirmed, err := s.uiManager.PromptConfirm("Create PR with this title and description?")
		if err != nil {
			return OutcomeDeclined, fmt.Errorf("failed to prompt user: %w", err)
		}
		if !confirmed {
			s.uiManager.ShowWarning("PR creation aborted by user.")
			return OutcomeDeclined, nil
		}
	}

	url, err := s.hostingClient.CreatePullRequest(ctx, hosting.PRSpec{
		Title: title,
		Body:  body,
		Base:  base,
		Draft: opts.Draft,
		Web:   opts.Web,
	})
	if err != nil {
		reportFailure(s.uiManager, "Failed to create PR", err)
		return OutcomeApplyFailed, nil
	}

	switch {
	case opts.Web:
		s.uiManager.ShowSuccess("Opened the PR in your browser.")
	case url != "":
		s.uiManager.ShowSuccess("Successfully created PR: " + url)
	default:
		s.uiManager.ShowSuccess("Successfully created PR!")
	}

	s.record(&history.Entry{
		Kind:        history.KindPR,
		Title:       title,
		Body:        body,
		Branch:      branch,
		Base:        base,
		URL:         url,
		DiffSummary: git.Summarize(diff).String(),
		Provider:    result.Provider,
		Edited:      edited,
	})
	return OutcomeApplied, nil
}

// readTemplate returns the PR template, or "" when there is none or it cannot be read.
func (s *PRService) readTemplate() string {
	if s.templates == nil {
		return ""
	}
	content, path, err := s.templates.Read()
	if err != nil {
		apperrors.Warn("Could not read PR template %s, continuing without it: %v", path, err)
		return ""
	}
	if content != "" {
		s.uiManager.ShowInfo(fmt.Sprintf("Using PR template: %s", path))
	}
	return content
}

func (s *PRService) record(entry *history.Entry) {
	if s.historyMgr == nil {
		return
	}
	if err := s.historyMgr.Save(entry); err != nil {
		apperrors.Warn("Failed to save history: %v", err)
	}
}

// SplitEdited reads edited text back as a title line and a body.
func SplitEdited(text string) (title, body string) {
	text = strings.TrimSpace(text)
	title, body, _ = strings.Cut(text, "\n")
	return strings.TrimSpace(title), strings.TrimSpace(body)
}
