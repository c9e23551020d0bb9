// Package git provides the Git operations aigh needs.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	apperrors "github.com/aigh/aigh/internal/pkg/errors"
)

// diffFilter excludes deleted files from every diff aigh reads.
// A change set made only of deletions therefore reads as empty.
const diffFilter = "--diff-filter=d"

// DefaultRemote is the remote base branches are fetched from.
const DefaultRemote = "origin"

// Client defines the interface for Git operations.
type Client interface {
	// GetStagedDiff returns the staged diff. An empty string with a nil error
	// means nothing is staged; a non-nil error means the diff could not be read.
	GetStagedDiff(ctx context.Context) (string, error)
	Commit(ctx context.Context, message string) error
	// GetDiffFromBase fetches branch from origin and diffs HEAD against it.
	GetDiffFromBase(ctx context.Context, branch string) (string, error)
	GetCurrentBranch(ctx context.Context) (string, error)
	IsRepository(ctx context.Context) bool
}

// DefaultClient implements the Client interface using exec.CommandContext.
// Commands run without their own deadline; callers control cancellation through ctx.
type DefaultClient struct {
	// workDir is the working directory for git commands.
	// If empty, uses the current directory.
	workDir string
}

// NewClient creates a new DefaultClient.
func NewClient() *DefaultClient {
	return &DefaultClient{}
}

// NewClientWithWorkDir creates a new DefaultClient with a specific working directory.
func NewClientWithWorkDir(workDir string) *DefaultClient {
	return &DefaultClient{workDir: workDir}
}

// run executes git and returns stdout and stderr separately.
func (c *DefaultClient) run(ctx context.Context, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if c.workDir != "" {
		cmd.Dir = c.workDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// fail logs a git failure and wraps it with the command and its stderr.
func fail(err error, stderr string, args ...string) error {
	command := "git " + strings.Join(args, " ")
	apperrors.Warn("%s failed: %v %s", command, err, strings.TrimSpace(stderr))
	return apperrors.NewGitError(err, strings.TrimSpace(stderr)).WithContext("command", command)
}

// GetStagedDiff retrieves the staged changes, excluding deleted files.
func (c *DefaultClient) GetStagedDiff(ctx context.Context) (string, error) {
	args := []string{"diff", "--staged", diffFilter}
	stdout, stderr, err := c.run(ctx, args...)
	if err != nil {
		// Exit status 1 with no output is git's "nothing to report".
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 &&
			strings.TrimSpace(stdout) == "" && strings.TrimSpace(stderr) == "" {
			return "", nil
		}
		return "", fail(err, stderr, args...)
	}

	return strings.TrimSpace(stdout), nil
}

// Commit executes a git commit with the given message.
func (c *DefaultClient) Commit(ctx context.Context, message string) error {
	args := []string{"commit", "-m", message}
	stdout, stderr, err := c.run(ctx, args...)
	if err != nil {
		// git reports "nothing to commit" on stdout.
		return fail(err, strings.TrimSpace(stderr+"\n"+stdout), "commit", "-m", "<message>")
	}
	return nil
}

// GetDiffFromBase fetches branch from origin, then diffs origin/branch...HEAD.
func (c *DefaultClient) GetDiffFromBase(ctx context.Context, branch string) (string, error) {
	if branch == "" {
		return "", apperrors.New(apperrors.ErrInvalidArguments, "base branch must not be empty")
	}

	fetchArgs := []string{"fetch", DefaultRemote, branch, "-q"}
	if _, stderr, err := c.run(ctx, fetchArgs...); err != nil {
		return "", fail(err, stderr, fetchArgs...)
	}

	diffArgs := []string{"diff", fmt.Sprintf("%s/%s...HEAD", DefaultRemote, branch), diffFilter}
	stdout, stderr, err := c.run(ctx, diffArgs...)
	if err != nil {
		return "", fail(err, stderr, diffArgs...)
	}

	return strings.TrimSpace(stdout), nil
}

// GetCurrentBranch returns the name of the current branch.
func (c *DefaultClient) GetCurrentBranch(ctx context.Context) (string, error) {
	args := []string{"rev-parse", "--abbrev-ref", "HEAD"}
	stdout, stderr, err := c.run(ctx, args...)
	if err != nil {
		return "", fail(err, stderr, args...)
	}

	branch := strings.TrimSpace(stdout)
	if branch == "" {
		return "", fail(errors.New("empty branch name"), stderr, args...)
	}
	return branch, nil
}

// IsRepository reports whether the working directory is inside a git work tree.
func (c *DefaultClient) IsRepository(ctx context.Context) bool {
	stdout, _, err := c.run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(stdout) == "true"
}
