// Package hosting opens pull requests through the GitHub CLI.
package hosting

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	apperrors "github.com/aigh/aigh/internal/pkg/errors"
)

// PRSpec describes a pull request to create.
type PRSpec struct {
	Title string
	Body  string
	Base  string
	Draft bool
	// Web opens the creation page in a browser; it takes precedence over Draft.
	Web bool
}

// Client defines the interface for the hosting adapter.
type Client interface {
	// CreatePullRequest returns gh's output, which is the PR URL unless Web is set.
	CreatePullRequest(ctx context.Context, spec PRSpec) (string, error)
}

// Runner executes an external command and returns its stdout and stderr.
type Runner func(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)

// GHClient implements Client with the gh binary.
type GHClient struct {
	binary string
	run    Runner
}

// NewClient creates a GHClient that runs gh from PATH.
func NewClient() *GHClient {
	return &GHClient{binary: "gh", run: execRunner}
}

// NewClientWithRunner creates a GHClient with a custom runner.
func NewClientWithRunner(run Runner) *GHClient {
	return &GHClient{binary: "gh", run: run}
}

func execRunner(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// BuildArgs maps a PRSpec onto gh pr create flags.
func BuildArgs(spec PRSpec) []string {
	args := []string{"pr", "create", "--title", spec.Title, "--body", spec.Body}
	if spec.Base != "" {
		args = append(args, "--base", spec.Base)
	}
	if spec.Draft && !spec.Web {
		args = append(args, "--draft")
	}
	if spec.Web {
		args = append(args, "--web")
	}
	return args
}

// CreatePullRequest runs gh pr create. Progress gh writes to stderr is logged at debug level.
func (c *GHClient) CreatePullRequest(ctx context.Context, spec PRSpec) (string, error) {
	stdout, stderr, err := c.run(ctx, c.binary, BuildArgs(spec)...)
	if err != nil {
		apperrors.Warn("gh pr create failed: %v %s", err, strings.TrimSpace(stderr))
		return "", apperrors.NewHostingError(err, strings.TrimSpace(stderr))
	}
	if s := strings.TrimSpace(stderr); s != "" {
		apperrors.Debug("gh pr create: %s", s)
	}
	return strings.TrimSpace(stdout), nil
}
