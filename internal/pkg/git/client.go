// Package git provides the git subprocess operations used by aicommit.
package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	apperrors "github.com/gitsage/aicommit/internal/pkg/errors"
)

const (
	// GitCommandTimeout is the default timeout for read-only git commands.
	GitCommandTimeout = 10 * time.Second

	// CommitTimeout bounds git commit, which may run hooks.
	CommitTimeout = 2 * time.Minute
)

// Client defines the interface for Git operations.
type Client interface {
	// GetStagedDiff returns the unified diff of the index against HEAD.
	// A blank diff is returned as "" with a nil error.
	GetStagedDiff(ctx context.Context) (string, error)
	// Commit records the staged changes with message.
	Commit(ctx context.Context, message string) error
}

// DefaultClient implements the Client interface using exec.CommandContext.
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

func (c *DefaultClient) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "git", args...)
	if c.workDir != "" {
		cmd.Dir = c.workDir
	}
	return cmd
}

// GetStagedDiff runs git diff --staged and returns its output verbatim.
func (c *DefaultClient) GetStagedDiff(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, GitCommandTimeout)
	defer cancel()

	cmd := c.command(ctx, "diff", "--staged")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", apperrors.NewTimeoutError(ctx.Err())
		}
		return "", apperrors.NewGitError(err, stderr.String()).
			WithSuggestion("Run aicommit inside a git repository")
	}

	diff := string(output)
	if strings.TrimSpace(diff) == "" {
		return "", nil
	}
	return diff, nil
}

// Commit executes git commit with the given message.
// The message is passed as a single argument, so quotes and newlines reach git unchanged.
func (c *DefaultClient) Commit(ctx context.Context, message string) error {
	ctx, cancel := context.WithTimeout(ctx, CommitTimeout)
	defer cancel()

	output, err := c.command(ctx, "commit", "-m", message).CombinedOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return apperrors.NewTimeoutError(ctx.Err())
		}
		return apperrors.NewGitError(err, string(output))
	}

	apperrors.Debug("git commit: %s", strings.TrimSpace(string(output)))
	return nil
}
