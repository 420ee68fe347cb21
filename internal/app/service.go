// Package app contains the application layer with business orchestration logic.
package app

import (
	"context"

	"github.com/gitsage/aicommit/internal/pkg/ai"
	"github.com/gitsage/aicommit/internal/pkg/config"
	apperrors "github.com/gitsage/aicommit/internal/pkg/errors"
	"github.com/gitsage/aicommit/internal/pkg/git"
	"github.com/gitsage/aicommit/internal/pkg/gitmoji"
	"github.com/gitsage/aicommit/internal/pkg/ui"
)

// ProviderFactory builds the provider for cfg. It is called only once a
// non-empty diff is known, so credential errors never mask "nothing staged".
type ProviderFactory func(cfg *config.Config) (ai.Provider, error)

// Confirmer resolves a proposed message into an outcome. ui.Flow implements it.
type Confirmer interface {
	Run(ctx context.Context, message string) (ui.Outcome, error)
}

// NewProviderFactory returns a factory for Gemini providers tagged with requestID.
func NewProviderFactory(requestID string) ProviderFactory {
	return func(cfg *config.Config) (ai.Provider, error) {
		return ai.NewGeminiProvider(ai.ProviderConfig{
			APIKey:    cfg.Provider.APIKey,
			Model:     cfg.Provider.Model,
			Endpoint:  cfg.Provider.Endpoint,
			Timeout:   cfg.Provider.Timeout,
			Language:  cfg.Prompt.Language,
			RequestID: requestID,
		})
	}
}

// CommitService orchestrates the commit message generation workflow.
type CommitService struct {
	gitClient   git.Client
	newProvider ProviderFactory
	uiManager   ui.Manager
	confirmer   Confirmer
	config      *config.Config
}

// NewCommitService creates a new CommitService with the given dependencies.
func NewCommitService(
	gitClient git.Client,
	newProvider ProviderFactory,
	uiManager ui.Manager,
	confirmer Confirmer,
	cfg *config.Config,
) *CommitService {
	return &CommitService{
		gitClient:   gitClient,
		newProvider: newProvider,
		uiManager:   uiManager,
		confirmer:   confirmer,
		config:      cfg,
	}
}

// GenerateAndCommit runs the workflow:
// read diff → build provider → generate → annotate → confirm → commit.
// A nil error means the run ended cleanly: committed, nothing staged, or aborted.
func (s *CommitService) GenerateAndCommit(ctx context.Context) error {
	// Step 1: Read the staged diff
	diff, err := s.gitClient.GetStagedDiff(ctx)
	if err != nil {
		// Reported, then treated like an empty diff.
		s.uiManager.ShowError(err)
		apperrors.Debug("staged diff unavailable: %v", err)
		return nil
	}
	if diff == "" {
		s.uiManager.ShowInfo("No staged changes. Run `git add` first.")
		return nil
	}
	apperrors.Debug("staged diff: %d bytes", len(diff))

	// Step 2: Build the provider; a missing credential fails here, before any request
	provider, err := s.newProvider(s.config)
	if err != nil {
		return err
	}

	// Step 3: Generate
	spinner := s.uiManager.ShowSpinner("Requesting a commit message from " + provider.Name() + "...")
	spinner.Start()
	message, err := provider.GenerateCommitMessage(ctx, diff)
	spinner.Stop()
	if err != nil {
		return err
	}

	// Step 4: Annotate
	message = gitmoji.Annotate(message)

	// Step 5: Confirm
	outcome, err := s.confirmer.Run(ctx, message)
	if err != nil {
		return err
	}
	if !outcome.Accepted() {
		apperrors.Info("commit not created (%s)", outcome.State)
		return nil
	}

	// Step 6: Commit
	if err := s.gitClient.Commit(ctx, outcome.Message); err != nil {
		return err
	}

	s.uiManager.ShowSuccess("Commit created.")
	return nil
}
