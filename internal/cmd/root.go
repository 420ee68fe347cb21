// Package cmd contains the CLI command definition for aicommit.
package cmd

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gitsage/aicommit/internal/app"
	"github.com/gitsage/aicommit/internal/pkg/config"
	apperrors "github.com/gitsage/aicommit/internal/pkg/errors"
	"github.com/gitsage/aicommit/internal/pkg/git"
	"github.com/gitsage/aicommit/internal/pkg/ui"
)

// NewRootCmd creates the root command for the aicommit CLI.
func NewRootCmd(version, commitHash, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aicommit",
		Short: "Commit staged changes with an AI-written, gitmoji-annotated message",
		Long: `aicommit reads the staged changes (git diff --staged), asks Google Gemini
for a one-line Conventional Commit message, prefixes the subject with the
gitmoji for its type, and lets you accept, edit or abort before running
git commit.

Configuration is read from the environment and from a .env file in your
home directory (or, when there is none, the current directory):

  GEMINI_API_KEY      API key (required)
  GEMINI_MODEL        model name (default gemini-2.0-flash)
  GEMINI_ENDPOINT     OpenAI-compatible base URL
  AICOMMIT_LANGUAGE   language of the subject (default Japanese)
  AICOMMIT_TIMEOUT    request timeout, e.g. 30s or 30 (default 60s)
  AICOMMIT_VERBOSE    debug logging on stderr
  AICOMMIT_COLOR      colored output (default true)`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommit(cmd.Context())
		},
	}

	// Set version template
	rootCmd.SetVersionTemplate(`aicommit {{.Version}}
Commit: ` + commitHash + `
Built:  ` + date + "\n")

	return rootCmd
}

// runCommit loads configuration and runs one generate-confirm-commit cycle.
func runCommit(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfgMgr, err := config.NewManager()
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrInvalidConfig, "failed to create config manager")
	}

	cfg, err := cfgMgr.Load()
	if err != nil {
		return err
	}

	apperrors.SetVerbose(cfg.Log.Verbose)

	runID := uuid.NewString()
	apperrors.SetRunID(runID)
	apperrors.Debug("run %s", runID)

	if cfg.EnvFile != "" {
		apperrors.Debug("loaded %s", cfg.EnvFile)
	}
	apperrors.Debug("model %s at %s, timeout %s", cfg.Provider.Model, cfg.Provider.Endpoint, cfg.Provider.Timeout)
	if cfg.Provider.APIKey != "" {
		apperrors.Debug("API key: %s", apperrors.MaskAPIKey(cfg.Provider.APIKey))
	}

	uiManager := ui.NewDefaultManager(cfg.UI.ColorEnabled)
	// Piped input cannot drive the full-screen prompts.
	accessible := os.Getenv("ACCESSIBLE") != "" || !ui.IsTerminal(os.Stdin)
	prompter := ui.NewHuhPrompter(accessible)

	service := app.NewCommitService(
		git.NewClient(),
		app.NewProviderFactory(runID),
		uiManager,
		ui.NewFlow(prompter, uiManager),
		cfg,
	)

	return service.GenerateAndCommit(ctx)
}
