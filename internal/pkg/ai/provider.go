// Package ai generates commit messages from staged diffs with a text-generation service.
package ai

import (
	"context"
	"time"
)

// ProviderConfig contains configuration for an AI provider.
type ProviderConfig struct {
	APIKey   string
	Model    string
	Endpoint string
	Timeout  time.Duration

	// Language is the natural language the subject should be written in.
	Language string

	// RequestID is sent as X-Request-Id when set.
	RequestID string
}

// Provider defines the interface for AI providers.
type Provider interface {
	// GenerateCommitMessage returns a sanitized single commit message for diff.
	GenerateCommitMessage(ctx context.Context, diff string) (string, error)
	Name() string
}
