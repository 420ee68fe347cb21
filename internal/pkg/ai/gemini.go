package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/gitsage/aicommit/internal/pkg/config"
	apperrors "github.com/gitsage/aicommit/internal/pkg/errors"
)

const (
	// ProviderName identifies Gemini in logs and errors.
	ProviderName = "gemini"

	// DefaultTemperature is the default temperature for AI generation.
	DefaultTemperature = 0.2

	// RequestIDHeader carries the run ID on every request.
	RequestIDHeader = "X-Request-Id"
)

// GeminiProvider implements the Provider interface for Google Gemini
// through its OpenAI-compatible chat completions endpoint.
type GeminiProvider struct {
	client         *openai.Client
	config         ProviderConfig
	promptTemplate *PromptTemplate
}

// NewGeminiProvider creates a new Gemini provider.
// It fails with ErrMissingAPIKey before any network activity when the key is empty.
func NewGeminiProvider(cfg ProviderConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, apperrors.NewMissingAPIKeyError(config.APIKeyEnv)
	}

	// Set defaults
	if cfg.Model == "" {
		cfg.Model = config.DefaultModel
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = config.DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultTimeout
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.Endpoint
	clientConfig.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
		Transport: &requestIDTransport{
			base: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
			requestID: cfg.RequestID,
		},
	}

	return &GeminiProvider{
		client:         openai.NewClientWithConfig(clientConfig),
		config:         cfg,
		promptTemplate: NewPromptTemplate(),
	}, nil
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string {
	return ProviderName
}

// GenerateCommitMessage sends one chat completion request for diff and sanitizes the reply.
// There is no retry: every failure is returned to the caller.
func (p *GeminiProvider) GenerateCommitMessage(ctx context.Context, diff string) (string, error) {
	if diff == "" {
		return "", apperrors.New(apperrors.ErrInvalidArguments, "diff cannot be empty")
	}

	prompt, err := p.promptTemplate.Render(PromptData{Diff: diff, Language: p.config.Language})
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: p.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: DefaultTemperature,
	}

	apperrors.LogAPIRequest(ProviderName, p.config.Endpoint, p.config.Model, len(prompt))
	startTime := time.Now()

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", wrapAPIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", apperrors.NewAIProviderError(ProviderName, errors.New("no choices in response"))
	}

	rawText := resp.Choices[0].Message.Content
	apperrors.LogAPIResponse(ProviderName, http.StatusOK, len(rawText), time.Since(startTime))

	message := Sanitize(rawText)
	if message == "" {
		return "", apperrors.NewAIProviderError(ProviderName, errors.New("empty commit message in response"))
	}

	return message, nil
}

// wrapAPIError maps a client error onto the application error taxonomy.
func wrapAPIError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperrors.NewTimeoutError(err)
	}

	status, detail, cause := 0, "", err
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status, detail = apiErr.HTTPStatusCode, apiErr.Message
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
		// Err is the decode failure of a body that is not OpenAI-shaped.
		if detail = bodyDetail(reqErr.Body); detail != "" {
			cause = fmt.Errorf("unexpected response, status code %d", status)
		} else if reqErr.Err != nil {
			detail = reqErr.Err.Error()
		}
	}

	switch status {
	case 0:
		return apperrors.NewAIProviderError(ProviderName, err)
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.NewAuthenticationError(ProviderName, detail)
	case http.StatusTooManyRequests:
		return apperrors.NewRateLimitError(detail)
	default:
		return apperrors.NewAIProviderError(ProviderName, cause).
			WithContext("status", status).
			WithContext("detail", detail)
	}
}

// errorEnvelope is the error object Gemini returns, bare or wrapped in a list.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// bodyDetail extracts the service message from an error body the client could
// not decode. Bodies of another shape are returned as text.
func bodyDetail(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}

	var list []errorEnvelope
	if err := json.Unmarshal(body, &list); err == nil {
		for _, e := range list {
			if e.Error.Message != "" {
				return e.Error.Message
			}
		}
	}

	var single errorEnvelope
	if err := json.Unmarshal(body, &single); err == nil && single.Error.Message != "" {
		return single.Error.Message
	}

	return string(body)
}

// requestIDTransport tags outgoing requests with the run ID.
type requestIDTransport struct {
	base      http.RoundTripper
	requestID string
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.requestID != "" {
		req = req.Clone(req.Context())
		req.Header.Set(RequestIDHeader, t.requestID)
	}
	return t.base.RoundTrip(req)
}
