// ABOUTME: Generation client contract shared by every LLM backend
// ABOUTME: Defines Generator, transport/API error types, and the backend factory
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/harper/kit-onboarding/internal/config"
	"github.com/harper/kit-onboarding/internal/models"
	"github.com/harper/kit-onboarding/internal/util"
	"go.uber.org/zap"
)

// Generator produces a reply for an ordered conversation
type Generator interface {
	Generate(ctx context.Context, history []models.Message, systemInstruction string, sampling models.SamplingConfig) (string, error)
	Name() string
}

// ErrEmptyResponse is wrapped when a provider answers without usable text
var ErrEmptyResponse = errors.New("empty response from model")

// TransportError wraps network-level failures (DNS, connection reset, timeouts)
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport error: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is a non-success answer from the provider
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// ClientConfig holds configuration shared by every backend
type ClientConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

// DefaultConfig returns the default client configuration for a backend
func DefaultConfig(backend, apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:     apiKey,
		Model:      config.DefaultModel(backend),
		Timeout:    60 * time.Second,
		MaxRetries: 2,
		RetryDelay: time.Second,
	}
}

func (c *ClientConfig) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// New builds the Generator selected by cfg.Backend. cfg must already be resolved.
func New(cfg *config.Config, logger *zap.Logger) (Generator, error) {
	cc := &ClientConfig{
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	}
	if cc.Model == "" {
		cc.Model = config.DefaultModel(cfg.Backend)
	}

	switch cfg.Backend {
	case config.BackendGemini:
		return NewGeminiClientWithConfig(context.Background(), cc)
	case config.BackendOpenAI:
		return NewOpenAIClientWithConfig(cc)
	case config.BackendAnthropic:
		return NewAnthropicClientWithConfig(cc)
	default:
		return nil, fmt.Errorf("unsupported llm backend: %s", cfg.Backend)
	}
}

// statusError converts an HTTP status into an APIError; only rate limits and
// server errors are worth retrying.
func statusError(provider string, status int, message string) error {
	err := &APIError{Provider: provider, StatusCode: status, Message: message}
	if status == http.StatusTooManyRequests || status >= 500 {
		return err
	}
	return util.Permanent(err)
}

// transportError wraps err; cancellation by the caller is final.
func transportError(provider string, err error) error {
	te := &TransportError{Provider: provider, Err: err}
	if errors.Is(err, context.Canceled) {
		return util.Permanent(te)
	}
	return te
}

func emptyResponse(provider string) error {
	return util.Permanent(&APIError{Provider: provider, Message: ErrEmptyResponse.Error(), Err: ErrEmptyResponse})
}

// withTimeout bounds a single call; a zero timeout means no bound.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
