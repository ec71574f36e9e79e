// ABOUTME: Google Gemini backend for the generation contract via the genai SDK
// ABOUTME: Maps history roles to user/model contents and passes the system instruction natively
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harper/kit-onboarding/internal/models"
	"github.com/harper/kit-onboarding/internal/util"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiClient generates replies with the Gemini API
type GeminiClient struct {
	client     *genai.Client
	model      string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger
}

// NewGeminiClientWithConfig creates a Gemini client. No request is made until Generate.
func NewGeminiClientWithConfig(ctx context.Context, cfg *ClientConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	gc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		gc.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, gc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiClient{
		client:     client,
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     cfg.logger(),
	}, nil
}

// Name identifies the backend and model
func (c *GeminiClient) Name() string {
	return "gemini:" + c.model
}

// Generate sends the full history and returns the model reply
func (c *GeminiClient) Generate(ctx context.Context, history []models.Message, systemInstruction string, sampling models.SamplingConfig) (string, error) {
	contents := geminiContents(history)

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(sampling.Temperature)),
		TopP:            genai.Ptr(float32(sampling.TopP)),
		MaxOutputTokens: int32(sampling.MaxTokens),
	}
	if strings.TrimSpace(systemInstruction) != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	var reply string
	err := util.Retry(ctx, c.maxRetries, c.retryDelay, func(attempt int) error {
		callCtx, cancel := withTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := c.client.Models.GenerateContent(callCtx, c.model, contents, genCfg)
		if err != nil {
			c.logger.Debug("gemini generate failed", zap.Int("attempt", attempt+1), zap.Error(err))
			return classifyGeminiError(err)
		}
		if resp == nil {
			return emptyResponse("gemini")
		}
		text := resp.Text()
		if strings.TrimSpace(text) == "" {
			return emptyResponse("gemini")
		}
		reply = text
		return nil
	})
	if err != nil {
		return "", err
	}
	return reply, nil
}

func geminiContents(history []models.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := genai.RoleUser
		if m.Role == models.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	return contents
}

func classifyGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return statusError("gemini", apiErr.Code, apiErr.Message)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return statusError("gemini", apiErrPtr.Code, apiErrPtr.Message)
	}
	return transportError("gemini", err)
}
