// ABOUTME: Anthropic Messages API backend for the generation contract
// ABOUTME: Plain net/http transport; response fields are read with gjson
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/harper/kit-onboarding/internal/models"
	"github.com/harper/kit-onboarding/internal/util"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com/v1"
	anthropicVersion        = "2023-06-01"
)

// AnthropicClient generates replies with the Anthropic Messages API
type AnthropicClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature"`
	TopP        float64            `json:"top_p,omitempty"`
}

// NewAnthropicClientWithConfig creates a new Anthropic client
func NewAnthropicClientWithConfig(cfg *ClientConfig) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultAnthropicBaseURL
	}

	return &AnthropicClient{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     cfg.logger(),
	}, nil
}

// Name identifies the backend and model
func (c *AnthropicClient) Name() string {
	return "anthropic:" + c.model
}

// Generate sends the full history and returns the assistant reply
func (c *AnthropicClient) Generate(ctx context.Context, history []models.Message, systemInstruction string, sampling models.SamplingConfig) (string, error) {
	reqBody := anthropicRequest{
		Model:       c.model,
		MaxTokens:   sampling.MaxTokens,
		System:      systemInstruction,
		Messages:    make([]anthropicMessage, 0, len(history)),
		Temperature: sampling.Temperature,
		TopP:        sampling.TopP,
	}
	for _, m := range history {
		role := "user"
		if m.Role == models.RoleModel {
			role = "assistant"
		}
		reqBody.Messages = append(reqBody.Messages, anthropicMessage{Role: role, Content: m.Text})
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var reply string
	err = util.Retry(ctx, c.maxRetries, c.retryDelay, func(attempt int) error {
		text, err := c.post(ctx, payload)
		if err != nil {
			c.logger.Debug("anthropic request failed", zap.Int("attempt", attempt+1), zap.Error(err))
			return err
		}
		reply = text
		return nil
	})
	if err != nil {
		return "", err
	}
	return reply, nil
}

func (c *AnthropicClient) post(ctx context.Context, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return "", util.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", transportError("anthropic", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError("anthropic", fmt.Errorf("failed to read response: %w", err))
	}

	result := gjson.ParseBytes(body)
	if resp.StatusCode != http.StatusOK {
		msg := result.Get("error.message").String()
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return "", statusError("anthropic", resp.StatusCode, msg)
	}
	if errMsg := result.Get("error.message"); errMsg.Exists() {
		return "", util.Permanent(&APIError{Provider: "anthropic", StatusCode: resp.StatusCode, Message: errMsg.String()})
	}

	var sb strings.Builder
	result.Get("content").ForEach(func(_, block gjson.Result) bool {
		if block.Get("type").String() == "text" {
			sb.WriteString(block.Get("text").String())
		}
		return true
	})

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", emptyResponse("anthropic")
	}
	return text, nil
}
