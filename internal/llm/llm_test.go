// ABOUTME: Tests for error types, status classification and the backend factory
// ABOUTME: Uses no network; backends are only constructed
package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/harper/kit-onboarding/internal/config"
	"github.com/harper/kit-onboarding/internal/util"
)

func TestStatusError_Retryability(t *testing.T) {
	tests := []struct {
		status        int
		wantPermanent bool
	}{
		{http.StatusBadRequest, true},
		{http.StatusUnauthorized, true},
		{http.StatusNotFound, true},
		{http.StatusTooManyRequests, false},
		{http.StatusInternalServerError, false},
		{http.StatusServiceUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := statusError("test", tt.status, "nope")
			if got := util.IsPermanent(err); got != tt.wantPermanent {
				t.Errorf("IsPermanent() = %v, want %v", got, tt.wantPermanent)
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("statusError() = %T, want *APIError inside", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
			}
		})
	}
}

func TestTransportError(t *testing.T) {
	base := errors.New("connection reset")
	err := transportError("gemini", base)

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("transportError() = %T, want *TransportError", err)
	}
	if !errors.Is(err, base) {
		t.Error("TransportError should unwrap to the cause")
	}
	if util.IsPermanent(err) {
		t.Error("network errors should be retryable")
	}
	if !strings.Contains(err.Error(), "gemini transport error") {
		t.Errorf("Error() = %q", err.Error())
	}

	cancelled := transportError("gemini", context.Canceled)
	if !util.IsPermanent(cancelled) {
		t.Error("cancellation should not be retried")
	}
}

func TestAPIError_Message(t *testing.T) {
	withStatus := &APIError{Provider: "openai", StatusCode: 401, Message: "bad key"}
	if got := withStatus.Error(); got != "openai API error (status 401): bad key" {
		t.Errorf("Error() = %q", got)
	}

	empty := emptyResponse("anthropic")
	if !errors.Is(empty, ErrEmptyResponse) {
		t.Error("emptyResponse should wrap ErrEmptyResponse")
	}
	if !util.IsPermanent(empty) {
		t.Error("empty responses should not be retried")
	}
}

func TestNew_Backends(t *testing.T) {
	tests := []struct {
		backend  string
		wantName string
	}{
		{config.BackendOpenAI, "openai:gpt-4o-mini"},
		{config.BackendAnthropic, "anthropic:claude-3-5-sonnet-latest"},
		{config.BackendGemini, "gemini:gemini-2.0-flash"},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := config.Defaults()
			cfg.Backend = tt.backend
			cfg.APIKey = "test-key"

			gen, err := New(cfg, nil)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if gen.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", gen.Name(), tt.wantName)
			}
		})
	}
}

func TestNew_Errors(t *testing.T) {
	cfg := config.Defaults()
	cfg.Backend = "cohere"
	cfg.APIKey = "k"
	if _, err := New(cfg, nil); err == nil {
		t.Error("New() should reject unknown backends")
	}

	for _, backend := range []string{config.BackendOpenAI, config.BackendAnthropic, config.BackendGemini} {
		cfg := config.Defaults()
		cfg.Backend = backend
		if _, err := New(cfg, nil); err == nil {
			t.Errorf("New(%s) without API key should fail", backend)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cc := DefaultConfig(config.BackendOpenAI, "k")
	if cc.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want gpt-4o-mini", cc.Model)
	}
	if cc.MaxRetries != 2 {
		t.Errorf("MaxRetries = %d, want 2", cc.MaxRetries)
	}
	if cc.logger() == nil {
		t.Error("logger() should never be nil")
	}
}
