// ABOUTME: Tests for the chat command wiring with a scripted backend
// ABOUTME: Verifies startup errors, flag overrides, and a full quit round trip

package commands

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harper/kit-onboarding/internal/config"
	"github.com/harper/kit-onboarding/internal/llm"
	"github.com/harper/kit-onboarding/internal/models"
	"go.uber.org/zap"
)

type scriptedGenerator struct {
	reply  string
	system string
}

func (g *scriptedGenerator) Generate(_ context.Context, _ []models.Message, system string, _ models.SamplingConfig) (string, error) {
	g.system = system
	return g.reply, nil
}

func (g *scriptedGenerator) Name() string { return "scripted:test" }

// isolateEnv clears every variable the configuration layer reads
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"KIT_CONFIG", "KIT_API_KEY", "KIT_BACKEND", "KIT_MODEL", "KIT_BASE_URL",
		"KIT_MAX_INTERACTIONS", "KIT_SUMMARY_POLICY", "KIT_DOCUMENT_POLICY",
		"GOOGLE_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("KIT_KNOWLEDGE_PATH", filepath.Join(t.TempDir(), "missing.txt"))
}

func stubGenerator(t *testing.T, gen *scriptedGenerator, seen *config.Config) {
	t.Helper()
	original := newGenerator
	t.Cleanup(func() { newGenerator = original })
	newGenerator = func(cfg *config.Config, _ *zap.Logger) (llm.Generator, error) {
		if seen != nil {
			*seen = *cfg
		}
		return gen, nil
	}
}

func runRoot(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestChat_MissingAPIKey(t *testing.T) {
	isolateEnv(t)
	stubGenerator(t, &scriptedGenerator{}, nil)

	_, err := runRoot(t, "", "chat")
	if err == nil {
		t.Fatal("chat without a key should fail")
	}
	if !errors.Is(err, config.ErrMissingAPIKey) {
		t.Errorf("error = %v, want ErrMissingAPIKey", err)
	}
	if !strings.Contains(err.Error(), "GOOGLE_API_KEY") {
		t.Errorf("error = %q, want the variable name", err.Error())
	}
}

func TestChat_RoundTrip(t *testing.T) {
	isolateEnv(t)
	t.Setenv("KIT_API_KEY", "test-key")
	gen := &scriptedGenerator{reply: "Jenkins builds every merge request for you."}
	var seen config.Config
	stubGenerator(t, gen, &seen)

	out, err := runRoot(t, "what does jenkins do\nquit\n", "--no-markdown", "--policy", "digest", "--backend", "OpenAI")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, want := range []string{
		"Jenkins builds every merge request for you.",
		"1. **DevOps**",
		"Closing the program",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if seen.Backend != config.BackendOpenAI || seen.Model != "gpt-4o-mini" {
		t.Errorf("backend/model = %s/%s, want openai/gpt-4o-mini", seen.Backend, seen.Model)
	}
	if seen.RenderMarkdown {
		t.Error("--no-markdown should disable rendering")
	}
	if !strings.Contains(gen.system, "Choco-dev") {
		t.Error("system instruction should carry the company knowledge")
	}
}

func TestChat_MaxInteractionsFlag(t *testing.T) {
	isolateEnv(t)
	t.Setenv("KIT_API_KEY", "test-key")
	stubGenerator(t, &scriptedGenerator{reply: "unused"}, nil)

	out, err := runRoot(t, "chocolate\nhello\n", "--no-markdown", "--max-interactions", "1")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "Your interactions for this session are over") {
		t.Errorf("one chocolate should exhaust a one-turn session:\n%s", out)
	}

	if _, err := runRoot(t, "", "--max-interactions", "0"); err == nil {
		t.Error("--max-interactions 0 should fail")
	}
}

func TestChat_BadConfigFile(t *testing.T) {
	isolateEnv(t)
	t.Setenv("KIT_API_KEY", "test-key")
	stubGenerator(t, &scriptedGenerator{}, nil)

	_, err := runRoot(t, "", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	var cfgErr *config.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("error = %v, want *config.ConfigError", err)
	}
}

func TestNewChatCmd(t *testing.T) {
	cmd := NewChatCmd()
	if cmd.Use != "chat" {
		t.Errorf("Use = %q, want %q", cmd.Use, "chat")
	}
	for _, word := range []string{"add-document", "clear-context", "chocolate", "quit"} {
		if !strings.Contains(cmd.Long, word) {
			t.Errorf("Long description should mention %q", word)
		}
	}
}
