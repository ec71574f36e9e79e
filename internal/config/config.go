// ABOUTME: Centralized configuration for the Kit onboarding assistant
// ABOUTME: Layers defaults, an optional YAML file, and environment variables, then validates
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/harper/kit-onboarding/internal/models"
	"gopkg.in/yaml.v3"
)

// Supported generation backends
const (
	BackendGemini    = "gemini"
	BackendOpenAI    = "openai"
	BackendAnthropic = "anthropic"
)

// Summary policies
const (
	SummaryTopics = "topics"
	SummaryDigest = "digest"
)

// Document policies decide whether add-document consumes an interaction
const (
	DocumentFree    = "free"
	DocumentCounted = "counted"
)

// DefaultMaxInteractions is the counted-turn budget before a forced summary
const DefaultMaxInteractions = 3

// DefaultKnowledgePath is where the company knowledge file is looked up
const DefaultKnowledgePath = "./KB-CHOCODEV.txt"

var defaultModels = map[string]string{
	BackendGemini:    "gemini-2.0-flash",
	BackendOpenAI:    "gpt-4o-mini",
	BackendAnthropic: "claude-3-5-sonnet-latest",
}

// apiKeyEnv lists the environment variables consulted for each backend, in order
var apiKeyEnv = map[string][]string{
	BackendGemini:    {"GOOGLE_API_KEY", "GEMINI_API_KEY"},
	BackendOpenAI:    {"OPENAI_API_KEY"},
	BackendAnthropic: {"ANTHROPIC_API_KEY"},
}

// ErrMissingAPIKey is reported when the selected backend has no credential
var ErrMissingAPIKey = errors.New("API key not found")

// ConfigError describes a fatal configuration problem detected at startup
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Hint tells the operator how to fix the problem
func (e *ConfigError) Hint() string {
	if errors.Is(e.Err, ErrMissingAPIKey) {
		return fmt.Sprintf("Add %s=your_key_here to your environment or .env file", e.Key)
	}
	return fmt.Sprintf("Check the value of %s", e.Key)
}

// Config holds all configuration for the assistant
type Config struct {
	// Backend settings
	Backend    string                `yaml:"backend"`
	APIKey     string                `yaml:"-"`
	Model      string                `yaml:"model"`
	BaseURL    string                `yaml:"base_url"`
	Timeout    time.Duration         `yaml:"timeout"`
	MaxRetries int                   `yaml:"max_retries"`
	RetryDelay time.Duration         `yaml:"retry_delay"`
	Sampling   models.SamplingConfig `yaml:"sampling"`

	// Session settings
	MaxInteractions int    `yaml:"max_interactions"`
	SummaryPolicy   string `yaml:"summary_policy"`
	DocumentPolicy  string `yaml:"document_policy"`
	KnowledgePath   string `yaml:"knowledge_path"`

	// Shell settings
	RenderMarkdown bool `yaml:"render_markdown"`
}

// Defaults returns a configuration populated with built-in defaults
func Defaults() *Config {
	return &Config{
		Backend:         BackendGemini,
		Timeout:         60 * time.Second,
		MaxRetries:      2,
		RetryDelay:      time.Second,
		Sampling:        models.DefaultSampling(),
		MaxInteractions: DefaultMaxInteractions,
		SummaryPolicy:   SummaryTopics,
		DocumentPolicy:  DocumentFree,
		KnowledgePath:   DefaultKnowledgePath,
		RenderMarkdown:  true,
	}
}

// Load reads configuration from KIT_CONFIG (if set) and environment variables
func Load() (*Config, error) {
	return LoadFile(os.Getenv("KIT_CONFIG"))
}

// LoadFile reads an optional YAML file, then applies environment overrides.
// An empty path skips the file layer; a path that cannot be read is an error.
func LoadFile(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &ConfigError{Key: "KIT_CONFIG", Err: fmt.Errorf("reading %s: %w", path, err)}
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &ConfigError{Key: "KIT_CONFIG", Err: fmt.Errorf("parsing %s: %w", path, err)}
		}
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.Backend = strings.ToLower(getEnv("KIT_BACKEND", c.Backend))
	c.Model = getEnv("KIT_MODEL", c.Model)
	c.BaseURL = getEnv("KIT_BASE_URL", c.BaseURL)
	c.Timeout = getEnvDuration("KIT_TIMEOUT", c.Timeout)
	c.MaxRetries = getEnvInt("KIT_MAX_RETRIES", c.MaxRetries)
	c.RetryDelay = getEnvDuration("KIT_RETRY_DELAY", c.RetryDelay)
	c.Sampling.Temperature = getEnvFloat("KIT_TEMPERATURE", c.Sampling.Temperature)
	c.Sampling.MaxTokens = getEnvInt("KIT_MAX_TOKENS", c.Sampling.MaxTokens)
	c.Sampling.TopP = getEnvFloat("KIT_TOP_P", c.Sampling.TopP)
	c.MaxInteractions = getEnvInt("KIT_MAX_INTERACTIONS", c.MaxInteractions)
	c.SummaryPolicy = strings.ToLower(getEnv("KIT_SUMMARY_POLICY", c.SummaryPolicy))
	c.DocumentPolicy = strings.ToLower(getEnv("KIT_DOCUMENT_POLICY", c.DocumentPolicy))
	c.KnowledgePath = getEnv("KIT_KNOWLEDGE_PATH", c.KnowledgePath)
	c.RenderMarkdown = getEnvBool("KIT_RENDER_MARKDOWN", c.RenderMarkdown)
}

// Validate checks ranges and enumerations. It does not require an API key;
// call Resolve once the backend is final.
func (c *Config) Validate() error {
	if _, ok := defaultModels[c.Backend]; !ok {
		return &ConfigError{Key: "KIT_BACKEND", Err: fmt.Errorf("unsupported backend %q (want gemini, openai or anthropic)", c.Backend)}
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return &ConfigError{Key: "KIT_MAX_RETRIES", Err: fmt.Errorf("must be 0-10, got %d", c.MaxRetries)}
	}
	if c.Timeout <= 0 {
		return &ConfigError{Key: "KIT_TIMEOUT", Err: fmt.Errorf("must be positive, got %v", c.Timeout)}
	}
	if c.MaxInteractions < 1 || c.MaxInteractions > 50 {
		return &ConfigError{Key: "KIT_MAX_INTERACTIONS", Err: fmt.Errorf("must be 1-50, got %d", c.MaxInteractions)}
	}
	if c.SummaryPolicy != SummaryTopics && c.SummaryPolicy != SummaryDigest {
		return &ConfigError{Key: "KIT_SUMMARY_POLICY", Err: fmt.Errorf("unknown policy %q (want topics or digest)", c.SummaryPolicy)}
	}
	if c.DocumentPolicy != DocumentFree && c.DocumentPolicy != DocumentCounted {
		return &ConfigError{Key: "KIT_DOCUMENT_POLICY", Err: fmt.Errorf("unknown policy %q (want free or counted)", c.DocumentPolicy)}
	}
	if err := c.Sampling.Validate(); err != nil {
		return &ConfigError{Key: "sampling", Err: err}
	}
	return nil
}

// Resolve fills backend-dependent values (model, API key) and validates the
// result. A missing credential yields a *ConfigError wrapping ErrMissingAPIKey.
func (c *Config) Resolve() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Model == "" {
		c.Model = defaultModels[c.Backend]
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("KIT_API_KEY")
	}
	if c.APIKey == "" {
		for _, key := range apiKeyEnv[c.Backend] {
			if v := os.Getenv(key); v != "" {
				c.APIKey = v
				break
			}
		}
	}
	if c.APIKey == "" {
		return &ConfigError{Key: APIKeyEnv(c.Backend), Err: ErrMissingAPIKey}
	}
	return nil
}

// APIKeyEnv returns the primary environment variable holding the backend credential
func APIKeyEnv(backend string) string {
	if keys, ok := apiKeyEnv[backend]; ok && len(keys) > 0 {
		return keys[0]
	}
	return "KIT_API_KEY"
}

// DefaultModel returns the model used when none is configured
func DefaultModel(backend string) string {
	return defaultModels[backend]
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
