// ABOUTME: Sampling parameters passed to every generation call
// ABOUTME: Fixed policy values; not derived from conversation content
package models

import "fmt"

// Default sampling policy
const (
	DefaultTemperature = 0.88
	DefaultMaxTokens   = 1000
	DefaultTopP        = 0.95
)

// SamplingConfig controls generation randomness and length
type SamplingConfig struct {
	Temperature float64 `json:"temperature" yaml:"temperature"`
	MaxTokens   int     `json:"max_tokens" yaml:"max_tokens"`
	TopP        float64 `json:"top_p" yaml:"top_p"`
}

// DefaultSampling returns the standard sampling policy
func DefaultSampling() SamplingConfig {
	return SamplingConfig{
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		TopP:        DefaultTopP,
	}
}

// Validate checks that every parameter is inside the range providers accept
func (s SamplingConfig) Validate() error {
	if s.Temperature < 0 || s.Temperature > 2 {
		return fmt.Errorf("temperature must be 0-2, got %f", s.Temperature)
	}
	if s.TopP < 0 || s.TopP > 1 {
		return fmt.Errorf("top_p must be 0-1, got %f", s.TopP)
	}
	if s.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", s.MaxTokens)
	}
	return nil
}
