// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Flag normalization, validation, and startup error formatting
package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/harper/kit-onboarding/internal/config"
)

// normalize lower-cases and trims a flag value
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// getenv is os.Getenv with surrounding whitespace removed
func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}

// validateInteractions bounds the per-session interaction budget
func validateInteractions(n int) error {
	if err := validatePositiveInt(n, "max interactions"); err != nil {
		return err
	}
	if n > 50 {
		return fmt.Errorf("max interactions must be at most 50, got %d", n)
	}
	return nil
}

// startupError adds the operator hint to configuration failures
func startupError(err error) error {
	var cfgErr *config.ConfigError
	if errors.As(err, &cfgErr) {
		return fmt.Errorf("%w\n%s", err, cfgErr.Hint())
	}
	return err
}
