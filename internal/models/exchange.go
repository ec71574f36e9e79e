// ABOUTME: Exchange represents one recorded user/assistant turn pair
// ABOUTME: Append-only log entry consumed by the summary engine
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxStoredUserRunes caps the user text kept in the exchange log
const MaxStoredUserRunes = 200

// Exchange is a single user input paired with the assistant reply it produced
type Exchange struct {
	ID            string    `json:"id"`
	Order         int       `json:"order"`
	UserText      string    `json:"user_text"`
	AssistantText string    `json:"assistant_text"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewExchange creates an Exchange at the given insertion index.
// Long user text is stored truncated so digests stay compact.
func NewExchange(order int, userText, assistantText string) (Exchange, error) {
	if strings.TrimSpace(userText) == "" {
		return Exchange{}, errors.New("user text cannot be empty")
	}
	if order < 0 {
		return Exchange{}, fmt.Errorf("order must be non-negative, got %d", order)
	}
	return Exchange{
		ID:            generateExchangeID(),
		Order:         order,
		UserText:      clip(userText, MaxStoredUserRunes),
		AssistantText: assistantText,
		Timestamp:     time.Now().UTC(),
	}, nil
}

// clip keeps the first max runes of s and marks the cut with "..."
func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func generateExchangeID() string {
	return fmt.Sprintf("exch_%s_%s", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
}
