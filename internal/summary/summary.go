// ABOUTME: Summarizer contract and policy selection for end-of-session digests
// ABOUTME: Both policies share the banner framing and the empty-log message
package summary

import (
	"fmt"
	"strings"

	"github.com/harper/kit-onboarding/internal/models"
)

// Policy selects how exchanges are compressed into a summary
type Policy string

const (
	// PolicyTopics aggregates exchanges into the top three keyword topics
	PolicyTopics Policy = "topics"
	// PolicyDigest renders one numbered block per recent exchange
	PolicyDigest Policy = "digest"
)

// EmptyMessage is returned when there is nothing to summarize
const EmptyMessage = "There were no interactions in this session to summarize."

const (
	bannerHeader = `╔══════════════════════════════════════════════════════════╗
║      🍫 SUMMARY OF OUR CHOCOLATEY CONVERSATION 🍫        ║
╚══════════════════════════════════════════════════════════╝

`
	bannerFooter = `
╔══════════════════════════════════════════════════════════╗
║   Thanks for using Kit, and welcome to Choco-dev! 🍫     ║
╚══════════════════════════════════════════════════════════╝`

	// Marker is the thematic suffix appended to rendered paragraphs
	Marker = "🍫"
)

// Summarizer turns the recorded exchanges of a session into display text.
// Implementations are deterministic and never fail.
type Summarizer interface {
	Summarize(exchanges []models.Exchange) string
}

// ParsePolicy validates a policy name
func ParsePolicy(name string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(name))); p {
	case PolicyTopics, PolicyDigest:
		return p, nil
	case "":
		return PolicyTopics, nil
	default:
		return "", fmt.Errorf("unknown summary policy %q (want %q or %q)", name, PolicyTopics, PolicyDigest)
	}
}

// New builds the summarizer for policy. window bounds how many recent
// exchanges the digest policy renders; values below 1 mean all of them.
func New(policy Policy, window int) (Summarizer, error) {
	switch policy {
	case PolicyTopics, "":
		return NewTopicSummarizer(), nil
	case PolicyDigest:
		return NewDigestSummarizer(window), nil
	default:
		return nil, fmt.Errorf("unknown summary policy %q", policy)
	}
}

// frame wraps a rendered body in the banner
func frame(intro, body string) string {
	var sb strings.Builder
	sb.WriteString(bannerHeader)
	sb.WriteString(intro)
	sb.WriteString("\n\n")
	sb.WriteString(body)
	sb.WriteString(bannerFooter)
	return sb.String()
}
