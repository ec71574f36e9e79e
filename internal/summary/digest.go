// ABOUTME: Per-exchange digest summary policy: one numbered block per recent exchange
// ABOUTME: Each exchange lands in exactly one category by first matching rule
package summary

import (
	"fmt"
	"strings"

	"github.com/harper/kit-onboarding/internal/models"
)

const (
	maxParagraphRunes = 300
	truncatedWords    = 50
	digestSentences   = 3
	titleWords        = 3
	shortTitleWords   = 5
)

var (
	companyKeywords     = []string{"company", "choco-dev", "choco dev", "empresa"}
	environmentKeywords = []string{"environment", "setup", "install", "configur", "ambiente", "instalar", "linux", "windows", "macos", "wsl"}
	devopsKeywords      = []string{"ci/cd", "cicd", "continuous integration", "pipeline", "devops", "jenkins", "gitlab", "deploy", "terraform", "esteira"}
	containerKeywords   = []string{"docker", "kubernetes", "k8s", "container", "helm"}
	docsKeywords        = []string{"doc", "wiki", "manual"}
)

// digestRule classifies an exchange into a titled category
type digestRule struct {
	title    string
	intro    string
	keywords []string
}

// digestRules are tried in order after the literal chocolate check
var digestRules = []digestRule{
	{title: "Company", intro: "We talked about how Choco-dev works", keywords: companyKeywords},
	{title: "Environment", intro: "We went through your development environment setup", keywords: environmentKeywords},
	{title: "DevOps", intro: "We covered the DevOps and CI/CD workflow", keywords: devopsKeywords},
	{title: "Containers", intro: "We discussed containers and orchestration", keywords: containerKeywords},
	{title: "Documentation", intro: "We pointed you to the documentation resources", keywords: docsKeywords},
}

// DigestSummarizer renders the most recent exchanges one by one
type DigestSummarizer struct {
	window int
}

// NewDigestSummarizer creates a digest over the last window exchanges
func NewDigestSummarizer(window int) *DigestSummarizer {
	return &DigestSummarizer{window: window}
}

// Summarize renders numbered blocks in original order
func (s *DigestSummarizer) Summarize(exchanges []models.Exchange) string {
	if len(exchanges) == 0 {
		return EmptyMessage
	}

	recent := exchanges
	if s.window > 0 && len(recent) > s.window {
		recent = recent[len(recent)-s.window:]
	}

	var body strings.Builder
	for i, ex := range recent {
		title, paragraph := classifyExchange(ex)
		paragraph = truncateWords(paragraph, maxParagraphRunes, truncatedWords)
		fmt.Fprintf(&body, "%d. **%s**\n%s\n\n", i+1, title, paragraph)
	}

	return frame(fmt.Sprintf("Here is a digest of our last %d interaction(s):", len(recent)), body.String())
}

// classifyExchange returns the block title and paragraph for one exchange
func classifyExchange(ex models.Exchange) (string, string) {
	lowered := strings.ToLower(strings.TrimSpace(ex.UserText))

	if lowered == "chocolate" {
		fact := stripMarker(ex.AssistantText)
		return "Humor: Chocolate fact", ensurePeriod("You asked for a chocolate curiosity: "+fact) + " " + Marker
	}

	for _, rule := range digestRules {
		if !containsAny(lowered, rule.keywords) {
			continue
		}
		title := rule.title
		if rule.title == "Environment" {
			title += osDetail(lowered)
		}
		return title, composeParagraph(rule.intro, qualifyingSentences(ex.AssistantText))
	}

	title := fallbackTitle(ex.UserText)
	sentences := firstN(qualifyingSentences(ex.AssistantText), digestSentences)
	if len(sentences) == 0 {
		return title, fmt.Sprintf("You asked about %q and Kit answered briefly.", title)
	}
	return title, ensurePeriod(strings.Join(sentences, ". "))
}

func composeParagraph(intro string, sentences []string) string {
	picked := firstN(sentences, digestSentences-1)
	if len(picked) == 0 {
		return ensurePeriod(intro)
	}
	return ensurePeriod(intro + ". " + strings.Join(picked, ". "))
}

func osDetail(lowered string) string {
	linux := strings.Contains(lowered, "linux")
	windows := strings.Contains(lowered, "windows")
	switch {
	case linux && windows:
		return " (Linux and Windows)"
	case linux:
		return " (Linux)"
	case windows:
		return " (Windows)"
	default:
		return ""
	}
}

// fallbackTitle uses the whole question when short, otherwise its first words
func fallbackTitle(userText string) string {
	words := strings.Fields(userText)
	if len(words) == 0 {
		return "Conversation"
	}
	if len(words) <= shortTitleWords {
		return capitalize(strings.Join(words, " "))
	}
	return capitalize(strings.Join(words[:titleWords], " ")) + "..."
}
