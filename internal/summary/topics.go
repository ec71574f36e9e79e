// ABOUTME: Topic aggregation summary policy: buckets exchanges by keyword topic
// ABOUTME: Renders the three most discussed topics with quotes from Kit's replies
package summary

import (
	"fmt"
	"slices"
	"strings"

	"github.com/harper/kit-onboarding/internal/models"
)

const (
	maxTopics            = 3
	sentencesPerExchange = 2
	sentencesPerTopic    = 3
)

// Topic is one bucket of the fixed topic enumeration. Keywords are matched as
// lower-case substrings of the user text.
type Topic struct {
	Key      string
	Name     string
	Intro    string
	Keywords []string
}

// Topics is the fixed enumeration; its order breaks ranking ties.
var Topics = []Topic{
	{
		Key:      "company",
		Name:     "about the Choco-dev company",
		Intro:    "We talked about the structure and culture of Choco-dev",
		Keywords: []string{"company", "choco-dev", "choco dev", "empresa"},
	},
	{
		Key:      "devops",
		Name:     "about DevOps tools",
		Intro:    "We explored the DevOps tools the company relies on",
		Keywords: []string{"docker", "kubernetes", "devops", "jenkins", "gitlab", "terraform"},
	},
	{
		Key:      "environment",
		Name:     "about development environment setup",
		Intro:    "We discussed setting up your development environment",
		Keywords: []string{"environment", "setup", "install", "configuration", "configure", "ambiente", "configuração", "instalar"},
	},
	{
		Key:      "cicd",
		Name:     "about CI/CD processes",
		Intro:    "We covered the CI/CD processes at Choco-dev",
		Keywords: []string{"pipeline", "ci/cd", "cicd", "deploy", "esteira"},
	},
	{
		Key:      "stack",
		Name:     "about the tech stack",
		Intro:    "We looked at the tech stack behind our projects",
		Keywords: []string{"python", "javascript", "node", "react", "stack", "technology", "tecnologia", "postgres"},
	},
	{
		Key:      "documentation",
		Name:     "about documentation resources",
		Intro:    "We went over the documentation resources available to you",
		Keywords: []string{"document", "documentation", "wiki", "manual", "documento", "documentação"},
	},
	{
		Key:      "humor",
		Name:     "about chocolate curiosities",
		Intro:    "We shared a few lighthearted chocolate curiosities",
		Keywords: []string{"joke", "chocolate", "fun fact", "curiosity", "piada", "brincadeira", "curiosidade"},
	},
}

// OtherTopic collects exchanges that match none of the fixed topics. It is
// rendered after the ranked topics so no exchange is left out.
var OtherTopic = Topic{
	Key:   "other",
	Name:  "about other questions",
	Intro: "You also asked a few other questions",
}

// TopicSummarizer ranks topics by how many exchanges mention them
type TopicSummarizer struct {
	topics []Topic
}

// NewTopicSummarizer creates a summarizer over the fixed topic enumeration
func NewTopicSummarizer() *TopicSummarizer {
	return &TopicSummarizer{topics: Topics}
}

type bucket struct {
	topic     Topic
	exchanges []models.Exchange
}

// Summarize renders up to three topic paragraphs, then a paragraph for any
// exchanges no topic claimed
func (s *TopicSummarizer) Summarize(exchanges []models.Exchange) string {
	if len(exchanges) == 0 {
		return EmptyMessage
	}

	var body strings.Builder
	for _, b := range s.rank(exchanges) {
		fmt.Fprintf(&body, "%s **%s**\n", Marker, capitalize(b.topic.Name))
		body.WriteString(topicParagraph(b))
		body.WriteString("\n\n")
	}

	return frame("Here is a summary of the main points we discussed:", body.String())
}

// rank classifies every exchange into zero or more buckets and returns the
// non-empty top buckets, most mentioned first. Unmatched exchanges go to a
// trailing OtherTopic bucket that does not compete for the top slots.
func (s *TopicSummarizer) rank(exchanges []models.Exchange) []bucket {
	buckets := make([]bucket, len(s.topics))
	for i, t := range s.topics {
		buckets[i].topic = t
	}
	other := bucket{topic: OtherTopic}

	for _, ex := range exchanges {
		lowered := strings.ToLower(ex.UserText)
		matched := false
		for i := range buckets {
			if containsAny(lowered, buckets[i].topic.Keywords) {
				buckets[i].exchanges = append(buckets[i].exchanges, ex)
				matched = true
			}
		}
		if !matched {
			other.exchanges = append(other.exchanges, ex)
		}
	}

	slices.SortStableFunc(buckets, func(a, b bucket) int {
		return len(b.exchanges) - len(a.exchanges)
	})

	top := make([]bucket, 0, maxTopics+1)
	for _, b := range firstN(buckets, maxTopics) {
		if len(b.exchanges) > 0 {
			top = append(top, b)
		}
	}
	if len(other.exchanges) > 0 {
		top = append(top, other)
	}
	return top
}

func topicParagraph(b bucket) string {
	var phrases []string
	for _, ex := range b.exchanges {
		phrases = append(phrases, firstN(longestFirst(qualifyingSentences(ex.AssistantText)), sentencesPerExchange)...)
	}

	if len(phrases) == 0 {
		return fmt.Sprintf("We talked %s, covering points that matter for your onboarding at Choco-dev. %s", b.topic.Name, Marker)
	}

	content := strings.Join(firstN(phrases, sentencesPerTopic), ". ")
	return ensurePeriod(b.topic.Intro+". "+content) + " " + Marker
}
