// ABOUTME: Sentence splitting and text shaping helpers shared by the summary policies
// ABOUTME: All lengths are measured in runes so accented Portuguese text counts fairly
package summary

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// minSentenceRunes is the length a sentence must exceed to be worth quoting
const minSentenceRunes = 20

const ellipsis = "..."

// splitSentences breaks text on sentence terminators followed by whitespace
// and on line breaks. Terminators are dropped; list and heading markers at the
// start of a sentence are stripped.
func splitSentences(text string) []string {
	var (
		result []string
		cur    strings.Builder
	)
	flush := func() {
		s := cleanSentence(cur.String())
		if s != "" {
			result = append(result, s)
		}
		cur.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		switch {
		case r == '\n' || r == '\r':
			flush()
		case r == '.' || r == '!' || r == '?':
			if i == len(runes)-1 || unicode.IsSpace(runes[i+1]) {
				flush()
				continue
			}
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()

	return result
}

func cleanSentence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "-*#>• \t")
	s = strings.TrimRight(s, "* \t")
	return strings.TrimSpace(s)
}

// qualifyingSentences returns the sentences of text longer than minSentenceRunes,
// in their original order.
func qualifyingSentences(text string) []string {
	var out []string
	for _, s := range splitSentences(text) {
		if utf8.RuneCountInString(s) > minSentenceRunes {
			out = append(out, s)
		}
	}
	return out
}

// longestFirst orders sentences by descending rune length; equal lengths keep
// their original order.
func longestFirst(sentences []string) []string {
	sorted := slices.Clone(sentences)
	slices.SortStableFunc(sorted, func(a, b string) int {
		return utf8.RuneCountInString(b) - utf8.RuneCountInString(a)
	})
	return sorted
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// ensurePeriod terminates s with a period unless it already ends a sentence
func ensurePeriod(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?") {
		return s
	}
	return s + "."
}

// truncateWords cuts paragraphs longer than maxRunes down to their first
// maxWords words followed by an ellipsis. The result never exceeds maxRunes;
// when the words alone are too long the cut falls back to the last word
// boundary that fits.
func truncateWords(s string, maxRunes, maxWords int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	words := strings.Fields(s)
	if len(words) > maxWords {
		words = words[:maxWords]
	}
	cut := strings.Join(words, " ")

	if limit := max(maxRunes-utf8.RuneCountInString(ellipsis), 0); utf8.RuneCountInString(cut) > limit {
		cut = string([]rune(cut)[:limit])
		if i := strings.LastIndex(cut, " "); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.TrimRight(cut, ".,;:!? ") + ellipsis
}

// capitalize upper-cases the first rune only
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// containsAny reports whether lowered contains one of the keywords
func containsAny(lowered string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// stripMarker removes a trailing thematic marker so punctuation can be fixed up
func stripMarker(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), Marker))
}
