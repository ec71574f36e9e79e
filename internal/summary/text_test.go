// ABOUTME: Tests for sentence splitting and text shaping helpers
// ABOUTME: Covers terminators, markdown markers, truncation, and capitalization
package summary

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "period space",
			text: "First sentence here. Second one.",
			want: []string{"First sentence here", "Second one"},
		},
		{
			name: "mixed terminators",
			text: "Really? Yes! Done.",
			want: []string{"Really", "Yes", "Done"},
		},
		{
			name: "decimals stay intact",
			text: "A tree yields 2.5kg of chocolate. Nice",
			want: []string{"A tree yields 2.5kg of chocolate", "Nice"},
		},
		{
			name: "newlines and list markers",
			text: "Steps:\n- Install Docker\n* Run **make setup**\n## Heading",
			want: []string{"Steps:", "Install Docker", "Run **make setup", "Heading"},
		},
		{
			name: "empty",
			text: "   \n\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitSentences(tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("splitSentences() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQualifyingSentences(t *testing.T) {
	text := "Short one. This sentence is clearly long enough. Configuração é ótima!"
	got := qualifyingSentences(text)
	want := []string{"This sentence is clearly long enough"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("qualifyingSentences() mismatch (-want +got):\n%s", diff)
	}
}

func TestLongestFirst(t *testing.T) {
	in := []string{"bb", "a", "cccc", "dd"}
	got := longestFirst(in)
	want := []string{"cccc", "bb", "dd", "a"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("longestFirst() mismatch (-want +got):\n%s", diff)
	}
	if in[0] != "bb" {
		t.Error("longestFirst should not reorder its input")
	}
}

func TestEnsurePeriod(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello", "Hello."},
		{"Hello.", "Hello."},
		{"Hello?", "Hello?"},
		{"Hello!  ", "Hello!"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ensurePeriod(tt.in); got != tt.want {
			t.Errorf("ensurePeriod(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncateWords(t *testing.T) {
	short := "Nothing to cut here."
	if got := truncateWords(short, 300, 50); got != short {
		t.Errorf("truncateWords(short) = %q, want unchanged", got)
	}

	long := strings.Repeat("chocolate ", 80) + "end."
	got := truncateWords(long, 300, 50)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated text should end with ellipsis, got %q", got)
	}
	if n := utf8.RuneCountInString(got); n > 300 {
		t.Errorf("truncated length = %d runes, want at most 300", n)
	}
	if strings.Contains(got, "chocola...") {
		t.Errorf("cut should land on a word boundary, got %q", got)
	}

	shortWords := strings.Repeat("go is fun ", 30)
	got = truncateWords(shortWords, 200, 50)
	if n := len(strings.Fields(got)); n != 50 {
		t.Errorf("truncated word count = %d, want 50", n)
	}

	// few words, each very long: the word cut alone cannot shorten it
	fewLong := strings.Repeat(strings.Repeat("a", 34)+" ", 20)
	got = truncateWords(fewLong, 300, 50)
	if n := utf8.RuneCountInString(got); n > 300 {
		t.Errorf("truncated length = %d runes, want at most 300", n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated text should end with ellipsis, got %q", got)
	}

	unbroken := strings.Repeat("x", 500)
	if got := truncateWords(unbroken, 300, 50); utf8.RuneCountInString(got) != 300 {
		t.Errorf("unbroken text truncated to %d runes, want 300", utf8.RuneCountInString(got))
	}

	punctuated := strings.Repeat("word, ", 60)
	if got := truncateWords(punctuated, 30, 3); got != "word, word, word..." {
		t.Errorf("truncateWords(punctuated) = %q, want %q", got, "word, word, word...")
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"about DevOps", "About DevOps"},
		{"ótimo", "Ótimo"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := capitalize(tt.in); got != tt.want {
			t.Errorf("capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
