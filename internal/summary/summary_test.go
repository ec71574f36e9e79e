// ABOUTME: Tests for policy parsing, construction, and the shared empty-log behavior
// ABOUTME: Helpers here build exchanges for the policy-specific tests
package summary

import (
	"strings"
	"testing"

	"github.com/harper/kit-onboarding/internal/models"
)

func exchange(t *testing.T, order int, user, assistant string) models.Exchange {
	t.Helper()
	ex, err := models.NewExchange(order, user, assistant)
	if err != nil {
		t.Fatalf("NewExchange(%q) error = %v", user, err)
	}
	return ex
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"topics", PolicyTopics, false},
		{"DIGEST", PolicyDigest, false},
		{" digest ", PolicyDigest, false},
		{"", PolicyTopics, false},
		{"semantic", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	s, err := New(PolicyTopics, 3)
	if err != nil {
		t.Fatalf("New(topics) error = %v", err)
	}
	if _, ok := s.(*TopicSummarizer); !ok {
		t.Errorf("New(topics) = %T, want *TopicSummarizer", s)
	}

	s, err = New(PolicyDigest, 3)
	if err != nil {
		t.Fatalf("New(digest) error = %v", err)
	}
	d, ok := s.(*DigestSummarizer)
	if !ok {
		t.Fatalf("New(digest) = %T, want *DigestSummarizer", s)
	}
	if d.window != 3 {
		t.Errorf("window = %d, want 3", d.window)
	}

	if _, err := New("bogus", 3); err == nil {
		t.Error("New(bogus) should fail")
	}
}

func TestSummarize_Empty(t *testing.T) {
	for _, policy := range []Policy{PolicyTopics, PolicyDigest} {
		s, err := New(policy, 3)
		if err != nil {
			t.Fatal(err)
		}
		if got := s.Summarize(nil); got != EmptyMessage {
			t.Errorf("%s Summarize(nil) = %q, want %q", policy, got, EmptyMessage)
		}
		if got := s.Summarize([]models.Exchange{}); got != EmptyMessage {
			t.Errorf("%s Summarize([]) = %q, want %q", policy, got, EmptyMessage)
		}
	}
}

func TestSummarize_Banner(t *testing.T) {
	exchanges := []models.Exchange{exchange(t, 0, "Tell me about the company", "Choco-dev builds point of sale software for chocolate shops.")}
	for _, policy := range []Policy{PolicyTopics, PolicyDigest} {
		s, _ := New(policy, 3)
		got := s.Summarize(exchanges)
		if !strings.HasPrefix(got, bannerHeader) {
			t.Errorf("%s summary should start with the banner header", policy)
		}
		if !strings.HasSuffix(got, bannerFooter) {
			t.Errorf("%s summary should end with the banner footer", policy)
		}
	}
}
