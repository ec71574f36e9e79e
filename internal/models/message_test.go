// ABOUTME: Tests for message constructors, cloning and sampling validation
// ABOUTME: Guards the history copy semantics the session relies on
package models

import "testing"

func TestMessageConstructors(t *testing.T) {
	u := UserMessage("hi")
	if u.Role != RoleUser || u.Text != "hi" {
		t.Errorf("UserMessage() = %+v", u)
	}
	m := ModelMessage("hello")
	if m.Role != RoleModel || m.Text != "hello" {
		t.Errorf("ModelMessage() = %+v", m)
	}
}

func TestCloneMessages_AppendDoesNotLeak(t *testing.T) {
	original := make([]Message, 1, 8)
	original[0] = UserMessage("first")

	clone := CloneMessages(original)
	clone = append(clone, UserMessage("second"))

	if len(original) != 1 {
		t.Fatalf("original length = %d, want 1", len(original))
	}
	if got := original[:2][1].Text; got != "" {
		t.Errorf("append to clone leaked into original backing array: %q", got)
	}
	if len(clone) != 2 {
		t.Errorf("clone length = %d, want 2", len(clone))
	}
}

func TestSamplingConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     SamplingConfig
		wantErr bool
	}{
		{"defaults", DefaultSampling(), false},
		{"temperature too high", SamplingConfig{Temperature: 2.5, MaxTokens: 10, TopP: 0.5}, true},
		{"negative temperature", SamplingConfig{Temperature: -0.1, MaxTokens: 10, TopP: 0.5}, true},
		{"top_p above one", SamplingConfig{Temperature: 1, MaxTokens: 10, TopP: 1.5}, true},
		{"zero max tokens", SamplingConfig{Temperature: 1, MaxTokens: 0, TopP: 0.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultSampling(t *testing.T) {
	s := DefaultSampling()
	if s.Temperature != 0.88 || s.MaxTokens != 1000 || s.TopP != 0.95 {
		t.Errorf("DefaultSampling() = %+v", s)
	}
}
