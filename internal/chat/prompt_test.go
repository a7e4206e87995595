package chat

import (
	"strings"
	"testing"
)

func TestIsQuoteRequest(t *testing.T) {
	cases := []struct {
		msg  string
		want bool
	}{
		{"How much does a move cost?", true},
		{"can I get a quote", true},
		{"cuánto cuesta una mudanza", true},
		{"what time do you open", false},
	}
	for _, tc := range cases {
		if got := IsQuoteRequest(tc.msg); got != tc.want {
			t.Errorf("IsQuoteRequest(%q) = %v, want %v", tc.msg, got, tc.want)
		}
	}
}

func TestBuildSystemPromptLanguage(t *testing.T) {
	en := BuildSystemPrompt("hello, do you do office cleaning?", "(501) 575-5189")
	if !strings.Contains(en, "You are Favour") {
		t.Error("expected the English persona prompt")
	}
	if !strings.Contains(en, "(501) 575-5189") {
		t.Error("expected the company phone in the prompt")
	}

	es := BuildSystemPrompt("hola, necesito una mudanza", "(501) 575-5189")
	if !strings.Contains(es, "Eres Favour") {
		t.Error("expected the Spanish persona prompt")
	}
}

func TestFallbackMessageIncludesPhone(t *testing.T) {
	msg := FallbackMessage("(501) 575-5189")
	if !strings.Contains(msg, "(501) 575-5189") {
		t.Errorf("fallback must carry the callback number, got %q", msg)
	}
}
