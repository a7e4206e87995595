package chat

import (
	"context"
	"errors"
	"testing"
)

func TestFallbackClientPrimarySucceeds(t *testing.T) {
	primary := &stubLLM{resp: LLMResponse{Text: "primary"}}
	fallback := &stubLLM{resp: LLMResponse{Text: "fallback"}}
	client := NewFallbackLLMClient(primary, fallback, nil)

	resp, err := client.Complete(context.Background(), LLMRequest{Model: "m"})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if resp.Text != "primary" {
		t.Errorf("got %q, want primary response", resp.Text)
	}
}

func TestFallbackClientUsesFallback(t *testing.T) {
	primary := &stubLLM{err: errors.New("throttled")}
	fallback := &stubLLM{resp: LLMResponse{Text: "fallback"}}
	client := NewFallbackLLMClient(primary, fallback, nil)

	resp, err := client.Complete(context.Background(), LLMRequest{Model: "m"})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if resp.Text != "fallback" {
		t.Errorf("got %q, want fallback response", resp.Text)
	}
}

func TestFallbackClientBothFail(t *testing.T) {
	primary := &stubLLM{err: errors.New("throttled")}
	fallback := &stubLLM{err: errors.New("quota exceeded")}
	client := NewFallbackLLMClient(primary, fallback, nil)

	if _, err := client.Complete(context.Background(), LLMRequest{Model: "m"}); err == nil {
		t.Fatal("expected error when both providers fail")
	}
}

func TestFallbackClientNoFallbackConfigured(t *testing.T) {
	wantErr := errors.New("throttled")
	client := NewFallbackLLMClient(&stubLLM{err: wantErr}, nil, nil)

	if _, err := client.Complete(context.Background(), LLMRequest{Model: "m"}); !errors.Is(err, wantErr) {
		t.Errorf("got %v, want the primary error", err)
	}
}
