package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"google.golang.org/genai"

	"career-backend/internal/llm"
)

func fakeProvider(text string, err error, seen **genai.GenerateContentConfig) *Provider {
	return &Provider{
		generate: func(_ context.Context, _ string, _ string, cfg *genai.GenerateContentConfig) (string, error) {
			if seen != nil {
				*seen = cfg
			}
			return text, err
		},
	}
}

func TestGenerateClassifiesAPIErrors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
		quota     bool
	}{
		{name: "unavailable", err: genai.APIError{Code: 503, Status: "UNAVAILABLE", Message: "overloaded"}, transient: true},
		{name: "internal", err: genai.APIError{Code: 500, Message: "internal"}, transient: true},
		{name: "quota", err: genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "quota"}, quota: true},
		{name: "wrapped quota", err: fmt.Errorf("call: %w", genai.APIError{Code: 429, Message: "quota"}), quota: true},
		{name: "bad request", err: genai.APIError{Code: 400, Status: "INVALID_ARGUMENT", Message: "bad"}},
		{name: "timeout", err: context.DeadlineExceeded, transient: true},
		{name: "network", err: errors.New("connection reset"), transient: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := fakeProvider("", tt.err, nil).Generate(context.Background(), llm.Request{Model: "gemini-2.5-flash", Prompt: "p"})
			if err == nil {
				t.Fatalf("expected error")
			}
			if got := errors.Is(err, llm.ErrTransient); got != tt.transient {
				t.Fatalf("transient = %v, want %v (%v)", got, tt.transient, err)
			}
			if got := errors.Is(err, llm.ErrQuotaExceeded); got != tt.quota {
				t.Fatalf("quota = %v, want %v (%v)", got, tt.quota, err)
			}
		})
	}
}

func TestGenerateQuotaDetails(t *testing.T) {
	apiErr := genai.APIError{
		Code:    429,
		Status:  "RESOURCE_EXHAUSTED",
		Message: "quota exceeded",
		Details: []map[string]any{{"reason": "RATE_LIMIT_EXCEEDED"}},
	}
	_, err := fakeProvider("", apiErr, nil).Generate(context.Background(), llm.Request{Prompt: "p"})
	details := llm.ProviderDetails(err)
	if !strings.Contains(details, "RATE_LIMIT_EXCEEDED") {
		t.Fatalf("expected details in %q", details)
	}
}

func TestGenerateJSONMode(t *testing.T) {
	var seen *genai.GenerateContentConfig
	resp, err := fakeProvider(`{"a":1}`, nil, &seen).Generate(context.Background(), llm.Request{Prompt: "p", JSON: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Text != `{"a":1}` {
		t.Fatalf("unexpected text %q", resp.Text)
	}
	if seen == nil || seen.ResponseMIMEType != "application/json" {
		t.Fatalf("expected json mime type, got %+v", seen)
	}

	seen = nil
	if _, err := fakeProvider("hi", nil, &seen).Generate(context.Background(), llm.Request{Prompt: "p"}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if seen != nil {
		t.Fatalf("expected no config for text mode")
	}
}

func TestGenerateEmptyResponse(t *testing.T) {
	_, err := fakeProvider("  ", nil, nil).Generate(context.Background(), llm.Request{Prompt: "p"})
	if err == nil || errors.Is(err, llm.ErrTransient) {
		t.Fatalf("expected non-transient error, got %v", err)
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New(context.Background(), " "); err == nil {
		t.Fatalf("expected error for empty key")
	}
}
