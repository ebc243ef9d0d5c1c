// Package llmtest provides a scripted llm.Provider for tests.
package llmtest

import (
	"context"
	"sync"
	"time"

	"career-backend/internal/llm"
)

// Reply is one scripted provider answer.
type Reply struct {
	Text string
	Err  error
}

// Provider returns its replies in order and repeats the last one.
type Provider struct {
	mu      sync.Mutex
	replies []Reply
	prompts []string
}

func NewProvider(replies ...Reply) *Provider {
	return &Provider{replies: replies}
}

func (p *Provider) Name() string { return "llmtest" }

func (p *Provider) Generate(_ context.Context, req llm.Request) (llm.Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := len(p.prompts)
	p.prompts = append(p.prompts, req.Prompt)
	if len(p.replies) == 0 {
		return llm.Response{}, Transient()
	}
	if i >= len(p.replies) {
		i = len(p.replies) - 1
	}
	r := p.replies[i]
	if r.Err != nil {
		return llm.Response{}, r.Err
	}
	return llm.Response{Text: r.Text}, nil
}

// Prompts returns every prompt received so far.
func (p *Provider) Prompts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.prompts...)
}

// Calls is the number of Generate calls.
func (p *Provider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.prompts)
}

// NewClient wraps provider in a client that retries without sleeping.
func NewClient(provider llm.Provider) *llm.Client {
	client, err := llm.NewClient(provider, "test-model", llm.RetryPolicy{
		MaxAttempts: 3,
		Delay:       time.Millisecond,
		Sleep:       func(context.Context, time.Duration) error { return nil },
	})
	if err != nil {
		panic(err)
	}
	return client
}

func Transient() error {
	return &llm.ProviderError{Provider: "llmtest", Kind: llm.KindTransient, StatusCode: 503, Message: "unavailable"}
}

func Quota(details string) error {
	return &llm.ProviderError{Provider: "llmtest", Kind: llm.KindQuota, StatusCode: 429, Message: "quota exceeded", Details: details}
}
