// Package gemini adapts the Google Gemini API to llm.Provider.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"career-backend/internal/llm"
)

const providerName = "gemini"

type generateFunc func(ctx context.Context, model, prompt string, cfg *genai.GenerateContentConfig) (string, error)

// Provider calls Gemini models through the genai SDK.
type Provider struct {
	generate generateFunc
}

// New constructs a Gemini provider for the Gemini API backend.
func New(ctx context.Context, apiKey string) (*Provider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Provider{
		generate: func(ctx context.Context, model, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
			resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
			if err != nil {
				return "", err
			}
			return resp.Text(), nil
		},
	}, nil
}

func (p *Provider) Name() string {
	return providerName
}

// Generate sends one prompt and classifies failures.
func (p *Provider) Generate(ctx context.Context, req llm.Request) (llm.Response, error) {
	var cfg *genai.GenerateContentConfig
	if req.JSON {
		cfg = &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	}
	text, err := p.generate(ctx, req.Model, req.Prompt, cfg)
	if err != nil {
		return llm.Response{}, classify(err)
	}
	if strings.TrimSpace(text) == "" {
		return llm.Response{}, &llm.ProviderError{
			Provider: providerName,
			Kind:     llm.KindOther,
			Message:  "empty response",
		}
	}
	return llm.Response{Text: text}, nil
}

func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &llm.ProviderError{Provider: providerName, Kind: llm.KindTransient, Message: "request timeout", Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	apiErr, ok := asAPIError(err)
	if !ok {
		return &llm.ProviderError{Provider: providerName, Kind: llm.KindTransient, Message: err.Error(), Err: err}
	}

	kind := llm.KindForStatus(apiErr.Code)
	switch strings.ToUpper(apiErr.Status) {
	case "UNAVAILABLE":
		kind = llm.KindTransient
	case "RESOURCE_EXHAUSTED":
		kind = llm.KindQuota
	}
	details := ""
	if len(apiErr.Details) > 0 {
		if raw, mErr := json.Marshal(apiErr.Details); mErr == nil {
			details = string(raw)
		}
	}
	if details == "" {
		details = apiErr.Message
	}
	return &llm.ProviderError{
		Provider:   providerName,
		Kind:       kind,
		StatusCode: apiErr.Code,
		Message:    apiErr.Message,
		Details:    details,
		Err:        err,
	}
}

func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var apiPtr *genai.APIError
	if errors.As(err, &apiPtr) && apiPtr != nil {
		return *apiPtr, true
	}
	return genai.APIError{}, false
}
