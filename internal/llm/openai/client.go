// Package openai adapts OpenAI Chat Completions to llm.Provider.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"career-backend/internal/llm"
)

const providerName = "openai"

var apiURL = "https://api.openai.com/v1/chat/completions"

// Client implements llm.Provider using OpenAI Chat Completions.
type Client struct {
	apiKey     string
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float32        `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

func (c *Client) Name() string {
	return providerName
}

// Generate sends the prompt as a single user message.
func (c *Client) Generate(ctx context.Context, req llm.Request) (llm.Response, error) {
	if strings.TrimSpace(req.Model) == "" {
		return llm.Response{}, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	reqBody := chatRequest{
		Model:    req.Model,
		Messages: []chatMessage{{Role: "user", Content: req.Prompt}},
	}
	if req.JSON {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	if !isGPT5(req.Model) {
		temp := float32(0.7)
		reqBody.Temperature = &temp
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return llm.Response{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return llm.Response{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return llm.Response{}, err
		}
		return llm.Response{}, &llm.ProviderError{Provider: providerName, Kind: llm.KindTransient, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return llm.Response{}, &llm.ProviderError{Provider: providerName, Kind: llm.KindTransient, Message: "read body", Err: err}
	}

	var parsed chatResponse
	parseErr := json.Unmarshal(body, &parsed)
	if resp.StatusCode >= 400 {
		return llm.Response{}, statusError(resp.StatusCode, parsed.Error, body)
	}
	if parseErr != nil {
		return llm.Response{}, &llm.ProviderError{Provider: providerName, Kind: llm.KindOther, Message: "response parse", Err: parseErr}
	}
	if parsed.Error != nil {
		return llm.Response{}, statusError(resp.StatusCode, parsed.Error, body)
	}
	if len(parsed.Choices) == 0 {
		return llm.Response{}, &llm.ProviderError{Provider: providerName, Kind: llm.KindOther, Message: "response missing choices"}
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return llm.Response{}, &llm.ProviderError{Provider: providerName, Kind: llm.KindOther, Message: "response empty content"}
	}
	return llm.Response{Text: content}, nil
}

func statusError(status int, apiErr *apiError, body []byte) *llm.ProviderError {
	pe := &llm.ProviderError{
		Provider:   providerName,
		StatusCode: status,
		Message:    strings.TrimSpace(string(body)),
		Details:    strings.TrimSpace(string(body)),
	}
	switch status {
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		pe.Kind = llm.KindTransient
	case http.StatusTooManyRequests:
		// Rate limits clear on their own; an exhausted balance does not.
		pe.Kind = llm.KindTransient
		if apiErr != nil && (apiErr.Code == "insufficient_quota" || apiErr.Type == "insufficient_quota") {
			pe.Kind = llm.KindQuota
		}
	default:
		pe.Kind = llm.KindOther
	}
	if apiErr != nil {
		pe.Message = fmt.Sprintf("%s (%s)", apiErr.Message, apiErr.Type)
	}
	return pe
}

func isGPT5(model string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(model)), "gpt-5")
}

var _ llm.Provider = (*Client)(nil)
