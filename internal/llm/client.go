package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/telemetry"
)

// Client renders prompts and sends them to a Provider with retry.
type Client struct {
	Provider Provider
	Model    string
	Retry    RetryPolicy
	Prompts  *Prompts
}

// NewClient builds a client using the embedded prompt catalog.
func NewClient(provider Provider, model string, retry RetryPolicy) (*Client, error) {
	prompts, err := DefaultPrompts()
	if err != nil {
		return nil, err
	}
	return &Client{Provider: provider, Model: model, Retry: retry, Prompts: prompts}, nil
}

// Render executes a named prompt template. A client without its own catalog
// uses the shared embedded one and is never modified.
func (c *Client) Render(name string, data any) (string, error) {
	prompts := c.Prompts
	if prompts == nil {
		var err error
		if prompts, err = sharedPrompts(); err != nil {
			return "", err
		}
	}
	return prompts.Render(name, data)
}

// Text sends prompt and returns the trimmed response text.
func (c *Client) Text(ctx context.Context, op, prompt string) (string, error) {
	text, err := c.generate(ctx, op, prompt, false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// JSON sends prompt in JSON mode and decodes the fenced or bare response into out.
func (c *Client) JSON(ctx context.Context, op, prompt string, out any) error {
	text, err := c.generate(ctx, op, prompt, true)
	if err != nil {
		return err
	}
	if err := DecodeJSON(text, out); err != nil {
		telemetry.Warn("llm.output_malformed", telemetry.FromContext(ctx, map[string]any{
			"operation": op,
			"error":     err.Error(),
		}))
		return pkgerrors.Wrapf(err, "llm %s", op)
	}
	return nil
}

// TryText is Text that logs failures and returns an absent value instead.
func (c *Client) TryText(ctx context.Context, op, prompt string) Optional[string] {
	text, err := c.Text(ctx, op, prompt)
	if err != nil {
		telemetry.Warn("llm.best_effort_failed", telemetry.FromContext(ctx, map[string]any{
			"operation": op,
			"error":     err.Error(),
		}))
		return None[string]()
	}
	if text == "" {
		return None[string]()
	}
	return Some(text)
}

func (c *Client) generate(ctx context.Context, op, prompt string, jsonMode bool) (string, error) {
	if c == nil || c.Provider == nil {
		return "", pkgerrors.Wrapf(ErrNotConfigured, "llm %s", op)
	}

	ctx, span := otel.Tracer("career-backend/llm").Start(ctx, "llm."+op)
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", c.Provider.Name()),
		attribute.String("llm.model", c.Model),
		attribute.Bool("llm.json", jsonMode),
		attribute.Int("llm.prompt_length", len(prompt)),
	)

	retry := c.Retry
	userOnRetry := retry.OnRetry
	retry.OnRetry = func(attempt int, err error) {
		metrics.IncGenerationRetry(op)
		telemetry.Warn("llm.retry", telemetry.FromContext(ctx, map[string]any{
			"operation": op,
			"attempt":   attempt,
			"error":     err.Error(),
		}))
		if userOnRetry != nil {
			userOnRetry(attempt, err)
		}
	}

	start := time.Now()
	var text string
	err := retry.Do(ctx, func(ctx context.Context) error {
		resp, err := c.Provider.Generate(ctx, Request{Model: c.Model, Prompt: prompt, JSON: jsonMode})
		if err != nil {
			return err
		}
		text = resp.Text
		return nil
	})
	durationMs := float64(time.Since(start).Milliseconds())
	metrics.ObserveGenerationDurationMs(op, durationMs)

	if err != nil {
		metrics.IncGeneration(op, metrics.OutcomeFailed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		telemetry.Error("llm.generation_failed", telemetry.FromContext(ctx, map[string]any{
			"operation":   op,
			"provider":    c.Provider.Name(),
			"duration_ms": durationMs,
			"quota":       errors.Is(err, ErrQuotaExceeded),
			"error":       err.Error(),
		}))
		return "", pkgerrors.Wrapf(err, "llm %s", op)
	}

	metrics.IncGeneration(op, metrics.OutcomeCompleted)
	span.SetAttributes(attribute.Int("llm.response_length", len(text)))
	telemetry.Info("llm.generation_completed", telemetry.FromContext(ctx, map[string]any{
		"operation":   op,
		"provider":    c.Provider.Name(),
		"duration_ms": durationMs,
	}))
	return text, nil
}
