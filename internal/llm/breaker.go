package llm

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"

	"career-backend/internal/shared/telemetry"
)

// BreakerSettings configures a circuit breaker around a Provider.
type BreakerSettings struct {
	// ConsecutiveFailures trips the breaker once reached.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing.
	OpenTimeout time.Duration
}

// DefaultBreakerSettings trips after five straight transient failures.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{ConsecutiveFailures: 5, OpenTimeout: 30 * time.Second}
}

// BreakerProvider short-circuits calls after repeated transient failures.
// Quota and request errors do not count against the breaker.
type BreakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker[Response]
}

// WithBreaker wraps next in a circuit breaker.
func WithBreaker(next Provider, settings BreakerSettings) *BreakerProvider {
	if settings.ConsecutiveFailures == 0 {
		settings.ConsecutiveFailures = DefaultBreakerSettings().ConsecutiveFailures
	}
	threshold := settings.ConsecutiveFailures
	cb := gobreaker.NewCircuitBreaker[Response](gobreaker.Settings{
		Name:    "llm-" + next.Name(),
		Timeout: settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, ErrTransient)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			telemetry.Warn("llm.breaker_state", map[string]any{
				"name": name,
				"from": from.String(),
				"to":   to.String(),
			})
		},
	})
	return &BreakerProvider{next: next, cb: cb}
}

func (b *BreakerProvider) Name() string {
	return b.next.Name()
}

// State reports the breaker state for health output.
func (b *BreakerProvider) State() string {
	return b.cb.State().String()
}

func (b *BreakerProvider) Generate(ctx context.Context, req Request) (Response, error) {
	resp, err := b.cb.Execute(func() (Response, error) {
		return b.next.Generate(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return Response{}, &ProviderError{
			Provider: b.next.Name(),
			Kind:     KindOther,
			Message:  "circuit breaker open",
			Err:      err,
		}
	}
	return resp, err
}
