// Package llm sends prompt templates to a hosted model and classifies the
// provider's failures.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Request is one prompt sent to a provider.
type Request struct {
	Model  string
	Prompt string
	// JSON asks the provider for a JSON response body when it supports that.
	JSON bool
}

// Response is the provider's text output.
type Response struct {
	Text string
}

// Provider abstracts hosted LLM APIs.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (Response, error)
}

// ErrorKind classifies provider failures.
type ErrorKind string

const (
	KindTransient ErrorKind = "transient"
	KindQuota     ErrorKind = "quota"
	KindOther     ErrorKind = "other"
)

var (
	ErrTransient       = errors.New("llm provider temporarily unavailable")
	ErrQuotaExceeded   = errors.New("llm provider quota exceeded")
	ErrMalformedOutput = errors.New("llm output malformed")
	ErrNotConfigured   = errors.New("llm provider not configured")
)

// ProviderError is returned by providers for failed calls.
type ProviderError struct {
	Provider   string
	Kind       ErrorKind
	StatusCode int
	Message    string
	// Details carries the provider's structured error payload, if any.
	Details string
	Err     error
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s http status %d: %s", e.Provider, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s: %s", e.Provider, msg)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is matches ErrTransient and ErrQuotaExceeded by kind.
func (e *ProviderError) Is(target error) bool {
	switch target {
	case ErrTransient:
		return e.Kind == KindTransient
	case ErrQuotaExceeded:
		return e.Kind == KindQuota
	default:
		return false
	}
}

// KindForStatus maps an HTTP status code to an ErrorKind.
func KindForStatus(status int) ErrorKind {
	switch {
	case status == 429:
		return KindQuota
	case status >= 500:
		return KindTransient
	default:
		return KindOther
	}
}

// ProviderDetails returns the diagnostic payload of the first ProviderError in err.
func ProviderDetails(err error) string {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		if err == nil {
			return ""
		}
		return err.Error()
	}
	if pe.Details != "" {
		return pe.Details
	}
	return pe.Error()
}

// Optional holds a value that may be absent, as produced by best-effort calls.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None returns an absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// Present reports whether a value is held.
func (o Optional[T]) Present() bool {
	return o.ok
}

// Ptr returns a pointer to the value, or nil when absent.
func (o Optional[T]) Ptr() *T {
	if !o.ok {
		return nil
	}
	v := o.value
	return &v
}
