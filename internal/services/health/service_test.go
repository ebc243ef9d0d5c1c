package health

import (
	"context"
	"errors"
	"testing"
)

type pingStub struct{ err error }

func (p pingStub) PingContext(context.Context) error { return p.err }

type breakerStub string

func (b breakerStub) State() string { return string(b) }

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		svc  *Service
		want Status
	}{
		{name: "memory", svc: NewService(nil, nil, ""), want: Status{OK: true, Database: "memory", Provider: "none"}},
		{name: "db up", svc: NewService(pingStub{}, breakerStub("closed"), "gemini"), want: Status{OK: true, Database: "up", Provider: "gemini", Breaker: "closed"}},
		{name: "db down", svc: NewService(pingStub{err: errors.New("refused")}, breakerStub("open"), "openai"), want: Status{OK: false, Database: "down", Provider: "openai", Breaker: "open"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.svc.Status(context.Background()); got != tt.want {
				t.Fatalf("got %+v want %+v", got, tt.want)
			}
		})
	}
}
