package health

import (
	"context"
	"time"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// BreakerState reports the generation circuit breaker state.
type BreakerState interface {
	State() string
}

// Service reports dependency health for the status endpoint.
type Service struct {
	DB          Pinger
	Breaker     BreakerState
	Provider    string
	PingTimeout time.Duration
}

func NewService(db Pinger, breaker BreakerState, provider string) *Service {
	return &Service{DB: db, Breaker: breaker, Provider: provider, PingTimeout: 2 * time.Second}
}

// Status is the health payload. OK is false only when a configured database is unreachable.
type Status struct {
	OK       bool   `json:"ok"`
	Database string `json:"database"`
	Provider string `json:"provider"`
	Breaker  string `json:"breaker,omitempty"`
}

func (s *Service) Status(ctx context.Context) Status {
	st := Status{OK: true, Database: "memory", Provider: s.Provider}
	if st.Provider == "" {
		st.Provider = "none"
	}
	if s.DB != nil {
		timeout := s.PingTimeout
		if timeout <= 0 {
			timeout = 2 * time.Second
		}
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err := s.DB.PingContext(pingCtx); err != nil {
			st.OK = false
			st.Database = "down"
		} else {
			st.Database = "up"
		}
	}
	if s.Breaker != nil {
		st.Breaker = s.Breaker.State()
	}
	return st
}
