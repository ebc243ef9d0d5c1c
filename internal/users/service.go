package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"career-backend/internal/shared/storage/db"
	"career-backend/internal/shared/telemetry"
)

const defaultProfileTxTimeout = 10 * time.Second

// InsightSeeder makes sure an insight row exists for an industry.
type InsightSeeder interface {
	EnsureForIndustry(ctx context.Context, industry string) error
}

type Service struct {
	Repo      Repo
	Tx        db.TxRunner
	Insights  InsightSeeder
	TxTimeout time.Duration
}

func NewService(repo Repo, tx db.TxRunner, insights InsightSeeder, txTimeout time.Duration) *Service {
	if txTimeout <= 0 {
		txTimeout = defaultProfileTxTimeout
	}
	return &Service{Repo: repo, Tx: tx, Insights: insights, TxTimeout: txTimeout}
}

// UpsertFromIdentity records the caller on first sight and refreshes identity fields after.
func (s *Service) UpsertFromIdentity(ctx context.Context, identity Identity) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	identity.Subject = strings.TrimSpace(identity.Subject)
	if identity.Subject == "" {
		return User{}, ErrUnauthorized
	}
	return s.Repo.UpsertIdentity(ctx, identity)
}

// Resolve maps a verified subject to its profile.
func (s *Service) Resolve(ctx context.Context, subject string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return User{}, ErrUnauthorized
	}
	return s.Repo.GetBySubject(ctx, subject)
}

// UpdateProfile seeds the industry insight and writes the profile in one unit of work.
func (s *Service) UpdateProfile(ctx context.Context, subject string, profile ProfileUpdate) (User, error) {
	user, err := s.Resolve(ctx, subject)
	if err != nil {
		return User{}, err
	}
	profile = profile.Normalized()
	if err := profile.Validate(); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	run := func(ctx context.Context, fn func(ctx context.Context) error) error {
		if s.Tx == nil {
			return fn(ctx)
		}
		return s.Tx.WithinTx(ctx, s.TxTimeout, fn)
	}

	var updated User
	err = run(ctx, func(ctx context.Context) error {
		if s.Insights != nil {
			if err := s.Insights.EnsureForIndustry(ctx, profile.Industry); err != nil {
				return fmt.Errorf("ensure industry insight: %w", err)
			}
		}
		u, err := s.Repo.UpdateProfile(ctx, user.ID, profile)
		if err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		telemetry.Error("users.profile_update_failed", map[string]any{
			"user_id":  user.ID,
			"industry": profile.Industry,
			"error":    err.Error(),
		})
		return User{}, err
	}
	telemetry.Info("users.profile_updated", map[string]any{
		"user_id":  updated.ID,
		"industry": updated.Industry,
	})
	return updated, nil
}

// OnboardingStatus reports whether the caller has completed onboarding.
func (s *Service) OnboardingStatus(ctx context.Context, subject string) (bool, error) {
	user, err := s.Resolve(ctx, subject)
	if err != nil {
		return false, err
	}
	return user.Onboarded(), nil
}
