package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"career-backend/internal/llm"
	"career-backend/internal/shared/telemetry"
	"career-backend/internal/users"
)

// Generator renders prompts and decodes JSON answers.
type Generator interface {
	Render(name string, data any) (string, error)
	JSON(ctx context.Context, op, prompt string, out any) error
}

// UserResolver maps a verified subject to a profile.
type UserResolver interface {
	Resolve(ctx context.Context, subject string) (users.User, error)
}

type Service struct {
	Repo  Repo
	LLM   Generator
	Users UserResolver
	Now   func() time.Time
}

func NewService(repo Repo, gen Generator, resolver UserResolver) *Service {
	return &Service{Repo: repo, LLM: gen, Users: resolver, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// EnsureForIndustry stores a baseline insight for industry unless one exists.
func (s *Service) EnsureForIndustry(ctx context.Context, industry string) error {
	industry = strings.TrimSpace(industry)
	if industry == "" {
		return errors.New("industry is required")
	}
	return s.Repo.CreateIfMissing(ctx, baseline(industry, s.now()))
}

// GetForUser returns the caller's industry insight, refreshing it when due.
func (s *Service) GetForUser(ctx context.Context, subject string) (IndustryInsight, error) {
	user, err := s.Users.Resolve(ctx, subject)
	if err != nil {
		return IndustryInsight{}, err
	}
	if !user.Onboarded() {
		return IndustryInsight{}, ErrNotOnboarded
	}
	return s.ForIndustry(ctx, user.Industry)
}

// ForIndustry returns the stored insight, generating a fresh one when it is
// missing, stale or a baseline. Generation failures degrade to the stored
// row, or to an unsaved fallback when there is none.
func (s *Service) ForIndustry(ctx context.Context, industry string) (IndustryInsight, error) {
	now := s.now()
	existing, err := s.Repo.GetByIndustry(ctx, industry)
	found := err == nil
	if err != nil && !errors.Is(err, ErrNotFound) {
		return IndustryInsight{}, err
	}
	if found && !existing.Stale(now) {
		return existing, nil
	}

	generated, genErr := s.generate(ctx, industry, now)
	if genErr == nil {
		stored, err := s.Repo.Upsert(ctx, generated)
		if err != nil {
			return IndustryInsight{}, err
		}
		return stored, nil
	}

	telemetry.Warn("insights.generation_degraded", telemetry.FromContext(ctx, map[string]any{
		"industry":      industry,
		"have_existing": found,
		"error":         genErr.Error(),
	}))
	if found {
		return existing, nil
	}
	return fallback(industry, now), nil
}

func (s *Service) generate(ctx context.Context, industry string, now time.Time) (IndustryInsight, error) {
	if s.LLM == nil {
		return IndustryInsight{}, llm.ErrNotConfigured
	}
	prompt, err := s.LLM.Render(llm.PromptIndustryInsights, llm.IndustryInsightsPrompt{Industry: industry})
	if err != nil {
		return IndustryInsight{}, err
	}
	var out generatedInsight
	if err := s.LLM.JSON(ctx, llm.PromptIndustryInsights, prompt, &out); err != nil {
		return IndustryInsight{}, err
	}
	if len(out.SalaryRanges) == 0 && len(out.TopSkills) == 0 && len(out.KeyTrends) == 0 {
		return IndustryInsight{}, fmt.Errorf("%w: empty insight", ErrInvalidOutput)
	}
	return out.toInsight(industry, now), nil
}
