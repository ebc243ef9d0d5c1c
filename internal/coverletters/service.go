package coverletters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"career-backend/internal/llm"
	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/telemetry"
	"career-backend/internal/users"
)

// Generator renders prompts and returns text answers.
type Generator interface {
	Render(name string, data any) (string, error)
	Text(ctx context.Context, op, prompt string) (string, error)
}

// UserResolver maps a verified subject to a profile.
type UserResolver interface {
	Resolve(ctx context.Context, subject string) (users.User, error)
}

type Service struct {
	Repo  Repo
	Users UserResolver
	LLM   Generator
	Now   func() time.Time
}

func NewService(repo Repo, resolver UserResolver, gen Generator) *Service {
	return &Service{Repo: repo, Users: resolver, LLM: gen, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// Generate writes a cover letter for the caller. When the provider quota is
// exhausted a failed letter carrying the provider diagnostics is stored and
// returned without error.
func (s *Service) Generate(ctx context.Context, subject string, req GenerateRequest) (CoverLetter, error) {
	user, err := s.Users.Resolve(ctx, subject)
	if err != nil {
		return CoverLetter{}, err
	}
	req = req.normalized()
	if err := req.Validate(); err != nil {
		return CoverLetter{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if s.LLM == nil {
		return CoverLetter{}, ErrGenerationFailed
	}

	prompt, err := s.LLM.Render(llm.PromptCoverLetter, llm.CoverLetterPrompt{
		JobTitle:        req.JobTitle,
		CompanyName:     req.CompanyName,
		JobDescription:  req.JobDescription,
		Industry:        user.Industry,
		ExperienceYears: user.ExperienceYears,
		Skills:          user.Skills,
		Bio:             user.Bio,
	})
	if err != nil {
		return CoverLetter{}, err
	}

	now := s.now()
	letter := CoverLetter{
		ID:             uuid.NewString(),
		UserID:         user.ID,
		JobDescription: req.JobDescription,
		CompanyName:    req.CompanyName,
		JobTitle:       req.JobTitle,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	content, genErr := s.LLM.Text(ctx, llm.PromptCoverLetter, prompt)
	switch {
	case genErr == nil:
		letter.Content = content
		letter.Status = StatusCompleted
	case errors.Is(genErr, llm.ErrQuotaExceeded):
		letter.Content = degradedContent(llm.ProviderDetails(genErr))
		letter.Status = StatusFailed
		metrics.IncGeneration(llm.PromptCoverLetter, metrics.OutcomeDegraded)
		telemetry.Warn("coverletters.quota_degraded", telemetry.FromContext(ctx, map[string]any{
			"user_id":   user.ID,
			"letter_id": letter.ID,
		}))
	default:
		telemetry.Error("coverletters.generation_failed", telemetry.FromContext(ctx, map[string]any{
			"user_id": user.ID,
			"error":   genErr.Error(),
		}))
		return CoverLetter{}, ErrGenerationFailed
	}

	if err := s.Repo.Create(ctx, letter); err != nil {
		return CoverLetter{}, err
	}
	return letter, nil
}

// List returns the caller's letters newest first.
func (s *Service) List(ctx context.Context, subject string) ([]CoverLetter, error) {
	user, err := s.Users.Resolve(ctx, subject)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListByUser(ctx, user.ID)
}

// Get returns one of the caller's letters.
func (s *Service) Get(ctx context.Context, subject, id string) (CoverLetter, error) {
	user, err := s.Users.Resolve(ctx, subject)
	if err != nil {
		return CoverLetter{}, err
	}
	return s.Repo.GetByID(ctx, user.ID, id)
}

// Delete removes one of the caller's letters.
func (s *Service) Delete(ctx context.Context, subject, id string) error {
	user, err := s.Users.Resolve(ctx, subject)
	if err != nil {
		return err
	}
	return s.Repo.Delete(ctx, user.ID, id)
}
