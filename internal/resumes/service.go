package resumes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"career-backend/internal/llm"
	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/telemetry"
	"career-backend/internal/users"
	"career-backend/resume/markdown"
	"career-backend/resume/model"
	"career-backend/resume/render"
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
	Repo     Repo
	Users    UserResolver
	LLM      Generator
	Renderer *render.PDFRenderer
}

func NewService(repo Repo, resolver UserResolver, gen Generator, renderer *render.PDFRenderer) *Service {
	if renderer == nil {
		renderer = render.NewPDFRenderer()
	}
	return &Service{Repo: repo, Users: resolver, LLM: gen, Renderer: renderer}
}

// Get returns the caller's saved resume.
func (s *Service) Get(ctx context.Context, subject string) (Resume, error) {
	user, err := s.Users.Resolve(ctx, subject)
	if err != nil {
		return Resume{}, err
	}
	return s.Repo.GetByUser(ctx, user.ID)
}

// Save stores the caller's resume, assembling markdown from the form when given.
func (s *Service) Save(ctx context.Context, subject string, in Input) (Resume, error) {
	user, err := s.Users.Resolve(ctx, subject)
	if err != nil {
		return Resume{}, err
	}
	content, err := contentFor(in, user.FullName)
	if err != nil {
		return Resume{}, err
	}
	resume, err := s.Repo.Upsert(ctx, user.ID, content)
	if err != nil {
		return Resume{}, err
	}
	telemetry.Info("resumes.saved", telemetry.FromContext(ctx, map[string]any{
		"user_id":   user.ID,
		"resume_id": resume.ID,
		"bytes":     len(content),
	}))
	return resume, nil
}

// Preview assembles markdown and returns its sections and classified view.
func (s *Service) Preview(ctx context.Context, subject string, in Input) (PreviewResult, error) {
	user, err := s.Users.Resolve(ctx, subject)
	if err != nil {
		return PreviewResult{}, err
	}
	content, err := contentFor(in, user.FullName)
	if err != nil {
		return PreviewResult{}, err
	}
	sections := markdown.Parse(content)
	return PreviewResult{
		Markdown: content,
		Sections: sections,
		Preview:  markdown.BuildPreview(sections, user.FullName),
	}, nil
}

// PDF renders the form for download. Nothing is stored.
func (s *Service) PDF(ctx context.Context, subject string, doc model.ResumeDocument) (render.Document, error) {
	user, err := s.Users.Resolve(ctx, subject)
	if err != nil {
		return render.Document{}, err
	}
	if err := doc.Validate(); err != nil {
		return render.Document{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	out, err := s.Renderer.Render(doc, user.FullName)
	if err != nil {
		return render.Document{}, err
	}
	metrics.ObservePDF(out.Pages)
	return out, nil
}

// Improve rewrites one description paragraph for the caller's industry.
func (s *Service) Improve(ctx context.Context, subject string, req ImproveRequest) (string, error) {
	user, err := s.Users.Resolve(ctx, subject)
	if err != nil {
		return "", err
	}
	req = req.normalized()
	if err := req.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if s.LLM == nil {
		return "", ErrGenerationFailed
	}
	industry := user.Industry
	if industry == "" {
		industry = "general"
	}
	prompt, err := s.LLM.Render(llm.PromptImproveResume, llm.ImproveResumePrompt{
		Type:     req.Type,
		Industry: industry,
		Current:  req.Current,
	})
	if err != nil {
		return "", err
	}
	improved, err := s.LLM.Text(ctx, llm.PromptImproveResume, prompt)
	if err != nil {
		telemetry.Error("resumes.improve_failed", telemetry.FromContext(ctx, map[string]any{
			"user_id": user.ID,
			"type":    req.Type,
			"error":   err.Error(),
		}))
		return "", ErrGenerationFailed
	}
	return improved, nil
}

func contentFor(in Input, displayName string) (string, error) {
	if in.Form != nil {
		if err := in.Form.Validate(); err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return markdown.Assemble(*in.Form, displayName), nil
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return "", fmt.Errorf("%w: content or form is required", ErrInvalidInput)
	}
	return content, nil
}

// IsClientError reports errors caused by the request rather than the server.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
