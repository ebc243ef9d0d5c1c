package assessments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"career-backend/internal/llm"
	"career-backend/internal/shared/telemetry"
	"career-backend/internal/users"
)

// Generator is the subset of the generation client used for quizzes.
type Generator interface {
	Render(name string, data any) (string, error)
	JSON(ctx context.Context, op, prompt string, out any) error
	TryText(ctx context.Context, op, prompt string) llm.Optional[string]
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

// GenerateQuiz asks for QuizSize multiple-choice questions on the caller's industry and skills.
func (s *Service) GenerateQuiz(ctx context.Context, subject string) ([]Question, error) {
	user, err := s.Users.Resolve(ctx, subject)
	if err != nil {
		return nil, err
	}
	if s.LLM == nil {
		return nil, ErrGenerationFailed
	}
	industry := user.Industry
	if industry == "" {
		industry = "general"
	}
	prompt, err := s.LLM.Render(llm.PromptQuiz, llm.QuizPrompt{
		Industry: industry,
		Skills:   user.Skills,
		Count:    QuizSize,
		Options:  OptionsPerQuestion,
	})
	if err != nil {
		return nil, err
	}

	var out struct {
		Questions []Question `json:"questions"`
	}
	if err := s.LLM.JSON(ctx, llm.PromptQuiz, prompt, &out); err != nil {
		telemetry.Error("assessments.quiz_failed", telemetry.FromContext(ctx, map[string]any{
			"user_id": user.ID,
			"error":   err.Error(),
		}))
		return nil, ErrGenerationFailed
	}

	questions := make([]Question, 0, len(out.Questions))
	for _, q := range out.Questions {
		if q.valid() {
			questions = append(questions, q)
		}
	}
	if len(questions) == 0 {
		telemetry.Error("assessments.quiz_empty", telemetry.FromContext(ctx, map[string]any{
			"user_id":  user.ID,
			"received": len(out.Questions),
		}))
		return nil, ErrGenerationFailed
	}
	if len(questions) > QuizSize {
		questions = questions[:QuizSize]
	}
	return questions, nil
}

// SaveResult grades a completed quiz and stores it. A short improvement tip
// is requested when any answer is wrong; its failure does not fail the save.
func (s *Service) SaveResult(ctx context.Context, subject string, req SaveRequest) (Assessment, error) {
	user, err := s.Users.Resolve(ctx, subject)
	if err != nil {
		return Assessment{}, err
	}
	if err := req.Validate(); err != nil {
		return Assessment{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	results, pct := score(req.Questions, req.Answers)
	assessment := Assessment{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		QuizScore: pct,
		Questions: results,
		Category:  CategoryTechnical,
		CreatedAt: s.now(),
	}
	assessment.ImprovementTip = s.improvementTip(ctx, user, results).Ptr()

	if err := s.Repo.Create(ctx, assessment); err != nil {
		return Assessment{}, err
	}
	return assessment, nil
}

// List returns the caller's assessments oldest first.
func (s *Service) List(ctx context.Context, subject string) ([]Assessment, error) {
	user, err := s.Users.Resolve(ctx, subject)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListByUser(ctx, user.ID)
}

func (s *Service) improvementTip(ctx context.Context, user users.User, results []QuestionResult) llm.Optional[string] {
	var wrong []llm.WrongAnswer
	for _, r := range results {
		if !r.IsCorrect {
			wrong = append(wrong, llm.WrongAnswer{Question: r.Question, CorrectAnswer: r.Answer, UserAnswer: r.UserAnswer})
		}
	}
	if len(wrong) == 0 || s.LLM == nil {
		return llm.None[string]()
	}
	prompt, err := s.LLM.Render(llm.PromptImprovementTip, llm.ImprovementTipPrompt{
		Industry: user.Industry,
		Wrong:    wrong,
	})
	if err != nil {
		telemetry.Warn("assessments.tip_prompt_failed", telemetry.FromContext(ctx, map[string]any{"error": err.Error()}))
		return llm.None[string]()
	}
	return s.LLM.TryText(ctx, llm.PromptImprovementTip, prompt)
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
