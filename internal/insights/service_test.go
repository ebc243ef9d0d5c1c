package insights

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"career-backend/internal/llm/llmtest"
	"career-backend/internal/users"
)

const insightJSON = "```json\n" + `{
  "salaryRanges": [{"role": "Backend Engineer", "min": 80000, "max": 160000, "median": 120000, "location": "US"}],
  "growthRate": 12.5,
  "demandLevel": "high",
  "topSkills": ["Go", "Kubernetes"],
  "marketOutlook": "Positive",
  "keyTrends": ["AI"],
  "recommendedSkills": ["Rust"]
}` + "\n```"

type resolverStub map[string]users.User

func (r resolverStub) Resolve(_ context.Context, subject string) (users.User, error) {
	if strings.TrimSpace(subject) == "" {
		return users.User{}, users.ErrUnauthorized
	}
	u, ok := r[subject]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func newService(provider *llmtest.Provider, repo Repo) *Service {
	svc := NewService(repo, llmtest.NewClient(provider), resolverStub{
		"sub-1":   {ID: "u1", Industry: "tech-software"},
		"sub-new": {ID: "u2"},
	})
	svc.Now = fixedNow
	return svc
}

func TestGetForUserGeneratesAndStores(t *testing.T) {
	repo := NewMemoryRepo()
	provider := llmtest.NewProvider(llmtest.Reply{Text: insightJSON})
	svc := newService(provider, repo)

	insight, err := svc.GetForUser(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("GetForUser: %v", err)
	}
	if insight.Source != SourceGenerated || insight.DemandLevel != "High" {
		t.Fatalf("unexpected insight %+v", insight)
	}
	if !insight.NextUpdate.Equal(fixedNow().Add(7 * 24 * time.Hour)) {
		t.Fatalf("unexpected next update %v", insight.NextUpdate)
	}
	if !strings.Contains(provider.Prompts()[0], "tech-software industry") {
		t.Fatalf("prompt missing industry: %s", provider.Prompts()[0])
	}

	if _, err := svc.GetForUser(context.Background(), "sub-1"); err != nil {
		t.Fatalf("GetForUser: %v", err)
	}
	if provider.Calls() != 1 {
		t.Fatalf("fresh insight must be reused, got %d calls", provider.Calls())
	}
}

func TestGetForUserReplacesBaseline(t *testing.T) {
	repo := NewMemoryRepo()
	provider := llmtest.NewProvider(llmtest.Reply{Text: insightJSON})
	svc := newService(provider, repo)
	if err := svc.EnsureForIndustry(context.Background(), "tech-software"); err != nil {
		t.Fatalf("EnsureForIndustry: %v", err)
	}
	seeded, _ := repo.GetByIndustry(context.Background(), "tech-software")

	insight, err := svc.GetForUser(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("GetForUser: %v", err)
	}
	if insight.Source != SourceGenerated || insight.ID != seeded.ID {
		t.Fatalf("expected baseline row replaced in place, got %+v", insight)
	}
}

func TestGetForUserFallbackWhenNothingStored(t *testing.T) {
	provider := llmtest.NewProvider(llmtest.Reply{Err: llmtest.Quota("")})
	svc := newService(provider, NewMemoryRepo())

	insight, err := svc.GetForUser(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("GetForUser: %v", err)
	}
	if insight.ID != "fallback" || insight.DemandLevel != "Medium" || insight.MarketOutlook != "Neutral" {
		t.Fatalf("unexpected fallback %+v", insight)
	}
	if !insight.NextUpdate.Equal(fixedNow().Add(24 * time.Hour)) {
		t.Fatalf("unexpected next update %v", insight.NextUpdate)
	}
	if _, err := svc.Repo.GetByIndustry(context.Background(), "tech-software"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("fallback must not be stored, got %v", err)
	}
}

func TestGetForUserKeepsStaleRowOnFailure(t *testing.T) {
	repo := NewMemoryRepo()
	stale := baseline("tech-software", fixedNow().Add(-30*24*time.Hour))
	stale.Source = SourceGenerated
	if _, err := repo.Upsert(context.Background(), stale); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	provider := llmtest.NewProvider(llmtest.Reply{Text: "not json"})
	svc := newService(provider, repo)

	insight, err := svc.GetForUser(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("GetForUser: %v", err)
	}
	if insight.ID == "fallback" || insight.Source != SourceGenerated {
		t.Fatalf("expected stored row, got %+v", insight)
	}
}

func TestGetForUserErrors(t *testing.T) {
	svc := newService(llmtest.NewProvider(), NewMemoryRepo())
	tests := []struct {
		name    string
		subject string
		want    error
	}{
		{name: "blank", subject: "", want: users.ErrUnauthorized},
		{name: "unknown", subject: "nobody", want: users.ErrNotFound},
		{name: "not onboarded", subject: "sub-new", want: ErrNotOnboarded},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.GetForUser(context.Background(), tt.subject); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestEnsureForIndustryKeepsExisting(t *testing.T) {
	repo := NewMemoryRepo()
	svc := newService(llmtest.NewProvider(), repo)
	generated := baseline("finance", fixedNow())
	generated.Source = SourceGenerated
	if _, err := repo.Upsert(context.Background(), generated); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := svc.EnsureForIndustry(context.Background(), "finance"); err != nil {
		t.Fatalf("EnsureForIndustry: %v", err)
	}
	got, _ := repo.GetByIndustry(context.Background(), "finance")
	if got.Source != SourceGenerated {
		t.Fatalf("existing insight overwritten: %+v", got)
	}
}
