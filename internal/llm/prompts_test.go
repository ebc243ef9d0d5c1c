package llm

import (
	"strings"
	"sync"
	"testing"
)

func TestDefaultPromptsCatalog(t *testing.T) {
	prompts, err := DefaultPrompts()
	if err != nil {
		t.Fatalf("DefaultPrompts: %v", err)
	}
	want := []string{PromptCoverLetter, PromptImproveResume, PromptImprovementTip, PromptIndustryInsights, PromptQuiz}
	got := prompts.Names()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected names %v", got)
	}
}

func TestRenderCoverLetterPrompt(t *testing.T) {
	prompts, err := DefaultPrompts()
	if err != nil {
		t.Fatalf("DefaultPrompts: %v", err)
	}
	out, err := prompts.Render(PromptCoverLetter, CoverLetterPrompt{
		JobTitle:        "Backend Engineer",
		CompanyName:     "Acme",
		JobDescription:  "Build APIs",
		Industry:        "tech-software",
		ExperienceYears: 5,
		Skills:          []string{"Go", "Postgres"},
		Bio:             "Builder",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{
		"Write a professional cover letter for a Backend Engineer position at Acme.",
		"- Skills: Go, Postgres",
		"- Years of Experience: 5",
		"Build APIs",
		"max 400 words",
		"Format the letter in markdown.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in prompt:\n%s", want, out)
		}
	}
}

func TestRenderQuizPromptSkillsOptional(t *testing.T) {
	prompts, err := DefaultPrompts()
	if err != nil {
		t.Fatalf("DefaultPrompts: %v", err)
	}
	tests := []struct {
		name   string
		skills []string
		want   string
	}{
		{name: "with skills", skills: []string{"Go", "SQL"}, want: "for a tech professional with expertise in Go, SQL."},
		{name: "without skills", skills: nil, want: "for a tech professional."},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			out, err := prompts.Render(PromptQuiz, QuizPrompt{Industry: "tech", Skills: tt.skills, Count: 10, Options: 4})
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Fatalf("expected %q in prompt:\n%s", tt.want, out)
			}
			if !strings.Contains(out, "Generate 10 technical interview questions") {
				t.Fatalf("missing count:\n%s", out)
			}
		})
	}
}

func TestRenderImprovementTipPrompt(t *testing.T) {
	prompts, err := DefaultPrompts()
	if err != nil {
		t.Fatalf("DefaultPrompts: %v", err)
	}
	out, err := prompts.Render(PromptImprovementTip, ImprovementTipPrompt{
		Industry: "tech",
		Wrong: []WrongAnswer{
			{Question: "Q1", CorrectAnswer: "A", UserAnswer: "B"},
			{Question: "Q2", CorrectAnswer: "C", UserAnswer: "D"},
		},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "Question: \"Q1\"\nCorrect Answer: \"A\"\nUser Answer: \"B\"\n\nQuestion: \"Q2\""
	if !strings.Contains(out, want) {
		t.Fatalf("expected joined questions, got:\n%s", out)
	}
}

func TestRenderUnknownPrompt(t *testing.T) {
	prompts, err := ParsePrompts([]byte("a: hello {{.Name}}\n"))
	if err != nil {
		t.Fatalf("ParsePrompts: %v", err)
	}
	if _, err := prompts.Render("missing", nil); err == nil {
		t.Fatalf("expected error for unknown prompt")
	}
	out, err := prompts.Render("a", map[string]string{"Name": "x"})
	if err != nil || out != "hello x" {
		t.Fatalf("unexpected render %q err=%v", out, err)
	}
}

func TestParsePromptsInvalidTemplate(t *testing.T) {
	if _, err := ParsePrompts([]byte("a: \"{{.Name\"\n")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestClientRenderWithoutCatalogLeavesClientUntouched(t *testing.T) {
	client := &Client{}
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := client.Render("missing", nil); err == nil {
				errs <- nil
			}
		}()
	}
	wg.Wait()
	close(errs)
	if len(errs) > 0 {
		t.Fatalf("expected every render of an unknown prompt to fail")
	}
	if client.Prompts != nil {
		t.Fatalf("expected Render to leave the client's catalog unset")
	}
	shared, err := sharedPrompts()
	if err != nil {
		t.Fatalf("sharedPrompts: %v", err)
	}
	if len(shared.Names()) == 0 {
		t.Fatalf("expected the shared catalog to hold the embedded prompts")
	}
}
