package markdown

import (
	"testing"

	"career-backend/resume/model"
)

func TestBuildPreview(t *testing.T) {
	doc := model.ResumeDocument{
		ContactInfo: model.ContactInfo{
			Email:    "ada@example.com",
			Mobile:   "+1 555 0100",
			LinkedIn: "https://linkedin.com/in/ada",
		},
		Summary: "Engineer.",
		Skills:  "Go, SQL\n• Kubernetes",
		Experience: []model.Entry{
			{Title: "Engineer", Organization: "Acme", Duration: "2020", Description: "- Shipped"},
		},
		Projects: []model.Entry{{Title: "Compiler"}},
	}

	p := BuildPreview(Parse(Assemble(doc, "Ada")), "Ada")
	if p.Name != "Ada" {
		t.Fatalf("unexpected name %q", p.Name)
	}
	wantContact := []ContactItem{
		{Kind: "email", Value: "ada@example.com"},
		{Kind: "phone", Value: "+1 555 0100"},
		{Kind: "linkedin", Value: "https://linkedin.com/in/ada"},
	}
	if len(p.Contact) != len(wantContact) {
		t.Fatalf("unexpected contact items %+v", p.Contact)
	}
	for i, item := range wantContact {
		if p.Contact[i] != item {
			t.Fatalf("contact[%d] = %+v, want %+v", i, p.Contact[i], item)
		}
	}
	if p.Summary != "Engineer." {
		t.Fatalf("unexpected summary %q", p.Summary)
	}
	if len(p.Skills) != 3 || p.Skills[2] != "Kubernetes" {
		t.Fatalf("unexpected skills %v", p.Skills)
	}
	if len(p.Experience) != 1 || p.Experience[0].Heading != "Engineer @ Acme" {
		t.Fatalf("unexpected experience %+v", p.Experience)
	}
	if got := p.Experience[0].Lines; len(got) != 2 || got[0] != "2020" || got[1] != "- Shipped" {
		t.Fatalf("unexpected experience lines %v", got)
	}
	if len(p.Projects) != 1 || p.Projects[0].Heading != "Compiler" {
		t.Fatalf("unexpected projects %+v", p.Projects)
	}
	if p.Education != nil {
		t.Fatalf("expected no education, got %+v", p.Education)
	}
}

func TestBuildPreviewDefaultsName(t *testing.T) {
	if p := BuildPreview(nil, " "); p.Name != DefaultDisplayName {
		t.Fatalf("expected default name, got %q", p.Name)
	}
}

func TestContactKind(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "📧 ada@example.com", want: "email"},
		{raw: "📱 +1 555 0100", want: "phone"},
		{raw: "💼 [LinkedIn](https://linkedin.com/in/ada)", want: "linkedin"},
		{raw: "🐦 [Twitter](https://twitter.com/ada)", want: "twitter"},
		{raw: "🐦 [Twitter](https://twitter.com/@ada)", want: "email"},
		{raw: "ada.linkedin@example.com", want: "email"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.raw, func(t *testing.T) {
			if got := contactKind(tt.raw); got != tt.want {
				t.Fatalf("contactKind(%q) = %q want %q", tt.raw, got, tt.want)
			}
		})
	}
}
