package markdown

import (
	"strings"
	"testing"

	"career-backend/resume/model"
)

func TestAssembleContactLineOnlyPresentFields(t *testing.T) {
	doc := model.ResumeDocument{
		ContactInfo: model.ContactInfo{
			Email:    "ada@example.com",
			LinkedIn: "https://linkedin.com/in/ada",
		},
	}

	got := Assemble(doc, "Ada Lovelace")
	want := "## Ada Lovelace\n\n📧 ada@example.com | 💼 [LinkedIn](https://linkedin.com/in/ada)"
	if got != want {
		t.Fatalf("unexpected markdown:\n%q\nwant\n%q", got, want)
	}
	if strings.Contains(got, GlyphMobile) || strings.Contains(got, GlyphTwitter) {
		t.Fatalf("absent fields must not leave glyphs: %q", got)
	}
}

func TestAssembleContactWithoutFields(t *testing.T) {
	if got := Assemble(model.ResumeDocument{}, ""); got != "## Your Name" {
		t.Fatalf("expected bare default header, got %q", got)
	}
}

func TestAssembleOmitsEmptySections(t *testing.T) {
	doc := model.ResumeDocument{
		Summary: "Builds reliable systems.",
		Experience: []model.Entry{
			{Title: "Engineer", Organization: "Acme", Duration: "2020 - 2023", Description: "- Shipped things"},
		},
	}

	got := Assemble(doc, "Ada")
	if strings.Contains(got, "## Skills") {
		t.Fatalf("empty skills must not emit a header: %q", got)
	}
	if strings.Contains(got, "## Education") || strings.Contains(got, "## Projects") {
		t.Fatalf("empty entry sections must be omitted: %q", got)
	}
	want := strings.Join([]string{
		"## Ada",
		"## Professional Summary\n\nBuilds reliable systems.",
		"## Work Experience\n\n### Engineer @ Acme\n2020 - 2023\n\n- Shipped things",
	}, "\n\n")
	if got != want {
		t.Fatalf("unexpected markdown:\n%s\nwant\n%s", got, want)
	}
}

func TestAssembleSectionOrder(t *testing.T) {
	doc := model.ResumeDocument{
		ContactInfo: model.ContactInfo{Mobile: "+1 555 0100", Twitter: "https://twitter.com/ada"},
		Summary:     "Summary text",
		Skills:      "Go, SQL",
		Experience:  []model.Entry{{Title: "Engineer", Organization: "Acme"}},
		Education:   []model.Entry{{Title: "BSc", Organization: "MIT", Duration: "2012 - 2016"}},
		Projects:    []model.Entry{{Title: "Compiler", Description: "Wrote one."}},
	}

	var titles []string
	for _, line := range strings.Split(Assemble(doc, "Ada"), "\n") {
		if strings.HasPrefix(line, SectionPrefix) {
			titles = append(titles, strings.TrimPrefix(line, SectionPrefix))
		}
	}
	want := []string{"Ada", TitleSummary, TitleSkills, TitleExperience, TitleEducation, TitleProjects}
	if strings.Join(titles, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected order %v, want %v", titles, want)
	}
}

func TestAssembleSkipsBlankEntries(t *testing.T) {
	doc := model.ResumeDocument{
		Projects: []model.Entry{{}, {Title: "  "}},
	}
	if got := Assemble(doc, "Ada"); strings.Contains(got, TitleProjects) {
		t.Fatalf("blank entries must not produce a section: %q", got)
	}
}

func TestEntryHeading(t *testing.T) {
	tests := []struct {
		name  string
		entry model.Entry
		want  string
	}{
		{name: "both", entry: model.Entry{Title: "Engineer", Organization: "Acme"}, want: "Engineer @ Acme"},
		{name: "title only", entry: model.Entry{Title: "Compiler"}, want: "Compiler"},
		{name: "organization only", entry: model.Entry{Organization: "MIT"}, want: "MIT"},
		{name: "neither", entry: model.Entry{Duration: "2020"}, want: "Untitled"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := EntryHeading(tt.entry); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAssembleThenParseKeepsEveryLine(t *testing.T) {
	doc := model.ResumeDocument{
		ContactInfo: model.ContactInfo{Email: "ada@example.com"},
		Summary:     "Line one.\nLine two.",
		Skills:      "Go\nSQL",
		Experience: []model.Entry{
			{Title: "Engineer", Organization: "Acme", Duration: "2020", Description: "- A\n- B"},
			{Title: "Intern", Organization: "Beta", Duration: "2019", Description: "- C"},
		},
	}

	sections := Parse(Assemble(doc, "Ada"))
	if len(sections) != 4 {
		t.Fatalf("expected 4 sections, got %d: %+v", len(sections), sections)
	}
	if sections[0].Title != "Ada" || sections[0].Content != "📧 ada@example.com" {
		t.Fatalf("unexpected contact section: %+v", sections[0])
	}
	if sections[1].Content != doc.Summary {
		t.Fatalf("summary changed: %q", sections[1].Content)
	}
	wantExp := "### Engineer @ Acme\n2020\n- A\n- B\n### Intern @ Beta\n2019\n- C"
	if sections[3].Content != wantExp {
		t.Fatalf("unexpected experience content:\n%q\nwant\n%q", sections[3].Content, wantExp)
	}
}
