package render

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"career-backend/resume/model"
)

func sampleResume(experienceCount int) model.ResumeDocument {
	doc := model.ResumeDocument{
		ContactInfo: model.ContactInfo{
			Email:    "ada@example.com",
			LinkedIn: "https://linkedin.com/in/ada",
		},
		Summary: "Engineer focused on reliable distributed systems.",
		Skills:  "Go\nPostgreSQL\n\nKubernetes",
		Education: []model.Entry{
			{Title: "BSc Mathematics", Organization: "University of London", Duration: "1834 - 1838"},
		},
	}
	for i := 0; i < experienceCount; i++ {
		doc.Experience = append(doc.Experience, model.Entry{
			Title:        fmt.Sprintf("Engineer %d", i+1),
			Organization: "Analytical Engines Ltd",
			Duration:     "2020 - 2023",
			Description:  "- Designed the difference engine control loop\n• Wrote the first published algorithm for the engine\n\nReviewed notes with the team",
		})
	}
	return doc
}

func fixedClock() time.Time {
	return time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)
}

func TestRenderSinglePage(t *testing.T) {
	r := &PDFRenderer{Now: fixedClock}
	out, err := r.Render(sampleResume(1), "Ada Lovelace")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out.Pages != 1 {
		t.Fatalf("expected 1 page, got %d", out.Pages)
	}
	if out.FileName != "Ada_Lovelace_2026.pdf" {
		t.Fatalf("unexpected file name %q", out.FileName)
	}
	if !strings.HasPrefix(string(out.Bytes), "%PDF-") {
		t.Fatalf("output is not a pdf")
	}

	pages, err := ExtractPages(out.Bytes)
	if err != nil {
		t.Fatalf("ExtractPages: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 extracted page, got %d", len(pages))
	}
	for _, want := range []string{"Ada Lovelace", "PROFESSIONAL SUMMARY", "WORK EXPERIENCE", "Engineer 1 | Analytical Engines Ltd", "Page 1 of 1"} {
		if !strings.Contains(pages[0], want) {
			t.Fatalf("expected %q in page text:\n%s", want, pages[0])
		}
	}
}

func TestRenderEveryPageHasFooter(t *testing.T) {
	r := &PDFRenderer{Now: fixedClock}
	out, err := r.Render(sampleResume(20), "Ada Lovelace")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out.Pages < 2 {
		t.Fatalf("expected multiple pages, got %d", out.Pages)
	}

	pages, err := ExtractPages(out.Bytes)
	if err != nil {
		t.Fatalf("ExtractPages: %v", err)
	}
	if len(pages) != out.Pages {
		t.Fatalf("page count mismatch: reported %d, extracted %d", out.Pages, len(pages))
	}
	for i, text := range pages {
		want := fmt.Sprintf("Page %d of %d", i+1, out.Pages)
		if !strings.Contains(text, want) {
			t.Fatalf("page %d missing footer %q", i+1, want)
		}
	}
}

func TestLayoutStaysAboveBottomMargin(t *testing.T) {
	l, err := layoutResume(sampleResume(30), "Ada Lovelace", 0)
	if err != nil {
		t.Fatalf("layoutResume: %v", err)
	}
	if l.pdf.PageCount() < 2 {
		t.Fatalf("expected overflow onto more pages")
	}
	if limit := l.height - Margin; l.maxY > limit {
		t.Fatalf("content baseline %.2f crosses bottom margin %.2f", l.maxY, limit)
	}
}

func TestLayoutBreaksBlocksTallerThanAPage(t *testing.T) {
	lines := make([]string, 90)
	for i := range lines {
		lines[i] = fmt.Sprintf("Delivered project line item %03d", i+1)
	}
	long := strings.Join(lines, "\n")

	tests := []struct {
		name string
		doc  model.ResumeDocument
	}{
		{name: "summary", doc: model.ResumeDocument{Summary: long}},
		{name: "bullets", doc: model.ResumeDocument{Experience: []model.Entry{{Title: "Engineer", Organization: "Analytical Engines Ltd", Description: long}}}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			l, err := layoutResume(tt.doc, "Ada", 0)
			if err != nil {
				t.Fatalf("layoutResume: %v", err)
			}
			if limit := l.height - Margin; l.maxY > limit {
				t.Fatalf("content baseline %.2f crosses bottom margin %.2f", l.maxY, limit)
			}

			out, err := (&PDFRenderer{Now: fixedClock}).Render(tt.doc, "Ada")
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if out.Pages < 2 {
				t.Fatalf("expected the block to spill onto a second page, got %d", out.Pages)
			}
			pages, err := ExtractPages(out.Bytes)
			if err != nil {
				t.Fatalf("ExtractPages: %v", err)
			}
			text := strings.Join(pages, "\n")
			for _, line := range lines {
				if !strings.Contains(text, line) {
					t.Fatalf("missing %q from rendered pages", line)
				}
			}
		})
	}
}

func TestRenderEmptyDocument(t *testing.T) {
	out, err := (&PDFRenderer{Now: fixedClock}).Render(model.ResumeDocument{}, "")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out.Pages != 1 {
		t.Fatalf("expected 1 page, got %d", out.Pages)
	}
	if out.FileName != "resume_2026.pdf" {
		t.Fatalf("unexpected file name %q", out.FileName)
	}
}

func TestFileName(t *testing.T) {
	now := fixedClock()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "spaces", in: "Ada Lovelace", want: "Ada_Lovelace_2026.pdf"},
		{name: "whitespace runs", in: " Ada \t King  Byron ", want: "Ada_King_Byron_2026.pdf"},
		{name: "blank", in: "   ", want: "resume_2026.pdf"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := FileName(tt.in, now); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDescriptionItemsStripMarkers(t *testing.T) {
	got := descriptionItems("- one\n  • two\n\nthree\n-four")
	want := []string{"one", "two", "three", "four"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestJoinSkills(t *testing.T) {
	if got := joinSkills("Go\n\n  SQL  \n"); got != "Go • SQL" {
		t.Fatalf("unexpected skills line %q", got)
	}
}
