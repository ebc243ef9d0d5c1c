package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"career-backend/resume/markdown"
	"career-backend/resume/model"
)

// Document is a rendered resume ready to be sent to the client.
type Document struct {
	FileName string
	Pages    int
	Bytes    []byte
}

// PDFRenderer lays a ResumeDocument out on A4 pages.
type PDFRenderer struct {
	Now func() time.Time
}

// NewPDFRenderer returns a renderer using the wall clock for file names.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{Now: time.Now}
}

// Render produces the PDF bytes for doc headed by displayName.
func (r *PDFRenderer) Render(doc model.ResumeDocument, displayName string) (Document, error) {
	// The first pass only counts pages so footers can show the total.
	counted, err := layoutResume(doc, displayName, 0)
	if err != nil {
		return Document{}, err
	}
	total := counted.pdf.PageCount()

	l, err := layoutResume(doc, displayName, total)
	if err != nil {
		return Document{}, err
	}
	var buf bytes.Buffer
	if err := l.pdf.Output(&buf); err != nil {
		return Document{}, errors.Wrap(err, "write pdf")
	}

	now := time.Now
	if r != nil && r.Now != nil {
		now = r.Now
	}
	return Document{
		FileName: FileName(displayName, now()),
		Pages:    total,
		Bytes:    buf.Bytes(),
	}, nil
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// FileName builds "<Name_With_Underscores>_<year>.pdf", or "resume_<year>.pdf"
// when the name is blank.
func FileName(displayName string, now time.Time) string {
	base := whitespaceRun.ReplaceAllString(strings.TrimSpace(displayName), "_")
	if base == "" {
		base = "resume"
	}
	return base + "_" + strconv.Itoa(now.Year()) + ".pdf"
}

type layout struct {
	pdf     *fpdf.Fpdf
	tr      func(string) string
	y       float64
	width   float64
	height  float64
	content float64
	// maxY is the lowest baseline or rule drawn by the content flow.
	maxY float64
}

func layoutResume(doc model.ResumeDocument, displayName string, totalPages int) (*layout, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(Margin, Margin, Margin)
	pdf.SetAutoPageBreak(false, Margin)
	pdf.SetCreator("career-backend", true)

	name := strings.TrimSpace(displayName)
	if name == "" {
		name = markdown.DefaultDisplayName
	}
	pdf.SetTitle(name, true)

	l := &layout{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), y: Margin}
	l.width, l.height = pdf.GetPageSize()
	l.content = l.width - 2*Margin

	pdf.SetFooterFunc(func() {
		if totalPages > 0 {
			l.footer(pdf.PageNo(), totalPages)
		}
	})
	pdf.AddPage()

	l.header(name, doc.ContactInfo)

	if doc.Summary != "" {
		l.sectionHeader(markdown.TitleSummary)
		l.body(doc.Summary, 8)
	}
	if doc.Skills != "" {
		if skills := joinSkills(doc.Skills); skills != "" {
			l.sectionHeader(markdown.TitleSkills)
			l.body(skills, 8)
		}
	}
	l.entries(markdown.TitleExperience, doc.Experience)
	l.entries(markdown.TitleEducation, doc.Education)
	l.entries(markdown.TitleProjects, doc.Projects)

	if err := pdf.Error(); err != nil {
		return nil, errors.Wrap(err, "layout pdf")
	}
	return l, nil
}

func (l *layout) apply(key string) {
	s := StyleMap[key]
	l.pdf.SetFont(FontFamily, s.fontStyle(), s.Size)
	l.pdf.SetTextColor(s.Color.R, s.Color.G, s.Color.B)
}

// ensure starts a new page when a block of height h would cross the bottom
// margin. Blocks taller than a page only ask for a fresh page; writeLines
// breaks them further.
func (l *layout) ensure(h float64) {
	if usable := l.height - 2*Margin; h > usable {
		h = usable
	}
	if l.y+h > l.height-Margin {
		l.pdf.AddPage()
		l.y = Margin
	}
}

func (l *layout) split(text string, width float64) []string {
	raw := l.pdf.SplitLines([]byte(l.tr(text)), width)
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		lines = append(lines, string(line))
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

// writeLines draws one baseline per line starting at the cursor and leaves
// the cursor below the last line, breaking pages between lines as needed.
func (l *layout) writeLines(lines []string, x, lineHeight float64) {
	for _, line := range lines {
		l.ensure(lineHeight)
		l.pdf.Text(x, l.y, line)
		l.mark(l.y)
		l.y += lineHeight
	}
}

func (l *layout) mark(y float64) {
	if y > l.maxY {
		l.maxY = y
	}
}

func (l *layout) rule(color RGB, width float64) {
	l.pdf.SetDrawColor(color.R, color.G, color.B)
	l.pdf.SetLineWidth(width)
	l.pdf.Line(Margin, l.y, l.width-Margin, l.y)
	l.mark(l.y)
}

func (l *layout) header(name string, info model.ContactInfo) {
	l.apply(StyleName)
	l.ensure(0)
	l.pdf.Text(Margin, l.y, l.tr(name))
	l.mark(l.y)
	l.y += 12

	if contact := contactLine(info); contact != "" {
		l.apply(StyleContact)
		lh := LineHeight(StyleMap[StyleContact].Size)
		lines := l.split(contact, l.content)
		l.ensure(float64(len(lines)) * lh)
		l.writeLines(lines, Margin, lh)
		l.y += 15 - lh
	}

	l.ensure(0)
	l.rule(RuleColor, 0.3)
	l.y += 12
}

func (l *layout) sectionHeader(title string) {
	l.apply(StyleSectionHeading)
	lines := l.split(strings.ToUpper(title), l.content)
	block := float64(len(lines)) * HeadingLineStep
	l.ensure(block + 2)
	l.writeLines(lines, Margin, HeadingLineStep)
	l.y += 2
	l.rule(PrimaryColor, 0.5)
	l.y += 8
}

func (l *layout) body(text string, spacing float64) {
	l.apply(StyleBody)
	lh := LineHeight(StyleMap[StyleBody].Size)
	lines := l.split(text, l.content)
	l.ensure(float64(len(lines)) * lh)
	l.writeLines(lines, Margin, lh)
	l.y += spacing
}

func (l *layout) bullets(items []string) {
	l.apply(StyleBody)
	lh := LineHeight(StyleMap[StyleBody].Size)
	for _, item := range items {
		lines := l.split("• "+item, l.content-BulletIndent)
		l.ensure(float64(len(lines)) * lh)
		l.writeLines(lines, Margin+BulletIndent, lh)
		l.y += 2
	}
	l.y += 3
}

func (l *layout) entries(title string, entries []model.Entry) {
	var present []model.Entry
	for _, e := range entries {
		if !e.IsEmpty() {
			present = append(present, e)
		}
	}
	if len(present) == 0 {
		return
	}

	l.sectionHeader(title)
	for _, e := range present {
		if heading := entryTitle(e); heading != "" {
			l.apply(StyleEntryTitle)
			l.ensure(5)
			l.pdf.Text(Margin, l.y, l.tr(heading))
			l.mark(l.y)
			l.y += 5
		}
		if d := strings.TrimSpace(e.Duration); d != "" {
			l.apply(StyleDuration)
			l.ensure(5)
			l.pdf.Text(Margin, l.y, l.tr(d))
			l.mark(l.y)
			l.y += 5
		}
		if items := descriptionItems(e.Description); len(items) > 0 {
			l.bullets(items)
		}
		l.y += 8
	}
}

func (l *layout) footer(page, total int) {
	l.apply(StyleFooter)
	text := fmt.Sprintf("Page %d of %d", page, total)
	w := l.pdf.GetStringWidth(text)
	l.pdf.Text(l.width-Margin-w, l.height-FooterOffset, text)
}

func contactLine(info model.ContactInfo) string {
	var parts []string
	if info.Email != "" {
		parts = append(parts, "Email: "+info.Email)
	}
	if info.Mobile != "" {
		parts = append(parts, "Phone: "+info.Mobile)
	}
	if info.LinkedIn != "" {
		parts = append(parts, "LinkedIn: "+info.LinkedIn)
	}
	if info.Twitter != "" {
		parts = append(parts, "Twitter: "+info.Twitter)
	}
	return strings.Join(parts, markdown.ContactSeparator)
}

func joinSkills(raw string) string {
	var skills []string
	for _, s := range strings.Split(raw, "\n") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return strings.Join(skills, " • ")
}

func entryTitle(e model.Entry) string {
	title := strings.TrimSpace(e.Title)
	org := strings.TrimSpace(e.Organization)
	switch {
	case title != "" && org != "":
		return title + " | " + org
	case title != "":
		return title
	default:
		return org
	}
}

var bulletMarker = regexp.MustCompile(`^[•\-]\s*`)

func descriptionItems(description string) []string {
	var items []string
	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items = append(items, bulletMarker.ReplaceAllString(line, ""))
	}
	return items
}
