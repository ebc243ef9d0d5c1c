package markdown

import (
	"regexp"
	"strings"
)

// Preview is the classified view of parsed sections used by the resume page.
type Preview struct {
	Name       string         `json:"name"`
	Contact    []ContactItem  `json:"contact,omitempty"`
	Summary    string         `json:"summary,omitempty"`
	Skills     []string       `json:"skills,omitempty"`
	Experience []PreviewEntry `json:"experience,omitempty"`
	Education  []PreviewEntry `json:"education,omitempty"`
	Projects   []PreviewEntry `json:"projects,omitempty"`
}

// ContactItem is one cleaned contact value with its inferred kind.
type ContactItem struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// PreviewEntry is an EntryPrefix block with its following lines.
type PreviewEntry struct {
	Heading string   `json:"heading"`
	Lines   []string `json:"lines,omitempty"`
}

var (
	knownTitle   = regexp.MustCompile(`(?i)professional summary|skills|work experience|education|projects`)
	summaryTitle = regexp.MustCompile(`(?i)summary`)
	skillsTitle  = regexp.MustCompile(`(?i)skills`)
	expTitle     = regexp.MustCompile(`(?i)experience`)
	eduTitle     = regexp.MustCompile(`(?i)education`)
	projTitle    = regexp.MustCompile(`(?i)projects`)
	mdLink       = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	glyphs       = strings.NewReplacer(GlyphEmail, "", GlyphMobile, "", GlyphLinkedIn, "", GlyphTwitter, "")
)

// BuildPreview classifies sections by title. The first section whose title is
// not a known section title is the contact header; for the others the first
// match wins. displayName falls back to DefaultDisplayName.
func BuildPreview(sections []Section, displayName string) Preview {
	p := Preview{Name: strings.TrimSpace(displayName)}
	if p.Name == "" {
		p.Name = DefaultDisplayName
	}

	var headerSeen, summarySeen, skillsSeen, expSeen, eduSeen, projSeen bool
	for _, s := range sections {
		if !headerSeen && !knownTitle.MatchString(s.Title) {
			headerSeen = true
			p.Contact = contactItems(s.Content)
		}
		if !summarySeen && summaryTitle.MatchString(s.Title) {
			summarySeen = true
			p.Summary = s.Content
		}
		if !skillsSeen && skillsTitle.MatchString(s.Title) {
			skillsSeen = true
			p.Skills = splitSkills(s.Content)
		}
		if !expSeen && expTitle.MatchString(s.Title) {
			expSeen = true
			p.Experience = previewEntries(s.Content)
		}
		if !eduSeen && eduTitle.MatchString(s.Title) {
			eduSeen = true
			p.Education = previewEntries(s.Content)
		}
		if !projSeen && projTitle.MatchString(s.Title) {
			projSeen = true
			p.Projects = previewEntries(s.Content)
		}
	}
	return p
}

func contactItems(content string) []ContactItem {
	if content == "" {
		return nil
	}
	var items []ContactItem
	for _, raw := range strings.Split(content, "|") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		clean := strings.TrimSpace(mdLink.ReplaceAllString(glyphs.Replace(raw), "$2"))
		items = append(items, ContactItem{Kind: contactKind(raw), Value: clean})
	}
	return items
}

// contactKind checks for "@" before the network names, so any item holding
// an at sign is an email.
func contactKind(raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(raw, "@"):
		return "email"
	case strings.Contains(lower, "linkedin"):
		return "linkedin"
	case strings.Contains(lower, "twitter"):
		return "twitter"
	default:
		return "phone"
	}
}

func splitSkills(content string) []string {
	var skills []string
	for _, line := range strings.Split(content, "\n") {
		for _, skill := range strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == '•' || r == '-'
		}) {
			if s := strings.TrimSpace(skill); s != "" {
				skills = append(skills, s)
			}
		}
	}
	return skills
}

func previewEntries(content string) []PreviewEntry {
	var entries []PreviewEntry
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, EntryPrefix) {
			entries = append(entries, PreviewEntry{Heading: strings.TrimSpace(strings.TrimPrefix(line, EntryPrefix))})
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(entries) == 0 {
			entries = append(entries, PreviewEntry{})
		}
		last := &entries[len(entries)-1]
		last.Lines = append(last.Lines, line)
	}
	return entries
}
