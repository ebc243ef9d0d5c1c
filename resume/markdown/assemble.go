package markdown

import (
	"strings"

	"career-backend/resume/model"
)

// Assemble renders doc as markdown. The contact block always comes first and
// is headed by displayName; summary, skills and the entry sections follow in
// fixed order, and sections without content are left out. Free text is
// included verbatim.
func Assemble(doc model.ResumeDocument, displayName string) string {
	blocks := []string{
		contactBlock(doc.ContactInfo, displayName),
		textBlock(TitleSummary, doc.Summary),
		textBlock(TitleSkills, doc.Skills),
		entriesBlock(TitleExperience, doc.Experience),
		entriesBlock(TitleEducation, doc.Education),
		entriesBlock(TitleProjects, doc.Projects),
	}

	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b != "" {
			out = append(out, b)
		}
	}
	return strings.Join(out, "\n\n")
}

func contactBlock(info model.ContactInfo, displayName string) string {
	name := strings.TrimSpace(displayName)
	if name == "" {
		name = DefaultDisplayName
	}
	header := sectionHeader(name)

	parts := ContactParts(info)
	if len(parts) == 0 {
		return header
	}
	return header + "\n\n" + strings.Join(parts, ContactSeparator)
}

// ContactParts returns the glyph-prefixed contact items for the present fields.
func ContactParts(info model.ContactInfo) []string {
	var parts []string
	if info.Email != "" {
		parts = append(parts, GlyphEmail+" "+info.Email)
	}
	if info.Mobile != "" {
		parts = append(parts, GlyphMobile+" "+info.Mobile)
	}
	if info.LinkedIn != "" {
		parts = append(parts, GlyphLinkedIn+" [LinkedIn]("+info.LinkedIn+")")
	}
	if info.Twitter != "" {
		parts = append(parts, GlyphTwitter+" [Twitter]("+info.Twitter+")")
	}
	return parts
}

func textBlock(title, body string) string {
	if body == "" {
		return ""
	}
	return sectionHeader(title) + "\n\n" + body
}

func entriesBlock(title string, entries []model.Entry) string {
	var rendered []string
	for _, e := range entries {
		if e.IsEmpty() {
			continue
		}
		rendered = append(rendered, entryBlock(e))
	}
	if len(rendered) == 0 {
		return ""
	}
	return sectionHeader(title) + "\n\n" + strings.Join(rendered, "\n\n")
}

func entryBlock(e model.Entry) string {
	var b strings.Builder
	b.WriteString(EntryPrefix)
	b.WriteString(EntryHeading(e))
	if e.Duration != "" {
		b.WriteString("\n")
		b.WriteString(e.Duration)
	}
	if e.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(e.Description)
	}
	return b.String()
}

// EntryHeading joins title and organization, falling back to whichever is set.
func EntryHeading(e model.Entry) string {
	title := strings.TrimSpace(e.Title)
	org := strings.TrimSpace(e.Organization)
	switch {
	case title != "" && org != "":
		return title + EntrySeparator + org
	case title != "":
		return title
	case org != "":
		return org
	default:
		return "Untitled"
	}
}
