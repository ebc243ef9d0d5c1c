// Package markdown converts structured resume data to markdown and splits
// markdown back into titled sections. Both directions share the header
// format declared here.
package markdown

// Header prefixes. A section header is SectionPrefix followed by its title;
// entries inside a section start with EntryPrefix.
const (
	SectionPrefix = "## "
	EntryPrefix   = "### "
)

// Section titles in assembly order.
const (
	TitleSummary    = "Professional Summary"
	TitleSkills     = "Skills"
	TitleExperience = "Work Experience"
	TitleEducation  = "Education"
	TitleProjects   = "Projects"
)

// DefaultDisplayName heads the contact block when the user has no name.
const DefaultDisplayName = "Your Name"

// Contact line glyphs and separator.
const (
	ContactSeparator = " | "
	GlyphEmail       = "📧"
	GlyphMobile      = "📱"
	GlyphLinkedIn    = "💼"
	GlyphTwitter     = "🐦"
)

// EntrySeparator joins organization to title inside an entry header.
const EntrySeparator = " @ "

func sectionHeader(title string) string {
	return SectionPrefix + title
}
