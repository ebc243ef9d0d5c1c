package markdown

import "strings"

// Section is a titled slice of a markdown document.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Parse splits content into sections at each SectionPrefix line.
//
// Blank lines are dropped, so paragraphs separated by several blank lines
// come back joined by single newlines. Text before the first section header
// is discarded.
func Parse(content string) []Section {
	var (
		sections []Section
		current  *Section
		lines    []string
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.TrimSpace(strings.Join(lines, "\n"))
		sections = append(sections, *current)
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, SectionPrefix) {
			flush()
			current = &Section{Title: strings.TrimSpace(strings.TrimPrefix(line, SectionPrefix))}
			lines = lines[:0]
			continue
		}
		if current == nil || strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	flush()

	return sections
}
