package llm

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"
	"text/template"

	"gopkg.in/yaml.v3"
)

const (
	PromptCoverLetter      = "cover_letter"
	PromptQuiz             = "quiz"
	PromptImprovementTip   = "improvement_tip"
	PromptIndustryInsights = "industry_insights"
	PromptImproveResume    = "improve_resume"
)

//go:embed prompts/prompts.yaml
var defaultPromptsYAML []byte

// CoverLetterPrompt fills the cover_letter template.
type CoverLetterPrompt struct {
	JobTitle        string
	CompanyName     string
	JobDescription  string
	Industry        string
	ExperienceYears int
	Skills          []string
	Bio             string
}

// QuizPrompt fills the quiz template.
type QuizPrompt struct {
	Industry string
	Skills   []string
	Count    int
	Options  int
}

// WrongAnswer is one missed quiz question.
type WrongAnswer struct {
	Question      string
	CorrectAnswer string
	UserAnswer    string
}

// ImprovementTipPrompt fills the improvement_tip template.
type ImprovementTipPrompt struct {
	Industry string
	Wrong    []WrongAnswer
}

// IndustryInsightsPrompt fills the industry_insights template.
type IndustryInsightsPrompt struct {
	Industry string
}

// ImproveResumePrompt fills the improve_resume template.
type ImproveResumePrompt struct {
	Type     string
	Industry string
	Current  string
}

// Prompts is a parsed catalog of named templates.
type Prompts struct {
	templates map[string]*template.Template
}

var promptFuncs = template.FuncMap{
	"join": strings.Join,
}

// DefaultPrompts parses the embedded catalog.
func DefaultPrompts() (*Prompts, error) {
	return ParsePrompts(defaultPromptsYAML)
}

// sharedPrompts is the embedded catalog parsed once for clients built
// without one. Prompts is read-only after parsing.
var sharedPrompts = sync.OnceValues(DefaultPrompts)

// ParsePrompts parses a YAML mapping of name to template text.
func ParsePrompts(data []byte) (*Prompts, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse prompt catalog: %w", err)
	}
	p := &Prompts{templates: make(map[string]*template.Template, len(raw))}
	for name, text := range raw {
		tmpl, err := template.New(name).Funcs(promptFuncs).Option("missingkey=error").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parse prompt %s: %w", name, err)
		}
		p.templates[name] = tmpl
	}
	return p, nil
}

// Names lists the catalog's template names in sorted order.
func (p *Prompts) Names() []string {
	names := make([]string, 0, len(p.templates))
	for name := range p.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render executes the named template against data.
func (p *Prompts) Render(name string, data any) (string, error) {
	tmpl, ok := p.templates[name]
	if !ok {
		return "", fmt.Errorf("prompt %q not found", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
