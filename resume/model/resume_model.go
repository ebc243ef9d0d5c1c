package model

import (
	"encoding/json"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ResumeDocument is the structured resume form submitted by the builder.
type ResumeDocument struct {
	ContactInfo ContactInfo `json:"contactInfo"`
	Summary     string      `json:"summary"`
	Skills      string      `json:"skills"`
	Experience  []Entry     `json:"experience"`
	Education   []Entry     `json:"education"`
	Projects    []Entry     `json:"projects"`
}

// ContactInfo holds the optional contact fields shown under the name.
type ContactInfo struct {
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	LinkedIn string `json:"linkedin"`
	Twitter  string `json:"twitter"`
}

// Entry is one experience, education or project item.
type Entry struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Duration     string `json:"duration"`
	Description  string `json:"description"`
}

// UnmarshalJSON accepts the builder's per-section field names
// (position/company, degree/institution) alongside title/organization.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title        string `json:"title"`
		Position     string `json:"position"`
		Degree       string `json:"degree"`
		Organization string `json:"organization"`
		Company      string `json:"company"`
		Institution  string `json:"institution"`
		Duration     string `json:"duration"`
		Description  string `json:"description"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Entry{
		Title:        firstNonEmpty(raw.Title, raw.Position, raw.Degree),
		Organization: firstNonEmpty(raw.Organization, raw.Company, raw.Institution),
		Duration:     raw.Duration,
		Description:  raw.Description,
	}
	return nil
}

// Validate enforces field formats and size limits.
func (d ResumeDocument) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.ContactInfo),
		validation.Field(&d.Summary, validation.Length(0, 5000)),
		validation.Field(&d.Skills, validation.Length(0, 5000)),
		validation.Field(&d.Experience, validation.Length(0, 50)),
		validation.Field(&d.Education, validation.Length(0, 50)),
		validation.Field(&d.Projects, validation.Length(0, 50)),
	)
}

// Validate checks contact field formats; empty fields are allowed.
func (c ContactInfo) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, is.EmailFormat),
		validation.Field(&c.Mobile, validation.Length(0, 40)),
		validation.Field(&c.LinkedIn, is.URL),
		validation.Field(&c.Twitter, is.URL),
	)
}

// Validate bounds entry field sizes.
func (e Entry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Title, validation.Length(0, 200)),
		validation.Field(&e.Organization, validation.Length(0, 200)),
		validation.Field(&e.Duration, validation.Length(0, 100)),
		validation.Field(&e.Description, validation.Length(0, 5000)),
	)
}

// IsEmpty reports whether the entry carries no content at all.
func (e Entry) IsEmpty() bool {
	return strings.TrimSpace(e.Title) == "" &&
		strings.TrimSpace(e.Organization) == "" &&
		strings.TrimSpace(e.Duration) == "" &&
		strings.TrimSpace(e.Description) == ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
