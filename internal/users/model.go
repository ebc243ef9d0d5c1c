package users

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type User struct {
	ID              string    `json:"id"`
	Subject         string    `json:"-"`
	Email           string    `json:"email"`
	FullName        string    `json:"fullName"`
	ImageURL        string    `json:"imageUrl"`
	Industry        string    `json:"industry,omitempty"`
	ExperienceYears int       `json:"experience,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	Skills          []string  `json:"skills"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Onboarded reports whether the user has picked an industry.
func (u User) Onboarded() bool {
	return strings.TrimSpace(u.Industry) != ""
}

// Identity is the verified caller as reported by the identity provider.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// ProfileUpdate carries the onboarding form.
type ProfileUpdate struct {
	Industry        string   `json:"industry"`
	ExperienceYears int      `json:"experience"`
	Bio             string   `json:"bio"`
	Skills          []string `json:"skills"`
}

func (p ProfileUpdate) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Industry, validation.Required, validation.Length(1, 120)),
		validation.Field(&p.ExperienceYears, validation.Min(0), validation.Max(50)),
		validation.Field(&p.Bio, validation.Length(0, 2000)),
		validation.Field(&p.Skills, validation.Length(0, 50)),
	)
}

// Normalized trims fields and drops blank skills.
func (p ProfileUpdate) Normalized() ProfileUpdate {
	p.Industry = strings.TrimSpace(p.Industry)
	p.Bio = strings.TrimSpace(p.Bio)
	skills := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	p.Skills = skills
	return p
}
