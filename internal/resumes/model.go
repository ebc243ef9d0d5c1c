package resumes

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"career-backend/resume/markdown"
	"career-backend/resume/model"
)

type Resume struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	ATSScore  *float64  `json:"atsScore,omitempty"`
	Feedback  string    `json:"feedback,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Input is either raw markdown or the structured builder form.
// The form wins when both are sent.
type Input struct {
	Content string                `json:"content"`
	Form    *model.ResumeDocument `json:"form"`
}

// PreviewResult is the assembled markdown plus its parsed views.
type PreviewResult struct {
	Markdown string             `json:"markdown"`
	Sections []markdown.Section `json:"sections"`
	Preview  markdown.Preview   `json:"preview"`
}

// Improvable entry kinds.
const (
	KindExperience = "experience"
	KindEducation  = "education"
	KindProject    = "project"
)

type ImproveRequest struct {
	Current string `json:"current"`
	Type    string `json:"type"`
}

func (r ImproveRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Current, validation.Required, validation.Length(1, 5000)),
		validation.Field(&r.Type, validation.Required, validation.In(KindExperience, KindEducation, KindProject)),
	)
}

func (r ImproveRequest) normalized() ImproveRequest {
	r.Current = strings.TrimSpace(r.Current)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	return r
}
