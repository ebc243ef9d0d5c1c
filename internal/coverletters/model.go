package coverletters

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Letter statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

type CoverLetter struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Content        string    `json:"content"`
	JobDescription string    `json:"jobDescription"`
	CompanyName    string    `json:"companyName"`
	JobTitle       string    `json:"jobTitle"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type GenerateRequest struct {
	JobTitle       string `json:"jobTitle"`
	CompanyName    string `json:"companyName"`
	JobDescription string `json:"jobDescription"`
}

func (r GenerateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.JobTitle, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.CompanyName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.JobDescription, validation.Length(0, 20000)),
	)
}

func (r GenerateRequest) normalized() GenerateRequest {
	r.JobTitle = strings.TrimSpace(r.JobTitle)
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.JobDescription = strings.TrimSpace(r.JobDescription)
	return r
}

const quotaMessage = "AI generation failed: quota exceeded. Please check your Google Cloud billing and quota settings and try again later."

// degradedContent is stored in place of a letter when the provider quota is exhausted.
func degradedContent(details string) string {
	return quotaMessage + "\n\nProvider details:\n" + details
}
