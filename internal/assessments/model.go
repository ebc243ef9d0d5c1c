package assessments

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	CategoryTechnical  = "Technical"
	QuizSize           = 10
	OptionsPerQuestion = 4
)

// Question is one generated multiple-choice question.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// valid accepts a question with text, exactly OptionsPerQuestion options and
// a correct answer that is one of them.
func (q Question) valid() bool {
	if strings.TrimSpace(q.Question) == "" || len(q.Options) != OptionsPerQuestion {
		return false
	}
	for _, o := range q.Options {
		if o == q.CorrectAnswer {
			return true
		}
	}
	return false
}

// QuestionResult records how the user answered one question.
type QuestionResult struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	UserAnswer  string `json:"userAnswer"`
	IsCorrect   bool   `json:"isCorrect"`
	Explanation string `json:"explanation"`
}

type Assessment struct {
	ID             string           `json:"id"`
	UserID         string           `json:"userId"`
	QuizScore      float64          `json:"quizScore"`
	Questions      []QuestionResult `json:"questions"`
	Category       string           `json:"category"`
	ImprovementTip *string          `json:"improvementTip"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// SaveRequest is a completed quiz. Answers[i] answers Questions[i].
type SaveRequest struct {
	Questions []Question `json:"questions"`
	Answers   []string   `json:"answers"`
}

func (r SaveRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Questions, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Answers, validation.Required, validation.Length(len(r.Questions), len(r.Questions))),
	)
}

// score grades answers and returns the results and percentage correct.
func score(questions []Question, answers []string) ([]QuestionResult, float64) {
	results := make([]QuestionResult, len(questions))
	correct := 0
	for i, q := range questions {
		answer := ""
		if i < len(answers) {
			answer = answers[i]
		}
		ok := answer == q.CorrectAnswer
		if ok {
			correct++
		}
		results[i] = QuestionResult{
			Question:    q.Question,
			Answer:      q.CorrectAnswer,
			UserAnswer:  answer,
			IsCorrect:   ok,
			Explanation: q.Explanation,
		}
	}
	if len(questions) == 0 {
		return results, 0
	}
	return results, float64(correct) / float64(len(questions)) * 100
}
