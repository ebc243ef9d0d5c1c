package assessments

import (
	"context"
	"errors"
)

var (
	ErrInvalidInput     = errors.New("invalid assessment")
	ErrGenerationFailed = errors.New("failed to generate quiz questions")
)

type Repo interface {
	Create(ctx context.Context, assessment Assessment) error
	// ListByUser returns the user's assessments oldest first.
	ListByUser(ctx context.Context, userID string) ([]Assessment, error)
}
