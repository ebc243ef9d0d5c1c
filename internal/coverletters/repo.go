package coverletters

import (
	"context"
	"errors"
)

var (
	ErrNotFound         = errors.New("cover letter not found")
	ErrInvalidInput     = errors.New("invalid cover letter request")
	ErrGenerationFailed = errors.New("failed to generate cover letter")
)

type Repo interface {
	Create(ctx context.Context, letter CoverLetter) error
	// ListByUser returns the user's letters newest first.
	ListByUser(ctx context.Context, userID string) ([]CoverLetter, error)
	GetByID(ctx context.Context, userID, id string) (CoverLetter, error)
	Delete(ctx context.Context, userID, id string) error
}
