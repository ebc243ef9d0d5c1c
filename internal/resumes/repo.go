package resumes

import (
	"context"
	"errors"
)

var (
	ErrNotFound         = errors.New("resume not found")
	ErrInvalidInput     = errors.New("invalid resume input")
	ErrGenerationFailed = errors.New("failed to improve content")
)

type Repo interface {
	GetByUser(ctx context.Context, userID string) (Resume, error)
	// Upsert stores content as the user's single resume.
	Upsert(ctx context.Context, userID, content string) (Resume, error)
}
