package insights

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("industry insight not found")
	ErrNotOnboarded  = errors.New("industry not selected")
	ErrInvalidOutput = errors.New("industry insight output invalid")
)

type Repo interface {
	GetByIndustry(ctx context.Context, industry string) (IndustryInsight, error)
	// CreateIfMissing stores insight unless a row for its industry exists.
	CreateIfMissing(ctx context.Context, insight IndustryInsight) error
	// Upsert replaces the row for the insight's industry.
	Upsert(ctx context.Context, insight IndustryInsight) (IndustryInsight, error)
}
