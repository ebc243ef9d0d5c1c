package insights

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]IndustryInsight
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[string]IndustryInsight)}
}

func (r *MemoryRepo) GetByIndustry(ctx context.Context, industry string) (IndustryInsight, error) {
	if err := ctx.Err(); err != nil {
		return IndustryInsight{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	insight, ok := r.items[industry]
	if !ok {
		return IndustryInsight{}, ErrNotFound
	}
	return insight, nil
}

func (r *MemoryRepo) CreateIfMissing(ctx context.Context, insight IndustryInsight) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[insight.Industry]; ok {
		return nil
	}
	if insight.ID == "" {
		insight.ID = uuid.NewString()
	}
	r.items[insight.Industry] = insight
	return nil
}

func (r *MemoryRepo) Upsert(ctx context.Context, insight IndustryInsight) (IndustryInsight, error) {
	if err := ctx.Err(); err != nil {
		return IndustryInsight{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.items[insight.Industry]; ok {
		insight.ID = existing.ID
	} else if insight.ID == "" {
		insight.ID = uuid.NewString()
	}
	r.items[insight.Industry] = insight
	return insight, nil
}
