package resumes

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemoryRepo struct {
	mu     sync.RWMutex
	byUser map[string]Resume
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byUser: make(map[string]Resume)}
}

func (r *MemoryRepo) GetByUser(ctx context.Context, userID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.byUser[userID]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

func (r *MemoryRepo) Upsert(ctx context.Context, userID, content string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	resume, ok := r.byUser[userID]
	if !ok {
		resume = Resume{ID: uuid.NewString(), UserID: userID, CreatedAt: now}
	}
	resume.Content = content
	resume.UpdatedAt = now
	r.byUser[userID] = resume
	return resume, nil
}
