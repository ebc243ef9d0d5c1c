package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemoryRepo struct {
	mu        sync.RWMutex
	users     map[string]User
	bySubject map[string]string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users:     make(map[string]User),
		bySubject: make(map[string]string),
	}
}

func (r *MemoryRepo) UpsertIdentity(ctx context.Context, identity Identity) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	id, ok := r.bySubject[identity.Subject]
	if !ok {
		user := User{
			ID:        uuid.NewString(),
			Subject:   identity.Subject,
			Email:     identity.Email,
			FullName:  identity.Name,
			ImageURL:  identity.Picture,
			Skills:    []string{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		r.users[user.ID] = user
		r.bySubject[user.Subject] = user.ID
		return user, nil
	}
	user := r.users[id]
	if identity.Email != "" {
		user.Email = identity.Email
	}
	if identity.Name != "" {
		user.FullName = identity.Name
	}
	if identity.Picture != "" {
		user.ImageURL = identity.Picture
	}
	user.UpdatedAt = now
	r.users[id] = user
	return user, nil
}

func (r *MemoryRepo) GetBySubject(ctx context.Context, subject string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.bySubject[subject]
	if !ok {
		return User{}, ErrNotFound
	}
	return r.users[id], nil
}

func (r *MemoryRepo) UpdateProfile(ctx context.Context, userID string, profile ProfileUpdate) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	user.Industry = profile.Industry
	user.ExperienceYears = profile.ExperienceYears
	user.Bio = profile.Bio
	user.Skills = append([]string(nil), profile.Skills...)
	user.UpdatedAt = time.Now().UTC()
	r.users[userID] = user
	return user, nil
}
