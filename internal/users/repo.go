package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid profile")
)

type Repo interface {
	// UpsertIdentity creates the user for subject or refreshes its identity fields.
	UpsertIdentity(ctx context.Context, identity Identity) (User, error)
	GetBySubject(ctx context.Context, subject string) (User, error)
	UpdateProfile(ctx context.Context, userID string, profile ProfileUpdate) (User, error)
}
