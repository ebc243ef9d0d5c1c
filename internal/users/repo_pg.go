package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"career-backend/internal/shared/storage/db"
)

type PGRepo struct {
	DB *sql.DB
}

const userColumns = `id, subject, email, full_name, image_url, industry, experience_years, bio, skills, created_at, updated_at`

func (r *PGRepo) UpsertIdentity(ctx context.Context, identity Identity) (User, error) {
	const query = `
INSERT INTO users (id, subject, email, full_name, image_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now(), now())
ON CONFLICT (subject) DO UPDATE SET
  email = COALESCE(EXCLUDED.email, users.email),
  full_name = COALESCE(EXCLUDED.full_name, users.full_name),
  image_url = COALESCE(EXCLUDED.image_url, users.image_url),
  updated_at = now()
RETURNING ` + userColumns
	row := db.Executor(ctx, r.DB).QueryRowContext(ctx, query,
		uuid.NewString(),
		identity.Subject,
		nullableString(identity.Email),
		nullableString(identity.Name),
		nullableString(identity.Picture),
	)
	return scanUser(row)
}

func (r *PGRepo) GetBySubject(ctx context.Context, subject string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE subject = $1 LIMIT 1`
	return scanUser(db.Executor(ctx, r.DB).QueryRowContext(ctx, query, subject))
}

func (r *PGRepo) UpdateProfile(ctx context.Context, userID string, profile ProfileUpdate) (User, error) {
	skills, err := json.Marshal(nonNil(profile.Skills))
	if err != nil {
		return User{}, err
	}
	const query = `
UPDATE users SET
  industry = $2,
  experience_years = $3,
  bio = $4,
  skills = $5::jsonb,
  updated_at = now()
WHERE id = $1
RETURNING ` + userColumns
	row := db.Executor(ctx, r.DB).QueryRowContext(ctx, query,
		userID,
		profile.Industry,
		profile.ExperienceYears,
		nullableString(profile.Bio),
		string(skills),
	)
	return scanUser(row)
}

func scanUser(row *sql.Row) (User, error) {
	var user User
	var email, fullName, imageURL, industry, bio sql.NullString
	var experience sql.NullInt64
	var skills []byte
	err := row.Scan(
		&user.ID,
		&user.Subject,
		&email,
		&fullName,
		&imageURL,
		&industry,
		&experience,
		&bio,
		&skills,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.Email = email.String
	user.FullName = fullName.String
	user.ImageURL = imageURL.String
	user.Industry = industry.String
	user.ExperienceYears = int(experience.Int64)
	user.Bio = bio.String
	user.Skills = []string{}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &user.Skills); err != nil {
			return User{}, err
		}
	}
	return user, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
