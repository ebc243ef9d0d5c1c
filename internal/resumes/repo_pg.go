package resumes

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"career-backend/internal/shared/storage/db"
)

type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, content, ats_score, feedback, created_at, updated_at`

func (r *PGRepo) GetByUser(ctx context.Context, userID string) (Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id = $1 LIMIT 1`
	return scanResume(db.Executor(ctx, r.DB).QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) Upsert(ctx context.Context, userID, content string) (Resume, error) {
	const query = `
INSERT INTO resumes (id, user_id, content, created_at, updated_at)
VALUES ($1, $2, $3, now(), now())
ON CONFLICT (user_id) DO UPDATE SET
  content = EXCLUDED.content,
  updated_at = now()
RETURNING ` + resumeColumns
	return scanResume(db.Executor(ctx, r.DB).QueryRowContext(ctx, query, uuid.NewString(), userID, content))
}

func scanResume(row *sql.Row) (Resume, error) {
	var resume Resume
	var score sql.NullFloat64
	var feedback sql.NullString
	err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Content,
		&score,
		&feedback,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	if score.Valid {
		v := score.Float64
		resume.ATSScore = &v
	}
	resume.Feedback = feedback.String
	return resume, nil
}
