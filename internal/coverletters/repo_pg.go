package coverletters

import (
	"context"
	"database/sql"
	"errors"

	"career-backend/internal/shared/storage/db"
)

type PGRepo struct {
	DB *sql.DB
}

const letterColumns = `id, user_id, content, job_description, company_name, job_title, status, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, letter CoverLetter) error {
	const query = `
INSERT INTO cover_letters (` + letterColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := db.Executor(ctx, r.DB).ExecContext(ctx, query,
		letter.ID,
		letter.UserID,
		letter.Content,
		nullableString(letter.JobDescription),
		letter.CompanyName,
		letter.JobTitle,
		letter.Status,
		letter.CreatedAt,
		letter.UpdatedAt,
	)
	return err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]CoverLetter, error) {
	query := `SELECT ` + letterColumns + ` FROM cover_letters WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := db.Executor(ctx, r.DB).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CoverLetter, 0)
	for rows.Next() {
		letter, err := scanLetter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, letter)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (CoverLetter, error) {
	query := `SELECT ` + letterColumns + ` FROM cover_letters WHERE id = $1 AND user_id = $2 LIMIT 1`
	letter, err := scanLetter(db.Executor(ctx, r.DB).QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return CoverLetter{}, ErrNotFound
	}
	return letter, err
}

func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM cover_letters WHERE id = $1 AND user_id = $2`
	res, err := db.Executor(ctx, r.DB).ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLetter(row scanner) (CoverLetter, error) {
	var letter CoverLetter
	var jobDescription sql.NullString
	err := row.Scan(
		&letter.ID,
		&letter.UserID,
		&letter.Content,
		&jobDescription,
		&letter.CompanyName,
		&letter.JobTitle,
		&letter.Status,
		&letter.CreatedAt,
		&letter.UpdatedAt,
	)
	if err != nil {
		return CoverLetter{}, err
	}
	letter.JobDescription = jobDescription.String
	return letter, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
