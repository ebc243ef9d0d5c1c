package assessments

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"career-backend/internal/shared/storage/db"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, a Assessment) error {
	questions, err := json.Marshal(a.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	var tip any
	if a.ImprovementTip != nil {
		tip = *a.ImprovementTip
	}
	const query = `
INSERT INTO assessments (id, user_id, quiz_score, questions, category, improvement_tip, created_at)
VALUES ($1, $2, $3, $4::jsonb, $5, $6, $7)`
	_, err = db.Executor(ctx, r.DB).ExecContext(ctx, query,
		a.ID,
		a.UserID,
		a.QuizScore,
		string(questions),
		a.Category,
		tip,
		a.CreatedAt,
	)
	return err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Assessment, error) {
	const query = `
SELECT id, user_id, quiz_score, questions, category, improvement_tip, created_at
FROM assessments
WHERE user_id = $1
ORDER BY created_at ASC`
	rows, err := db.Executor(ctx, r.DB).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Assessment, 0)
	for rows.Next() {
		var a Assessment
		var questions []byte
		var tip sql.NullString
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuizScore, &questions, &a.Category, &tip, &a.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(questions, &a.Questions); err != nil {
			return nil, fmt.Errorf("decode questions for %s: %w", a.ID, err)
		}
		if tip.Valid {
			v := tip.String
			a.ImprovementTip = &v
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
