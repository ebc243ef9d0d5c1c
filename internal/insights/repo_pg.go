package insights

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"career-backend/internal/shared/storage/db"
)

type PGRepo struct {
	DB *sql.DB
}

const insightColumns = `id, industry, salary_ranges, growth_rate, demand_level, top_skills, market_outlook, key_trends, recommended_skills, source, last_updated, next_update`

func (r *PGRepo) GetByIndustry(ctx context.Context, industry string) (IndustryInsight, error) {
	query := `SELECT ` + insightColumns + ` FROM industry_insights WHERE industry = $1 LIMIT 1`
	return scanInsight(db.Executor(ctx, r.DB).QueryRowContext(ctx, query, industry))
}

func (r *PGRepo) CreateIfMissing(ctx context.Context, insight IndustryInsight) error {
	args, err := insightArgs(insight)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO industry_insights (` + insightColumns + `)
VALUES ($1, $2, $3::jsonb, $4, $5, $6::jsonb, $7, $8::jsonb, $9::jsonb, $10, $11, $12)
ON CONFLICT (industry) DO NOTHING`
	_, err = db.Executor(ctx, r.DB).ExecContext(ctx, query, args...)
	return err
}

func (r *PGRepo) Upsert(ctx context.Context, insight IndustryInsight) (IndustryInsight, error) {
	args, err := insightArgs(insight)
	if err != nil {
		return IndustryInsight{}, err
	}
	const query = `
INSERT INTO industry_insights (` + insightColumns + `)
VALUES ($1, $2, $3::jsonb, $4, $5, $6::jsonb, $7, $8::jsonb, $9::jsonb, $10, $11, $12)
ON CONFLICT (industry) DO UPDATE SET
  salary_ranges = EXCLUDED.salary_ranges,
  growth_rate = EXCLUDED.growth_rate,
  demand_level = EXCLUDED.demand_level,
  top_skills = EXCLUDED.top_skills,
  market_outlook = EXCLUDED.market_outlook,
  key_trends = EXCLUDED.key_trends,
  recommended_skills = EXCLUDED.recommended_skills,
  source = EXCLUDED.source,
  last_updated = EXCLUDED.last_updated,
  next_update = EXCLUDED.next_update
RETURNING ` + insightColumns
	return scanInsight(db.Executor(ctx, r.DB).QueryRowContext(ctx, query, args...))
}

func insightArgs(insight IndustryInsight) ([]any, error) {
	id := insight.ID
	if id == "" {
		id = uuid.NewString()
	}
	ranges, err := json.Marshal(nonNilRanges(insight.SalaryRanges))
	if err != nil {
		return nil, fmt.Errorf("marshal salary ranges: %w", err)
	}
	lists := make([]string, 0, 3)
	for _, values := range [][]string{insight.TopSkills, insight.KeyTrends, insight.RecommendedSkills} {
		raw, err := json.Marshal(nonNil(values))
		if err != nil {
			return nil, err
		}
		lists = append(lists, string(raw))
	}
	return []any{
		id,
		insight.Industry,
		string(ranges),
		insight.GrowthRate,
		insight.DemandLevel,
		lists[0],
		insight.MarketOutlook,
		lists[1],
		lists[2],
		insight.Source,
		insight.LastUpdated,
		insight.NextUpdate,
	}, nil
}

func scanInsight(row *sql.Row) (IndustryInsight, error) {
	var insight IndustryInsight
	var ranges, topSkills, keyTrends, recommended []byte
	err := row.Scan(
		&insight.ID,
		&insight.Industry,
		&ranges,
		&insight.GrowthRate,
		&insight.DemandLevel,
		&topSkills,
		&insight.MarketOutlook,
		&keyTrends,
		&recommended,
		&insight.Source,
		&insight.LastUpdated,
		&insight.NextUpdate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return IndustryInsight{}, ErrNotFound
		}
		return IndustryInsight{}, err
	}
	if err := unmarshalList(ranges, &insight.SalaryRanges); err != nil {
		return IndustryInsight{}, err
	}
	for _, pair := range []struct {
		raw []byte
		out *[]string
	}{
		{topSkills, &insight.TopSkills},
		{keyTrends, &insight.KeyTrends},
		{recommended, &insight.RecommendedSkills},
	} {
		if err := unmarshalList(pair.raw, pair.out); err != nil {
			return IndustryInsight{}, err
		}
		*pair.out = nonNil(*pair.out)
	}
	insight.SalaryRanges = nonNilRanges(insight.SalaryRanges)
	return insight, nil
}

func unmarshalList(raw []byte, out any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}
