package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillgap-ai/skillgap-api/internal/types"
)

// PostgresRepository reads courses and stored skill gaps from Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository wraps an existing connection pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// FetchCourses loads the full course table. Skills, tags, and the insights
// sub-record are stored as JSONB columns.
func (p *PostgresRepository) FetchCourses(ctx context.Context) ([]types.CourseRecord, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, title, provider, level, skills, tags, priority, rating, price,
		        duration, match_score, ai_insights
		 FROM courses ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []types.CourseRecord
	for rows.Next() {
		var c types.CourseRecord
		var skillsJSON, tagsJSON, insightsJSON []byte
		if err := rows.Scan(&c.ID, &c.Title, &c.Provider, &c.Level, &skillsJSON, &tagsJSON,
			&c.Priority, &c.Rating, &c.Price, &c.Duration, &c.MatchScore, &insightsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		if err := json.Unmarshal(skillsJSON, &c.Skills); err != nil {
			return nil, fmt.Errorf("failed to parse course skills: %w", err)
		}
		if len(tagsJSON) > 0 {
			if err := json.Unmarshal(tagsJSON, &c.Tags); err != nil {
				return nil, fmt.Errorf("failed to parse course tags: %w", err)
			}
		}
		if len(insightsJSON) > 0 {
			if err := json.Unmarshal(insightsJSON, &c.AIInsights); err != nil {
				return nil, fmt.Errorf("failed to parse course insights: %w", err)
			}
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// FetchSkillGaps loads the stored gap records for a user.
func (p *PostgresRepository) FetchSkillGaps(ctx context.Context, userID string) ([]types.SkillGapRecord, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT skill, category, current_level, required_level, importance, skill_type
		 FROM skill_gaps WHERE user_id = $1 ORDER BY created_at ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query skill gaps: %w", err)
	}
	defer rows.Close()

	var out []types.SkillGapRecord
	for rows.Next() {
		var r types.SkillGapRecord
		if err := rows.Scan(&r.Skill, &r.Category, &r.CurrentLevel, &r.RequiredLevel,
			&r.Importance, &r.SkillType); err != nil {
			return nil, fmt.Errorf("failed to scan skill gap: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
