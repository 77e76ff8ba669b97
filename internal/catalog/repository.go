// Package catalog provides the course data source abstraction so the ranking
// and recommendation logic never touches a concrete backend.
package catalog

import (
	"context"

	"github.com/skillgap-ai/skillgap-api/internal/types"
)

// Repository is the polymorphic data source for courses and stored skill
// gaps. The in-memory implementation backs the mock dashboards; the Postgres
// implementation backs real deployments.
type Repository interface {
	FetchCourses(ctx context.Context) ([]types.CourseRecord, error)
	FetchSkillGaps(ctx context.Context, userID string) ([]types.SkillGapRecord, error)
}
