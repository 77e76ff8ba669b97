package catalog

import (
	"context"
	"fmt"

	"github.com/skillgap-ai/skillgap-api/internal/ranking"
	"github.com/skillgap-ai/skillgap-api/internal/types"
)

// Recommend returns the courses whose skill set intersects at least one of the
// deficient skills, ordered by the ai-score composite. Courses matching no gap
// are dropped.
func Recommend(ctx context.Context, repo Repository, deficiencies []types.SkillGapRecord) ([]types.CourseRecord, error) {
	courses, err := repo.FetchCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch courses: %w", err)
	}

	return MatchAndRank(courses, deficiencies), nil
}

// MatchAndRank performs the recommendation mapping over an already-fetched
// course list.
func MatchAndRank(courses []types.CourseRecord, deficiencies []types.SkillGapRecord) []types.CourseRecord {
	wanted := make(map[string]bool, len(deficiencies))
	for _, d := range deficiencies {
		wanted[d.Skill] = true
	}

	matched := make([]types.CourseRecord, 0, len(courses))
	for _, c := range courses {
		for _, skill := range c.Skills {
			if wanted[skill] {
				matched = append(matched, c)
				break
			}
		}
	}

	return ranking.Sort(matched, types.SortAIScore)
}
