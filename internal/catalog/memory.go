package catalog

import (
	"context"

	"github.com/skillgap-ai/skillgap-api/internal/types"
)

// MemoryRepository serves the static mock tables. Each call returns a fresh
// copy so callers can never mutate the seed data.
type MemoryRepository struct {
	courses []types.CourseRecord
	gaps    []types.SkillGapRecord
}

// NewMemoryRepository creates a repository over the given seed data. Nil seeds
// fall back to the built-in mock tables.
func NewMemoryRepository(courses []types.CourseRecord, gaps []types.SkillGapRecord) *MemoryRepository {
	if courses == nil {
		courses = SeedCourses()
	}
	if gaps == nil {
		gaps = SeedSkillGaps()
	}
	return &MemoryRepository{courses: courses, gaps: gaps}
}

// FetchCourses returns a copy of the course table.
func (m *MemoryRepository) FetchCourses(_ context.Context) ([]types.CourseRecord, error) {
	out := make([]types.CourseRecord, len(m.courses))
	copy(out, m.courses)
	return out, nil
}

// FetchSkillGaps returns a copy of the skill gap table. The userID is ignored
// by the mock implementation; every user sees the same demo data.
func (m *MemoryRepository) FetchSkillGaps(_ context.Context, _ string) ([]types.SkillGapRecord, error) {
	out := make([]types.SkillGapRecord, len(m.gaps))
	copy(out, m.gaps)
	return out, nil
}

// SeedCourses returns the built-in mock course table.
func SeedCourses() []types.CourseRecord {
	return []types.CourseRecord{
		{
			ID:       "udemy_python_1",
			Title:    "Complete Python Bootcamp From Zero to Hero",
			Provider: "Udemy",
			Level:    "Beginner",
			Skills:   []string{"Python", "Problem Solving"},
			Tags:     []string{"programming", "bootcamp"},
			Priority: "High",
			Rating:   4.6,
			Price:    84.99,
			Duration: "22 hours",

			MatchScore: 88,
			AIInsights: types.AIInsights{
				MarketDemand:   90,
				SalaryImpact:   "+$12,000/yr",
				CompletionRate: 72,
				JobRelevance:   86,
				TrendingScore:  81,
			},
		},
		{
			ID:       "udemy_react_1",
			Title:    "React - The Complete Guide",
			Provider: "Udemy",
			Level:    "Intermediate",
			Skills:   []string{"React", "JavaScript"},
			Tags:     []string{"web", "frontend"},
			Priority: "High",
			Rating:   4.6,
			Price:    89.99,
			Duration: "48 hours",

			MatchScore: 84,
			AIInsights: types.AIInsights{
				MarketDemand:   87,
				SalaryImpact:   "+$10,500/yr",
				CompletionRate: 64,
				JobRelevance:   82,
				TrendingScore:  78,
			},
		},
		{
			ID:       "udemy_ml_1",
			Title:    "Machine Learning A-Z: Hands-On Python & R",
			Provider: "Udemy",
			Level:    "Intermediate",
			Skills:   []string{"Machine Learning", "Python", "Statistics"},
			Tags:     []string{"data-science"},
			Priority: "Critical",
			Rating:   4.5,
			Price:    94.99,
			Duration: "44 hours",

			MatchScore: 95,
			AIInsights: types.AIInsights{
				MarketDemand:   92,
				SalaryImpact:   "+$18,000/yr",
				CompletionRate: 58,
				JobRelevance:   95,
				TrendingScore:  90,
			},
		},
		{
			ID:       "udemy_aws_1",
			Title:    "Ultimate AWS Certified Solutions Architect Associate",
			Provider: "Udemy",
			Level:    "Intermediate",
			Skills:   []string{"AWS", "System Design"},
			Tags:     []string{"cloud", "certification"},
			Priority: "Medium",
			Rating:   4.7,
			Price:    79.99,
			Duration: "27 hours",

			MatchScore: 76,
			AIInsights: types.AIInsights{
				MarketDemand:   85,
				SalaryImpact:   "+$15,000/yr",
				CompletionRate: 61,
				JobRelevance:   74,
				TrendingScore:  72,
			},
		},
		{
			ID:       "coursera_python_1",
			Title:    "Python for Everybody Specialization",
			Provider: "Coursera",
			Level:    "Beginner",
			Skills:   []string{"Python", "Data Analysis"},
			Tags:     []string{"programming", "specialization"},
			Priority: "High",
			Rating:   4.8,
			Price:    49.0,
			Duration: "32 hours",

			MatchScore: 82,
			AIInsights: types.AIInsights{
				MarketDemand:   90,
				SalaryImpact:   "+$9,500/yr",
				CompletionRate: 78,
				JobRelevance:   80,
				TrendingScore:  69,
			},
		},
		{
			ID:       "coursera_k8s_1",
			Title:    "Architecting with Google Kubernetes Engine",
			Provider: "Coursera",
			Level:    "Advanced",
			Skills:   []string{"Kubernetes", "Docker", "Google Cloud"},
			Tags:     []string{"cloud", "devops"},
			Priority: "Critical",
			Rating:   4.4,
			Price:    59.0,
			Duration: "38 hours",

			MatchScore: 91,
			AIInsights: types.AIInsights{
				MarketDemand:   88,
				SalaryImpact:   "+$16,500/yr",
				CompletionRate: 54,
				JobRelevance:   89,
				TrendingScore:  85,
			},
		},
		{
			ID:       "youtube_sql_1",
			Title:    "SQL Tutorial - Full Database Course for Beginners",
			Provider: "YouTube",
			Level:    "Beginner",
			Skills:   []string{"SQL", "PostgreSQL"},
			Tags:     []string{"databases", "free"},
			Priority: "Medium",
			Rating:   4.3,
			Price:    0,
			Duration: "4 hours",

			MatchScore: 65,
			AIInsights: types.AIInsights{
				MarketDemand:   82,
				SalaryImpact:   "+$6,000/yr",
				CompletionRate: 85,
				JobRelevance:   68,
				TrendingScore:  55,
			},
		},
	}
}

// SeedSkillGaps returns the built-in mock skill gap table.
func SeedSkillGaps() []types.SkillGapRecord {
	return []types.SkillGapRecord{
		{Skill: "System Design", Category: "tools", CurrentLevel: 35, RequiredLevel: 80, Importance: types.ImportanceCritical, SkillType: types.SkillTypeEssential},
		{Skill: "Kubernetes", Category: "devops_tools", CurrentLevel: 20, RequiredLevel: 70, Importance: types.ImportanceCritical, SkillType: types.SkillTypeEssential},
		{Skill: "Machine Learning", Category: "data_science", CurrentLevel: 40, RequiredLevel: 75, Importance: types.ImportanceHigh, SkillType: types.SkillTypeCompetitive},
		{Skill: "SQL", Category: "databases", CurrentLevel: 55, RequiredLevel: 70, Importance: types.ImportanceHigh, SkillType: types.SkillTypeEssential},
		{Skill: "AWS", Category: "cloud_platforms", CurrentLevel: 45, RequiredLevel: 65, Importance: types.ImportanceMedium, SkillType: types.SkillTypeCompetitive},
		{Skill: "Python", Category: "programming", CurrentLevel: 88, RequiredLevel: 85, Importance: types.ImportanceCritical, SkillType: types.SkillTypeEssential},
		{Skill: "Git", Category: "tools", CurrentLevel: 80, RequiredLevel: 65, Importance: types.ImportanceHigh, SkillType: types.SkillTypeEssential},
	}
}
