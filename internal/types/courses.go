// Package types provides type definitions for structured data used throughout the skillgap-api system.
package types

// AIInsights holds the market signals attached to a course by the upstream
// enrichment job. All values except SalaryImpact are bounded to [0, 100].
type AIInsights struct {
	MarketDemand   float64 `json:"market_demand"`
	SalaryImpact   string  `json:"salary_impact"` // display string with embedded currency, e.g. "+$15,000/yr"
	CompletionRate float64 `json:"completion_rate"`
	JobRelevance   float64 `json:"job_relevance"`
	TrendingScore  float64 `json:"trending_score"`
}

// CourseRecord represents a single course offering. Records are externally
// supplied and immutable for the lifetime of a request.
type CourseRecord struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Provider   string     `json:"provider"`
	Level      string     `json:"level"`
	Skills     []string   `json:"skills" validate:"required,min=1"`
	Tags       []string   `json:"tags,omitempty"`
	Priority   string     `json:"priority,omitempty"`
	Rating     float64    `json:"rating"`
	Price      float64    `json:"price"`
	Duration   string     `json:"duration"` // e.g. "22 hours"
	MatchScore float64    `json:"match_score"` // 0-100
	AIInsights AIInsights `json:"ai_insights"`
}

// CompositeScore returns the weighted blend used by the ai-score sort order.
func (c *CourseRecord) CompositeScore() float64 {
	return c.MatchScore*0.4 + c.AIInsights.MarketDemand*0.3 + c.AIInsights.JobRelevance*0.3
}

// HasSkill reports whether the course teaches the given skill (exact match).
func (c *CourseRecord) HasSkill(skill string) bool {
	for _, s := range c.Skills {
		if s == skill {
			return true
		}
	}
	return false
}
