package ranking

import (
	"sort"

	"github.com/skillgap-ai/skillgap-api/internal/types"
)

// Sort returns a new slice of courses ordered by the given sort mode. The sort
// is stable: courses that compare equal keep their original insertion order,
// which makes the operation idempotent. Unknown modes fall back to ai-score.
func Sort(courses []types.CourseRecord, mode types.SortMode) []types.CourseRecord {
	out := make([]types.CourseRecord, len(courses))
	copy(out, courses)

	less := comparator(mode)
	sort.SliceStable(out, func(i, j int) bool {
		return less(&out[i], &out[j])
	})
	return out
}

// Rank filters then sorts in one pass, the shape most callers want.
func Rank(courses []types.CourseRecord, state types.FilterState) []types.CourseRecord {
	return Sort(Filter(courses, state), state.SortBy)
}

// comparator returns the less function for a sort mode.
func comparator(mode types.SortMode) func(a, b *types.CourseRecord) bool {
	switch mode {
	case types.SortMarketDemand:
		return func(a, b *types.CourseRecord) bool {
			return a.AIInsights.MarketDemand > b.AIInsights.MarketDemand
		}
	case types.SortSalaryImpact:
		return func(a, b *types.CourseRecord) bool {
			return ParseSalaryMagnitude(a.AIInsights.SalaryImpact) > ParseSalaryMagnitude(b.AIInsights.SalaryImpact)
		}
	case types.SortTrending:
		return func(a, b *types.CourseRecord) bool {
			return a.AIInsights.TrendingScore > b.AIInsights.TrendingScore
		}
	case types.SortRating:
		return func(a, b *types.CourseRecord) bool {
			return a.Rating > b.Rating
		}
	case types.SortPriceLow:
		return func(a, b *types.CourseRecord) bool {
			return a.Price < b.Price
		}
	case types.SortPriceHigh:
		return func(a, b *types.CourseRecord) bool {
			return a.Price > b.Price
		}
	case types.SortDuration:
		return func(a, b *types.CourseRecord) bool {
			return ParseDurationHours(a.Duration) < ParseDurationHours(b.Duration)
		}
	default: // ai-score
		return func(a, b *types.CourseRecord) bool {
			return a.CompositeScore() > b.CompositeScore()
		}
	}
}
