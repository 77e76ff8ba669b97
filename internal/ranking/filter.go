// Package ranking provides filtering and ordering of course records against a
// user-selected filter state.
package ranking

import (
	"strconv"
	"strings"

	"github.com/skillgap-ai/skillgap-api/internal/types"
)

// Filter returns the subsequence of courses that satisfy every active facet of
// the filter state. An empty facet selection places no constraint. The input
// slice is never mutated and no records are invented; relaxing any constraint
// can only grow the result.
func Filter(courses []types.CourseRecord, state types.FilterState) []types.CourseRecord {
	out := make([]types.CourseRecord, 0, len(courses))
	for _, c := range courses {
		if matches(&c, &state) {
			out = append(out, c)
		}
	}
	return out
}

// matches applies the logical AND of all active facets to a single course.
func matches(c *types.CourseRecord, state *types.FilterState) bool {
	if len(state.Providers) > 0 && !containsFold(state.Providers, c.Provider) {
		return false
	}
	if len(state.Levels) > 0 && !containsFold(state.Levels, c.Level) {
		return false
	}
	if len(state.Priorities) > 0 && !containsFold(state.Priorities, c.Priority) {
		return false
	}
	if len(state.Tags) > 0 && !intersectsFold(state.Tags, c.Tags) {
		return false
	}

	hours := ParseDurationHours(c.Duration)
	if hours < state.MinDuration || hours > state.MaxDuration {
		return false
	}
	if c.Price < state.MinPrice || c.Price > state.MaxPrice {
		return false
	}

	return true
}

// containsFold reports whether values contains v, case-insensitively.
func containsFold(values []string, v string) bool {
	for _, candidate := range values {
		if strings.EqualFold(candidate, v) {
			return true
		}
	}
	return false
}

// intersectsFold reports whether the two sets share at least one value.
func intersectsFold(selected, tags []string) bool {
	for _, tag := range tags {
		if containsFold(selected, tag) {
			return true
		}
	}
	return false
}

// ParseDurationHours extracts the integer hour count from a display duration
// string like "22 hours" or "6h". Non-digit characters are stripped; a string
// with no digits parses as zero.
func ParseDurationHours(duration string) int {
	var digits strings.Builder
	for _, r := range duration {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		} else if digits.Len() > 0 {
			// Only the leading number counts; "2 x 3 hours" parses as 2.
			break
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}

// ParseSalaryMagnitude extracts the numeric magnitude from a salary impact
// display string like "+$15,000/yr". All non-digit characters are stripped.
func ParseSalaryMagnitude(salaryImpact string) int {
	var digits strings.Builder
	for _, r := range salaryImpact {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}
