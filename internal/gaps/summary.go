package gaps

import (
	"github.com/skillgap-ai/skillgap-api/internal/types"
)

// Importance weights for the readiness score. A critical deficiency costs the
// most; a low-importance one costs the least.
var importanceWeight = map[types.Importance]float64{
	types.ImportanceCritical: 4,
	types.ImportanceHigh:     3,
	types.ImportanceMedium:   2,
	types.ImportanceLow:      1,
}

// Summarize derives the aggregate statistics for a skill list: bucket counts,
// average deficiency size, the single largest gap, and a 0-100 readiness
// score. All of it is plain counting and averaging.
func Summarize(skills []types.SkillGapRecord) types.GapSummary {
	c := Classify(skills)

	summary := types.GapSummary{
		TotalSkills:     c.Total(),
		CriticalGaps:    len(c.Critical),
		EssentialGaps:   len(c.Essential),
		CompetitiveGaps: len(c.Competitive),
		Strengths:       len(c.Strengths),
	}

	deficiencies := c.Deficiencies()
	if len(deficiencies) == 0 {
		summary.ReadinessScore = 100
		return summary
	}

	gapTotal := 0
	for _, d := range deficiencies {
		gap := d.Gap()
		gapTotal += gap
		if gap > summary.LargestGapPoints {
			summary.LargestGapPoints = gap
			summary.LargestGapSkill = d.Skill
		}
	}
	summary.AverageGap = float64(gapTotal) / float64(len(deficiencies))

	summary.ReadinessScore = readinessScore(deficiencies)
	return summary
}

// readinessScore weights each deficiency by importance and gap size, then
// maps the accumulated impact onto 0-100. No deficiencies means 100.
func readinessScore(deficiencies []types.SkillGapRecord) int {
	impact := 0.0
	maxImpact := 0.0
	for _, d := range deficiencies {
		weight, ok := importanceWeight[d.Importance]
		if !ok {
			weight = importanceWeight[types.ImportanceMedium]
		}
		impact += weight * float64(d.Gap()) / 100.0
		maxImpact += importanceWeight[types.ImportanceCritical]
	}

	if maxImpact == 0 {
		return 100
	}

	score := 100 - int(impact/maxImpact*100)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
