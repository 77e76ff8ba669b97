package gaps

import (
	"testing"

	"github.com/skillgap-ai/skillgap-api/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)
	assert.Equal(t, 0, summary.TotalSkills)
	assert.Equal(t, 100, summary.ReadinessScore)
	assert.Zero(t, summary.AverageGap)
}

func TestSummarize_AllStrengths(t *testing.T) {
	summary := Summarize([]types.SkillGapRecord{
		{Skill: "Go", CurrentLevel: 90, RequiredLevel: 70},
		{Skill: "SQL", CurrentLevel: 80, RequiredLevel: 80},
	})

	assert.Equal(t, 2, summary.TotalSkills)
	assert.Equal(t, 2, summary.Strengths)
	assert.Equal(t, 100, summary.ReadinessScore)
	assert.Empty(t, summary.LargestGapSkill)
}

func TestSummarize_Counts(t *testing.T) {
	summary := Summarize([]types.SkillGapRecord{
		{Skill: "System Design", CurrentLevel: 20, RequiredLevel: 80, Importance: types.ImportanceCritical},
		{Skill: "SQL", CurrentLevel: 50, RequiredLevel: 70, SkillType: types.SkillTypeEssential},
		{Skill: "Terraform", CurrentLevel: 30, RequiredLevel: 50, SkillType: types.SkillTypeCompetitive},
		{Skill: "Go", CurrentLevel: 90, RequiredLevel: 75},
	})

	assert.Equal(t, 4, summary.TotalSkills)
	assert.Equal(t, 1, summary.CriticalGaps)
	assert.Equal(t, 1, summary.EssentialGaps)
	assert.Equal(t, 1, summary.CompetitiveGaps)
	assert.Equal(t, 1, summary.Strengths)
}

func TestSummarize_AverageAndLargestGap(t *testing.T) {
	summary := Summarize([]types.SkillGapRecord{
		{Skill: "System Design", CurrentLevel: 20, RequiredLevel: 80, Importance: types.ImportanceCritical}, // gap 60
		{Skill: "SQL", CurrentLevel: 50, RequiredLevel: 70, SkillType: types.SkillTypeEssential},            // gap 20
	})

	assert.InDelta(t, 40.0, summary.AverageGap, 0.0001)
	assert.Equal(t, "System Design", summary.LargestGapSkill)
	assert.Equal(t, 60, summary.LargestGapPoints)
}

func TestSummarize_ReadinessScoreDecreasesWithWorseGaps(t *testing.T) {
	mild := Summarize([]types.SkillGapRecord{
		{Skill: "SQL", CurrentLevel: 60, RequiredLevel: 70, Importance: types.ImportanceLow},
	})
	severe := Summarize([]types.SkillGapRecord{
		{Skill: "SQL", CurrentLevel: 0, RequiredLevel: 100, Importance: types.ImportanceCritical},
	})

	assert.Greater(t, mild.ReadinessScore, severe.ReadinessScore)
	assert.GreaterOrEqual(t, severe.ReadinessScore, 0)
	assert.LessOrEqual(t, mild.ReadinessScore, 100)
}

func TestSummarize_UnknownImportanceTreatedAsMedium(t *testing.T) {
	unknown := Summarize([]types.SkillGapRecord{
		{Skill: "X", CurrentLevel: 20, RequiredLevel: 70},
	})
	medium := Summarize([]types.SkillGapRecord{
		{Skill: "X", CurrentLevel: 20, RequiredLevel: 70, Importance: types.ImportanceMedium},
	})

	assert.Equal(t, medium.ReadinessScore, unknown.ReadinessScore)
}
