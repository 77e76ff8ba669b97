package types

// Importance indicates how important a skill is for the target role.
type Importance string

// Importance levels, ordered from most to least important.
const (
	ImportanceCritical Importance = "Critical"
	ImportanceHigh     Importance = "High"
	ImportanceMedium   Importance = "Medium"
	ImportanceLow      Importance = "Low"
)

// SkillType distinguishes between skills a role cannot function without and
// skills that differentiate candidates.
type SkillType string

// Skill type values.
const (
	SkillTypeEssential   SkillType = "Essential"
	SkillTypeCompetitive SkillType = "Competitive"
)

// SkillGapRecord captures the difference between a user's current proficiency
// and the level a target role requires. Levels are on a 0-100 scale.
type SkillGapRecord struct {
	Skill         string     `json:"skill" validate:"required"`
	Category      string     `json:"category,omitempty"`
	CurrentLevel  int        `json:"current_level" validate:"min=0,max=100"`
	RequiredLevel int        `json:"required_level" validate:"min=0,max=100"`
	Importance    Importance `json:"importance"`
	SkillType     SkillType  `json:"skill_type"`
}

// Gap returns requiredLevel - currentLevel. A positive gap signifies a
// deficiency; zero or negative signifies a strength.
func (r *SkillGapRecord) Gap() int {
	return r.RequiredLevel - r.CurrentLevel
}

// GapBucket names the bucket a skill falls into after classification.
type GapBucket string

// Gap buckets. Every skill belongs to exactly one.
const (
	BucketCritical    GapBucket = "critical"
	BucketEssential   GapBucket = "essential"
	BucketCompetitive GapBucket = "competitive"
	BucketStrength    GapBucket = "strength"
)
