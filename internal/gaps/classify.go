// Package gaps classifies skill gap records into buckets and derives summary
// statistics by counting and averaging over them.
package gaps

import (
	"github.com/skillgap-ai/skillgap-api/internal/types"
)

// Classified holds the bucket partition of a skill list. Every input skill
// lands in exactly one bucket.
type Classified struct {
	Critical    []types.SkillGapRecord `json:"critical"`
	Essential   []types.SkillGapRecord `json:"essential"`
	Competitive []types.SkillGapRecord `json:"competitive"`
	Strengths   []types.SkillGapRecord `json:"strengths"`
}

// Bucket returns the bucket a single record belongs to. A non-positive gap is
// always a strength. Among deficiencies, Critical importance wins over skill
// type; Essential skill type wins over Competitive; anything else that still
// has a positive gap counts as competitive so the partition stays total.
func Bucket(r *types.SkillGapRecord) types.GapBucket {
	if r.Gap() <= 0 {
		return types.BucketStrength
	}
	if r.Importance == types.ImportanceCritical {
		return types.BucketCritical
	}
	if r.SkillType == types.SkillTypeEssential {
		return types.BucketEssential
	}
	return types.BucketCompetitive
}

// Classify partitions skills into the four buckets, preserving input order
// within each bucket.
func Classify(skills []types.SkillGapRecord) Classified {
	var c Classified
	for _, s := range skills {
		switch Bucket(&s) {
		case types.BucketCritical:
			c.Critical = append(c.Critical, s)
		case types.BucketEssential:
			c.Essential = append(c.Essential, s)
		case types.BucketCompetitive:
			c.Competitive = append(c.Competitive, s)
		case types.BucketStrength:
			c.Strengths = append(c.Strengths, s)
		}
	}
	return c
}

// Total returns the number of skills across all buckets.
func (c *Classified) Total() int {
	return len(c.Critical) + len(c.Essential) + len(c.Competitive) + len(c.Strengths)
}

// Deficiencies returns all positive-gap records, critical first, then
// essential, then competitive.
func (c *Classified) Deficiencies() []types.SkillGapRecord {
	out := make([]types.SkillGapRecord, 0, len(c.Critical)+len(c.Essential)+len(c.Competitive))
	out = append(out, c.Critical...)
	out = append(out, c.Essential...)
	out = append(out, c.Competitive...)
	return out
}
