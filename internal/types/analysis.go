package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ExtractRequest is the payload for the skill-extraction endpoint. Either a
// stored resume path or free-form job description text must be provided.
type ExtractRequest struct {
	ResumePath     string `json:"resume_path,omitempty"`
	JobDescription string `json:"job_description,omitempty"`
	JobURL         string `json:"job_url,omitempty"`
}

// Validate checks that at least one text source is present.
func (r *ExtractRequest) Validate() error {
	if r.ResumePath == "" && r.JobDescription == "" && r.JobURL == "" {
		return &ErrMissingField{Field: "resume_path, job_description or job_url"}
	}
	return nil
}

// ErrMissingField indicates a required request field was not supplied.
type ErrMissingField struct {
	Field string
}

func (e *ErrMissingField) Error() string {
	return "missing required field: " + e.Field
}

// ExtractResult is returned by the extraction endpoint: the matched keyword
// list plus an opaque analysis identifier for follow-up calls.
type ExtractResult struct {
	AnalysisID uuid.UUID `json:"analysis_id"`
	Skills     []string  `json:"skills"`
}

// ReportRequest carries the user-edited skill list used to generate a report.
type ReportRequest struct {
	Skills     []SkillGapRecord `json:"skills" validate:"required,min=1,dive"`
	TargetRole string           `json:"target_role,omitempty"`
}

// Validate validates the ReportRequest using the validator.
func (r *ReportRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// AnalysisReport is the generated gap-analysis report. The summary fields are
// derived by counting and averaging over the classified buckets; nothing in
// here is the output of a statistical model.
type AnalysisReport struct {
	AnalysisID      uuid.UUID        `json:"analysis_id"`
	TargetRole      string           `json:"target_role,omitempty"`
	Skills          []SkillGapRecord `json:"skills"`
	Summary         GapSummary       `json:"summary"`
	Recommendations []CourseRecord   `json:"recommendations,omitempty"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

// GapSummary holds the aggregate statistics for a classified skill list.
type GapSummary struct {
	TotalSkills      int     `json:"total_skills"`
	CriticalGaps     int     `json:"critical_gaps"`
	EssentialGaps    int     `json:"essential_gaps"`
	CompetitiveGaps  int     `json:"competitive_gaps"`
	Strengths        int     `json:"strengths"`
	AverageGap       float64 `json:"average_gap"`       // across deficiencies only
	ReadinessScore   int     `json:"readiness_score"`   // 0-100
	LargestGapSkill  string  `json:"largest_gap_skill,omitempty"`
	LargestGapPoints int     `json:"largest_gap_points"`
}

// Analysis is the stored record for one upload-and-analyze session.
type Analysis struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id,omitempty"`
	ResumePath  string          `json:"resume_path,omitempty"`
	Skills      []string        `json:"skills"`
	Status      string          `json:"status"`
	Report      *AnalysisReport `json:"report,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}
