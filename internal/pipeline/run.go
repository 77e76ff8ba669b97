// Package pipeline provides the high-level orchestration for a complete gap
// analysis: ingest inputs, extract skills, score gaps against a target role
// and match courses, in parallel where the steps are independent.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/skillgap-ai/skillgap-api/internal/catalog"
	"github.com/skillgap-ai/skillgap-api/internal/db"
	"github.com/skillgap-ai/skillgap-api/internal/extraction"
	"github.com/skillgap-ai/skillgap-api/internal/gaps"
	"github.com/skillgap-ai/skillgap-api/internal/ingest"
	"github.com/skillgap-ai/skillgap-api/internal/observability"
	"github.com/skillgap-ai/skillgap-api/internal/roles"
	"github.com/skillgap-ai/skillgap-api/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step       string `json:"step"`
	Message    string `json:"message"`
	AnalysisID string `json:"analysis_id,omitempty"`
	Content    any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	ResumePath     string
	JobDescription string
	JobURL         string
	TargetRole     string
	BaselineLevel  int // assumed level for extracted skills, 0-100

	Repo       catalog.Repository // course source; required
	Roles      *roles.Catalog     // role catalog; required when TargetRole is set
	Fetcher    *ingest.Fetcher    // required when JobURL is set
	Database   *db.DB             // optional persistence
	Verbose    bool
	OnProgress ProgressCallback
}

// Result holds the outputs of a pipeline run.
type Result struct {
	AnalysisID      uuid.UUID
	Skills          []string
	GapRecords      []types.SkillGapRecord
	Classified      gaps.Classified
	Summary         types.GapSummary
	Recommendations []types.CourseRecord
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			Content: content,
		})
	}
}

// Run orchestrates the full gap analysis pipeline.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	printer := observability.NewPrinter(os.Stdout)

	// Step 1: gather input text
	emitProgress(&opts, "ingest", "Gathering input sources", nil)
	sources, err := gatherSources(ctx, &opts)
	if err != nil {
		return nil, err
	}

	// Step 2: keyword extraction
	emitProgress(&opts, "extract", "Extracting skills", nil)
	skills := extraction.ExtractFromSources(sources...)
	if opts.Verbose {
		printer.PrintExtractedSkills(skills)
	}

	result := &Result{Skills: skills}

	// Persist the analysis as soon as skills exist, so a later failure still
	// leaves an inspectable record.
	if opts.Database != nil {
		analysisID, err := opts.Database.CreateAnalysis(ctx, uuid.Nil, opts.ResumePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create analysis: %w", err)
		}
		result.AnalysisID = analysisID
		if err := opts.Database.SaveExtractedSkills(ctx, analysisID, skills); err != nil {
			return nil, fmt.Errorf("failed to save extracted skills: %w", err)
		}
	}

	// Step 3: build gap records against the target role
	emitProgress(&opts, "gaps", "Building skill gap records", nil)
	result.GapRecords, err = buildGapRecords(ctx, &opts, skills)
	if err != nil {
		if opts.Database != nil && result.AnalysisID != uuid.Nil {
			_ = opts.Database.FailAnalysis(ctx, result.AnalysisID)
		}
		return nil, err
	}

	// Steps 4+5 in parallel: gap scoring and course catalog fetch are
	// independent of each other.
	g, gCtx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var courses []types.CourseRecord

	g.Go(func() error {
		classified := gaps.Classify(result.GapRecords)
		summary := gaps.Summarize(result.GapRecords)
		mu.Lock()
		result.Classified = classified
		result.Summary = summary
		mu.Unlock()
		emitProgress(&opts, "score", "Scored skill gaps", summary)
		return nil
	})

	g.Go(func() error {
		fetched, err := opts.Repo.FetchCourses(gCtx)
		if err != nil {
			return fmt.Errorf("course fetch failed: %w", err)
		}
		mu.Lock()
		courses = fetched
		mu.Unlock()
		emitProgress(&opts, "catalog", fmt.Sprintf("Fetched %d courses", len(fetched)), nil)
		return nil
	})

	if err := g.Wait(); err != nil {
		if opts.Database != nil && result.AnalysisID != uuid.Nil {
			_ = opts.Database.FailAnalysis(ctx, result.AnalysisID)
		}
		return nil, err
	}

	// Step 6: recommendation mapping needs both branches
	emitProgress(&opts, "recommend", "Matching courses to gaps", nil)
	result.Recommendations = catalog.MatchAndRank(courses, result.Classified.Deficiencies())

	if opts.Verbose {
		printer.PrintClassifiedGaps(&result.Classified)
		printer.PrintGapSummary(&result.Summary)
		printer.PrintRankedCourses(result.Recommendations)
	}

	if opts.Database != nil && result.AnalysisID != uuid.Nil {
		report := &types.AnalysisReport{
			AnalysisID:      result.AnalysisID,
			TargetRole:      opts.TargetRole,
			Skills:          result.GapRecords,
			Summary:         result.Summary,
			Recommendations: result.Recommendations,
			GeneratedAt:     time.Now(),
		}
		if err := opts.Database.SaveReport(ctx, result.AnalysisID, report); err != nil {
			return nil, fmt.Errorf("failed to save report: %w", err)
		}
	}

	emitProgress(&opts, "done", "Analysis complete", nil)
	return result, nil
}

// gatherSources reads the resume file and resolves the job description text,
// fetching the posting URL when one is configured.
func gatherSources(ctx context.Context, opts *RunOptions) ([]string, error) {
	var sources []string

	if opts.ResumePath != "" {
		data, err := os.ReadFile(opts.ResumePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read resume: %w", err)
		}
		sources = append(sources, string(data))
	}

	if opts.JobURL != "" {
		if opts.Fetcher == nil {
			return nil, fmt.Errorf("job URL configured but no fetcher provided")
		}
		text, err := opts.Fetcher.FetchText(ctx, opts.JobURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch job posting: %w", err)
		}
		sources = append(sources, text)
	}

	if opts.JobDescription != "" {
		sources = append(sources, opts.JobDescription)
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no input sources: provide a resume path, job description or job URL")
	}
	return sources, nil
}

// buildGapRecords maps extracted skills onto gap records. With a target role,
// every role requirement produces a record (absent skills gap from zero);
// without one, records fall back to the stored per-user gap list.
func buildGapRecords(ctx context.Context, opts *RunOptions, skills []string) ([]types.SkillGapRecord, error) {
	if opts.TargetRole != "" {
		if opts.Roles == nil {
			return nil, fmt.Errorf("target role configured but no role catalog provided")
		}
		role := opts.Roles.Get(opts.TargetRole)
		if role == nil {
			return nil, fmt.Errorf("unknown target role: %s", opts.TargetRole)
		}
		levels := roles.LevelsFromSkills(skills, opts.BaselineLevel)
		return role.GapsAgainst(levels), nil
	}

	records, err := opts.Repo.FetchSkillGaps(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch skill gaps: %w", err)
	}
	return records, nil
}
