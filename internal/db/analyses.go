package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/skillgap-ai/skillgap-api/internal/types"
)

// Analysis statuses.
const (
	StatusExtracting = "extracting"
	StatusExtracted  = "extracted"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// CreateAnalysis inserts a new analysis record in the extracting state and
// returns its ID.
func (db *DB) CreateAnalysis(ctx context.Context, userID uuid.UUID, resumePath string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO analyses (user_id, resume_path, status)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		nullableUUID(userID), resumePath, StatusExtracting,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create analysis: %w", err)
	}
	return id, nil
}

// SaveExtractedSkills stores the matched keyword list and moves the analysis
// to the extracted state.
func (db *DB) SaveExtractedSkills(ctx context.Context, analysisID uuid.UUID, skills []string) error {
	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE analyses SET skills = $1, status = $2 WHERE id = $3`,
		skillsJSON, StatusExtracted, analysisID,
	)
	if err != nil {
		return fmt.Errorf("failed to save extracted skills: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("analysis not found: %s", analysisID)
	}
	return nil
}

// SaveReport stores the generated report and marks the analysis completed.
func (db *DB) SaveReport(ctx context.Context, analysisID uuid.UUID, report *types.AnalysisReport) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE analyses SET report = $1, status = $2, completed_at = NOW() WHERE id = $3`,
		reportJSON, StatusCompleted, analysisID,
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("analysis not found: %s", analysisID)
	}
	return nil
}

// FailAnalysis marks an analysis as failed.
func (db *DB) FailAnalysis(ctx context.Context, analysisID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE analyses SET status = $1, completed_at = NOW() WHERE id = $2`,
		StatusFailed, analysisID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark analysis failed: %w", err)
	}
	return nil
}

// GetAnalysis retrieves an analysis by ID. Returns nil when not found.
func (db *DB) GetAnalysis(ctx context.Context, analysisID uuid.UUID) (*types.Analysis, error) {
	var a types.Analysis
	var userID *uuid.UUID
	var resumePath *string
	var skillsJSON, reportJSON []byte
	var completedAt *time.Time

	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, resume_path, skills, status, report, created_at, completed_at
		 FROM analyses WHERE id = $1`,
		analysisID,
	).Scan(&a.ID, &userID, &resumePath, &skillsJSON, &a.Status, &reportJSON, &a.CreatedAt, &completedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	if userID != nil {
		a.UserID = *userID
	}
	if resumePath != nil {
		a.ResumePath = *resumePath
	}
	a.CompletedAt = completedAt
	if len(skillsJSON) > 0 {
		if err := json.Unmarshal(skillsJSON, &a.Skills); err != nil {
			return nil, fmt.Errorf("failed to parse analysis skills: %w", err)
		}
	}
	if len(reportJSON) > 0 {
		var report types.AnalysisReport
		if err := json.Unmarshal(reportJSON, &report); err != nil {
			return nil, fmt.Errorf("failed to parse analysis report: %w", err)
		}
		a.Report = &report
	}

	return &a, nil
}

// ListAnalyses retrieves recent analyses, newest first.
func (db *DB) ListAnalyses(ctx context.Context, limit int) ([]types.Analysis, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, status, created_at, completed_at
		 FROM analyses ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var out []types.Analysis
	for rows.Next() {
		var a types.Analysis
		var completedAt *time.Time
		if err := rows.Scan(&a.ID, &a.Status, &a.CreatedAt, &completedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		a.CompletedAt = completedAt
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteAnalysis removes an analysis.
func (db *DB) DeleteAnalysis(ctx context.Context, analysisID uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1`, analysisID)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("analysis not found: %s", analysisID)
	}
	return nil
}

// nullableUUID maps uuid.Nil to SQL NULL.
func nullableUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
