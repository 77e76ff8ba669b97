package server

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skillgap-ai/skillgap-api/internal/types"
)

// AnalysisStore abstracts analysis persistence so handlers work against
// Postgres in production and an in-memory store in mock mode and tests.
type AnalysisStore interface {
	CreateAnalysis(ctx context.Context, userID uuid.UUID, resumePath string) (uuid.UUID, error)
	SaveExtractedSkills(ctx context.Context, analysisID uuid.UUID, skills []string) error
	SaveReport(ctx context.Context, analysisID uuid.UUID, report *types.AnalysisReport) error
	FailAnalysis(ctx context.Context, analysisID uuid.UUID) error
	GetAnalysis(ctx context.Context, analysisID uuid.UUID) (*types.Analysis, error)
	ListAnalyses(ctx context.Context, limit int) ([]types.Analysis, error)
	DeleteAnalysis(ctx context.Context, analysisID uuid.UUID) error
}

// memoryAnalysisStore keeps analyses in a map. Used when the server runs
// without a database.
type memoryAnalysisStore struct {
	mu       sync.RWMutex
	analyses map[uuid.UUID]*types.Analysis
}

func newMemoryAnalysisStore() *memoryAnalysisStore {
	return &memoryAnalysisStore{analyses: make(map[uuid.UUID]*types.Analysis)}
}

func (m *memoryAnalysisStore) CreateAnalysis(_ context.Context, userID uuid.UUID, resumePath string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	m.analyses[id] = &types.Analysis{
		ID:         id,
		UserID:     userID,
		ResumePath: resumePath,
		Status:     "extracting",
		CreatedAt:  time.Now(),
	}
	return id, nil
}

func (m *memoryAnalysisStore) SaveExtractedSkills(_ context.Context, analysisID uuid.UUID, skills []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.analyses[analysisID]
	if !ok {
		return &ErrAnalysisNotFound{AnalysisID: analysisID}
	}
	a.Skills = skills
	a.Status = "extracted"
	return nil
}

func (m *memoryAnalysisStore) SaveReport(_ context.Context, analysisID uuid.UUID, report *types.AnalysisReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.analyses[analysisID]
	if !ok {
		return &ErrAnalysisNotFound{AnalysisID: analysisID}
	}
	now := time.Now()
	a.Report = report
	a.Status = "completed"
	a.CompletedAt = &now
	return nil
}

func (m *memoryAnalysisStore) FailAnalysis(_ context.Context, analysisID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.analyses[analysisID]
	if !ok {
		return &ErrAnalysisNotFound{AnalysisID: analysisID}
	}
	a.Status = "failed"
	return nil
}

func (m *memoryAnalysisStore) GetAnalysis(_ context.Context, analysisID uuid.UUID) (*types.Analysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.analyses[analysisID]
	if !ok {
		return nil, nil
	}
	snapshot := *a
	return &snapshot, nil
}

func (m *memoryAnalysisStore) ListAnalyses(_ context.Context, limit int) ([]types.Analysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Analysis, 0, len(m.analyses))
	for _, a := range m.analyses {
		out = append(out, *a)
	}
	// Newest first, matching the database ordering
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryAnalysisStore) DeleteAnalysis(_ context.Context, analysisID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.analyses[analysisID]; !ok {
		return &ErrAnalysisNotFound{AnalysisID: analysisID}
	}
	delete(m.analyses, analysisID)
	return nil
}
