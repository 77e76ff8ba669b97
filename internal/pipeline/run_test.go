package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillgap-ai/skillgap-api/internal/catalog"
	"github.com/skillgap-ai/skillgap-api/internal/roles"
)

// eventRecorder collects progress events; Run emits from concurrent branches
// so access is locked.
type eventRecorder struct {
	mu     sync.Mutex
	events []ProgressEvent
}

func (r *eventRecorder) record(event ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) steps() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Step
	}
	return out
}

func testRoles(t *testing.T) *roles.Catalog {
	t.Helper()
	cat, err := roles.Load()
	require.NoError(t, err)
	return cat
}

func TestRun_JobDescriptionAgainstRole(t *testing.T) {
	recorder := &eventRecorder{}
	opts := RunOptions{
		JobDescription: "Looking for an engineer with Python, SQL, Docker and Git experience.",
		TargetRole:     "software_engineer",
		BaselineLevel:  60,
		Repo:           catalog.NewMemoryRepository(nil, nil),
		Roles:          testRoles(t),
		OnProgress:     recorder.record,
	}

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Contains(t, result.Skills, "Python")
	assert.Contains(t, result.Skills, "Docker")

	// One gap record per role requirement.
	assert.Len(t, result.GapRecords, 8)
	assert.Equal(t, 8, result.Summary.TotalSkills)

	// JavaScript never appears in the description, so it gaps from zero as a
	// critical deficiency.
	var foundJS bool
	for _, r := range result.Classified.Critical {
		if r.Skill == "JavaScript" {
			foundJS = true
			assert.Equal(t, 0, r.CurrentLevel)
			assert.Equal(t, 70, r.RequiredLevel)
		}
	}
	assert.True(t, foundJS, "JavaScript should be a critical gap")

	// SQL baseline 60 exceeds the required 50.
	var foundSQL bool
	for _, r := range result.Classified.Strengths {
		if r.Skill == "SQL" {
			foundSQL = true
		}
	}
	assert.True(t, foundSQL, "SQL should be a strength")

	// Python is deficient and the seed catalog teaches it, so at least one
	// recommendation must come back.
	require.NotEmpty(t, result.Recommendations)
	deficient := make(map[string]bool)
	for _, d := range result.Classified.Deficiencies() {
		deficient[d.Skill] = true
	}
	for _, c := range result.Recommendations {
		var matches bool
		for _, s := range c.Skills {
			if deficient[s] {
				matches = true
			}
		}
		assert.True(t, matches, "recommendation %s matches no deficiency", c.ID)
	}

	steps := recorder.steps()
	for _, want := range []string{"ingest", "extract", "gaps", "score", "catalog", "recommend", "done"} {
		assert.Contains(t, steps, want)
	}
	assert.Equal(t, "done", steps[len(steps)-1])
}

func TestRun_ResumeFile(t *testing.T) {
	dir := t.TempDir()
	resumePath := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(resumePath, []byte("Built services in Python with PostgreSQL and Kubernetes."), 0o644))

	result, err := Run(context.Background(), RunOptions{
		ResumePath:    resumePath,
		TargetRole:    "senior_software_engineer",
		BaselineLevel: 50,
		Repo:          catalog.NewMemoryRepository(nil, nil),
		Roles:         testRoles(t),
	})
	require.NoError(t, err)

	assert.Contains(t, result.Skills, "Kubernetes")
	assert.Len(t, result.GapRecords, 7)
}

func TestRun_NoTargetRoleFallsBackToStoredGaps(t *testing.T) {
	repo := catalog.NewMemoryRepository(nil, nil)
	result, err := Run(context.Background(), RunOptions{
		JobDescription: "Python developer wanted.",
		Repo:           repo,
	})
	require.NoError(t, err)

	seed, err := repo.FetchSkillGaps(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, result.GapRecords, len(seed))
}

func TestRun_UnknownRole(t *testing.T) {
	_, err := Run(context.Background(), RunOptions{
		JobDescription: "Python developer wanted.",
		TargetRole:     "quantum_wizard",
		Repo:           catalog.NewMemoryRepository(nil, nil),
		Roles:          testRoles(t),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown target role")
}

func TestRun_NoSources(t *testing.T) {
	_, err := Run(context.Background(), RunOptions{
		Repo: catalog.NewMemoryRepository(nil, nil),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input sources")
}

func TestRun_MissingResumeFile(t *testing.T) {
	_, err := Run(context.Background(), RunOptions{
		ResumePath: filepath.Join(t.TempDir(), "missing.txt"),
		Repo:       catalog.NewMemoryRepository(nil, nil),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read resume")
}

func TestRun_JobURLWithoutFetcher(t *testing.T) {
	_, err := Run(context.Background(), RunOptions{
		JobURL: "https://example.com/job",
		Repo:   catalog.NewMemoryRepository(nil, nil),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no fetcher")
}
