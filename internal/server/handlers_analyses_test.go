package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillgap-ai/skillgap-api/internal/storage"
	"github.com/skillgap-ai/skillgap-api/internal/types"
)

func extractAnalysis(t *testing.T, s *Server, req types.ExtractRequest) types.ExtractResult {
	t.Helper()

	w := postJSON(t, s, "/analyses/extract", req)
	require.Equal(t, http.StatusOK, w.Code, "extract failed: %s", w.Body.String())

	var result types.ExtractResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NotEqual(t, uuid.Nil, result.AnalysisID)
	return result
}

func TestHandleExtract_FromJobDescription(t *testing.T) {
	s := newTestServer(t)

	result := extractAnalysis(t, s, types.ExtractRequest{
		JobDescription: "Looking for a Python engineer with PostgreSQL and Docker experience.",
	})

	assert.Contains(t, result.Skills, "Python")
	assert.Contains(t, result.Skills, "PostgreSQL")
	assert.Contains(t, result.Skills, "Docker")
	assert.NotContains(t, result.Skills, "Kubernetes")

	// The analysis is stored with the extracted skills
	req := httptest.NewRequest(http.MethodGet, "/analyses/"+result.AnalysisID.String(), nil)
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var analysis types.Analysis
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &analysis))
	assert.Equal(t, result.Skills, analysis.Skills)
	assert.Equal(t, "extracted", analysis.Status)
}

func TestHandleExtract_FromStoredResume(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/files/resumes/abc.txt", r.URL.Path)
		w.Write([]byte("Senior engineer. Go, React and AWS.")) //nolint:errcheck
	}))
	defer backend.Close()

	s := newTestServer(t)
	s.storage = storage.NewClient(backend.URL)

	result := extractAnalysis(t, s, types.ExtractRequest{ResumePath: "resumes/abc.txt"})

	assert.Contains(t, result.Skills, "Go")
	assert.Contains(t, result.Skills, "React")
	assert.Contains(t, result.Skills, "AWS")
}

func TestHandleExtract_MissingAllSources(t *testing.T) {
	s := newTestServer(t)

	w := postJSON(t, s, "/analyses/extract", types.ExtractRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "missing required field")
}

func TestHandleExtract_StorageFailure(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"no such file"}`)) //nolint:errcheck
	}))
	defer backend.Close()

	s := newTestServer(t)
	s.storage = storage.NewClient(backend.URL)

	w := postJSON(t, s, "/analyses/extract", types.ExtractRequest{ResumePath: "resumes/missing.txt"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandleGenerateReport(t *testing.T) {
	s := newTestServer(t)

	extracted := extractAnalysis(t, s, types.ExtractRequest{JobDescription: "Python and SQL"})

	w := postJSON(t, s, "/analyses/"+extracted.AnalysisID.String()+"/report", types.ReportRequest{
		TargetRole: "backend_developer",
		Skills: []types.SkillGapRecord{
			{Skill: "Python", CurrentLevel: 30, RequiredLevel: 80, Importance: types.ImportanceCritical},
			{Skill: "SQL", CurrentLevel: 90, RequiredLevel: 70, Importance: types.ImportanceMedium},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var report types.AnalysisReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, extracted.AnalysisID, report.AnalysisID)
	assert.Equal(t, "backend_developer", report.TargetRole)
	assert.Equal(t, 2, report.Summary.TotalSkills)
	assert.Equal(t, 1, report.Summary.CriticalGaps)
	assert.Equal(t, 1, report.Summary.Strengths)
	assert.False(t, report.GeneratedAt.IsZero())

	// Recommended courses must teach a deficient skill
	require.NotEmpty(t, report.Recommendations)
	for _, course := range report.Recommendations {
		assert.True(t, course.HasSkill("Python"), "course %s should cover the Python gap", course.ID)
	}

	// The analysis is now completed with the report attached
	req := httptest.NewRequest(http.MethodGet, "/analyses/"+extracted.AnalysisID.String(), nil)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var analysis types.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.Equal(t, "completed", analysis.Status)
	require.NotNil(t, analysis.Report)
	assert.NotNil(t, analysis.CompletedAt)
}

func TestHandleGenerateReport_UnknownAnalysis(t *testing.T) {
	s := newTestServer(t)

	w := postJSON(t, s, "/analyses/"+uuid.NewString()+"/report", types.ReportRequest{
		Skills: []types.SkillGapRecord{{Skill: "Go", CurrentLevel: 10, RequiredLevel: 50}},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGenerateReport_EmptySkills(t *testing.T) {
	s := newTestServer(t)

	extracted := extractAnalysis(t, s, types.ExtractRequest{JobDescription: "Python"})

	w := postJSON(t, s, "/analyses/"+extracted.AnalysisID.String()+"/report", types.ReportRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGetAnalysis_InvalidID(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/analyses/not-a-uuid", nil)
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "Invalid analysis ID")
}

func TestHandleGetAnalysis_NotFound(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/analyses/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleListAnalyses(t *testing.T) {
	s := newTestServer(t)

	extractAnalysis(t, s, types.ExtractRequest{JobDescription: "Python"})
	extractAnalysis(t, s, types.ExtractRequest{JobDescription: "Go"})

	req := httptest.NewRequest(http.MethodGet, "/analyses", nil)
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Analyses []types.Analysis `json:"analyses"`
		Total    int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
}

func TestHandleListAnalyses_InvalidLimit(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/analyses?limit=zero", nil)
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleDeleteAnalysis(t *testing.T) {
	s := newTestServer(t)

	extracted := extractAnalysis(t, s, types.ExtractRequest{JobDescription: "Python"})

	req := httptest.NewRequest(http.MethodDelete, "/analyses/"+extracted.AnalysisID.String(), nil)
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	// Gone afterwards
	req = httptest.NewRequest(http.MethodGet, "/analyses/"+extracted.AnalysisID.String(), nil)
	w = httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleDeleteAnalysis_NotFound(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodDelete, "/analyses/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
