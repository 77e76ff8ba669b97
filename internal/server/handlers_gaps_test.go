package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillgap-ai/skillgap-api/internal/types"
)

func postJSON(t *testing.T, s *Server, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)
	return w
}

func TestHandleClassifyGaps(t *testing.T) {
	s := newTestServer(t)

	w := postJSON(t, s, "/skill-gaps/classify", ClassifyRequest{
		Skills: []types.SkillGapRecord{
			{Skill: "Kubernetes", CurrentLevel: 20, RequiredLevel: 80, Importance: types.ImportanceCritical},
			{Skill: "Go", CurrentLevel: 50, RequiredLevel: 70, Importance: types.ImportanceHigh, SkillType: types.SkillTypeEssential},
			{Skill: "React", CurrentLevel: 40, RequiredLevel: 55, Importance: types.ImportanceMedium, SkillType: types.SkillTypeCompetitive},
			{Skill: "SQL", CurrentLevel: 88, RequiredLevel: 85, Importance: types.ImportanceHigh},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp ClassifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Buckets.Critical, 1)
	assert.Equal(t, "Kubernetes", resp.Buckets.Critical[0].Skill)
	require.Len(t, resp.Buckets.Essential, 1)
	require.Len(t, resp.Buckets.Competitive, 1)
	require.Len(t, resp.Buckets.Strengths, 1)
	assert.Equal(t, "SQL", resp.Buckets.Strengths[0].Skill)

	assert.Equal(t, 4, resp.Summary.TotalSkills)
	assert.Equal(t, 1, resp.Summary.CriticalGaps)
	assert.Equal(t, 1, resp.Summary.Strengths)
	assert.Equal(t, "Kubernetes", resp.Summary.LargestGapSkill)
	assert.Equal(t, 60, resp.Summary.LargestGapPoints)
}

func TestHandleClassifyGaps_EmptySkills(t *testing.T) {
	s := newTestServer(t)

	w := postJSON(t, s, "/skill-gaps/classify", ClassifyRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleClassifyGaps_MissingSkillName(t *testing.T) {
	s := newTestServer(t)

	w := postJSON(t, s, "/skill-gaps/classify", ClassifyRequest{
		Skills: []types.SkillGapRecord{{CurrentLevel: 10, RequiredLevel: 50}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleClassifyGaps_LevelOutOfRange(t *testing.T) {
	s := newTestServer(t)

	w := postJSON(t, s, "/skill-gaps/classify", ClassifyRequest{
		Skills: []types.SkillGapRecord{{Skill: "Go", CurrentLevel: -5, RequiredLevel: 120}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleClassifyGaps_MalformedBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/skill-gaps/classify", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
