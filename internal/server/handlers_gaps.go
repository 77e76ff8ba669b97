package server

import (
	"encoding/json"
	"net/http"

	"github.com/skillgap-ai/skillgap-api/internal/gaps"
	"github.com/skillgap-ai/skillgap-api/internal/types"
)

// ClassifyRequest is the payload for POST /skill-gaps/classify.
type ClassifyRequest struct {
	Skills []types.SkillGapRecord `json:"skills"`
}

// ClassifyResponse carries the bucket partition plus the derived summary.
type ClassifyResponse struct {
	Buckets gaps.Classified  `json:"buckets"`
	Summary types.GapSummary `json:"summary"`
}

// handleClassifyGaps classifies a posted skill list into gap buckets and
// computes the aggregate summary. Pure computation, nothing is persisted.
func (s *Server) handleClassifyGaps(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.Skills) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "At least one skill is required")
		return
	}

	for _, skill := range req.Skills {
		if skill.Skill == "" {
			s.errorResponse(w, http.StatusBadRequest, "Skill name is required")
			return
		}
		if skill.CurrentLevel < 0 || skill.CurrentLevel > 100 ||
			skill.RequiredLevel < 0 || skill.RequiredLevel > 100 {
			s.errorResponse(w, http.StatusBadRequest, "Skill levels must be in [0, 100]")
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, ClassifyResponse{
		Buckets: gaps.Classify(req.Skills),
		Summary: gaps.Summarize(req.Skills),
	})
}
