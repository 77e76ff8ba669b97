package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/skillgap-ai/skillgap-api/internal/catalog"
	"github.com/skillgap-ai/skillgap-api/internal/extraction"
	"github.com/skillgap-ai/skillgap-api/internal/gaps"
	"github.com/skillgap-ai/skillgap-api/internal/progress"
	"github.com/skillgap-ai/skillgap-api/internal/server/middleware"
	"github.com/skillgap-ai/skillgap-api/internal/types"
)

// handleExtract creates an analysis from the posted sources, runs keyword
// skill extraction over them and kicks off the simulated pipeline timer.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var sources []string
	if req.ResumePath != "" {
		data, err := s.storage.Fetch(r.Context(), req.ResumePath)
		if err != nil {
			backendErr := &ErrBackend{Message: "Failed to fetch resume: " + err.Error()}
			s.errorResponse(w, HTTPStatus(backendErr), backendErr.Error())
			return
		}
		sources = append(sources, string(data))
	}
	if req.JobURL != "" {
		text, err := s.fetcher.FetchText(r.Context(), req.JobURL)
		if err != nil {
			backendErr := &ErrBackend{Message: "Failed to fetch job posting: " + err.Error()}
			s.errorResponse(w, HTTPStatus(backendErr), backendErr.Error())
			return
		}
		sources = append(sources, text)
	}
	if req.JobDescription != "" {
		sources = append(sources, req.JobDescription)
	}

	skills := extraction.ExtractFromSources(sources...)

	// Anonymous unless the optional auth middleware put a user in the context.
	userID, err := middleware.GetUserID(r)
	if err != nil {
		userID = uuid.Nil
	}

	analysisID, err := s.store.CreateAnalysis(r.Context(), userID, req.ResumePath)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create analysis")
		return
	}
	if err := s.store.SaveExtractedSkills(r.Context(), analysisID, skills); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save extracted skills")
		return
	}

	s.tracker.Start(analysisID, progress.DefaultStages(), 0)

	s.jsonResponse(w, http.StatusOK, types.ExtractResult{
		AnalysisID: analysisID,
		Skills:     skills,
	})
}

// handleGenerateReport turns a user-edited skill list into a gap report:
// classify, summarize, attach course recommendations, persist.
func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	analysisID, ok := s.analysisIDFromPath(w, r)
	if !ok {
		return
	}

	var req types.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	analysis, err := s.store.GetAnalysis(r.Context(), analysisID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load analysis")
		return
	}
	if analysis == nil {
		notFound := &ErrAnalysisNotFound{AnalysisID: analysisID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	classified := gaps.Classify(req.Skills)
	recommendations, err := catalog.Recommend(r.Context(), s.repo, classified.Deficiencies())
	if err != nil {
		// Recommendations are a bonus; the report is still valid without them.
		log.Printf("course recommendation failed for analysis %s: %v", analysisID, err)
	}

	report := &types.AnalysisReport{
		AnalysisID:      analysisID,
		TargetRole:      req.TargetRole,
		Skills:          req.Skills,
		Summary:         gaps.Summarize(req.Skills),
		Recommendations: recommendations,
		GeneratedAt:     time.Now(),
	}

	if err := s.store.SaveReport(r.Context(), analysisID, report); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save report")
		return
	}

	s.jsonResponse(w, http.StatusOK, report)
}

// handleGetAnalysis returns a stored analysis with its report, if generated.
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	analysisID, ok := s.analysisIDFromPath(w, r)
	if !ok {
		return
	}

	analysis, err := s.store.GetAnalysis(r.Context(), analysisID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load analysis")
		return
	}
	if analysis == nil {
		notFound := &ErrAnalysisNotFound{AnalysisID: analysisID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, analysis)
}

// handleListAnalyses returns recent analyses, newest first.
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	analyses, err := s.store.ListAnalyses(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list analyses")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"analyses": analyses,
		"total":    len(analyses),
	})
}

// handleDeleteAnalysis removes an analysis and cancels its progress runner.
func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	analysisID, ok := s.analysisIDFromPath(w, r)
	if !ok {
		return
	}

	analysis, err := s.store.GetAnalysis(r.Context(), analysisID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load analysis")
		return
	}
	if analysis == nil {
		notFound := &ErrAnalysisNotFound{AnalysisID: analysisID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.tracker.Cancel(analysisID)
	if err := s.store.DeleteAnalysis(r.Context(), analysisID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to delete analysis")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// analysisIDFromPath parses the {id} path value, writing a 400 on failure.
func (s *Server) analysisIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.PathValue("id")
	analysisID, err := uuid.Parse(raw)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid analysis ID: "+raw)
		return uuid.Nil, false
	}
	return analysisID, true
}
