package server

import (
	"net/http"

	"github.com/skillgap-ai/skillgap-api/internal/progress"
)

// handleProgress streams the simulated stage-timer for an analysis as
// Server-Sent Events. Clients that connect after completion get a single
// terminal event; clients for unknown analyses get a 404.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
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

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	updates, unsubscribe, running := s.tracker.Subscribe(analysisID)
	if !running {
		// No live runner (e.g. server restarted): report terminal state.
		sse.WriteEvent("progress", progress.Update{Percent: 100, Done: true}) //nolint:errcheck
		sse.WriteComplete(analysisID.String(), analysis.Status)
		return
	}
	defer unsubscribe()

	for {
		select {
		case <-r.Context().Done():
			return
		case update, open := <-updates:
			if !open {
				return
			}
			if err := sse.WriteEvent("progress", update); err != nil {
				return
			}
			if update.Done {
				sse.WriteComplete(analysisID.String(), "completed")
				return
			}
		}
	}
}
